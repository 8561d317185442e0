package pages

import (
	"math"
	"strconv"
	"strings"
)

// FormatINR renders an amount with Indian digit grouping, e.g. ₹12,50,000.
func FormatINR(amount float64) string {
	negative := amount < 0
	whole := strconv.FormatInt(int64(math.Round(math.Abs(amount))), 10)

	var grouped string
	if len(whole) <= 3 {
		grouped = whole
	} else {
		head, tail := whole[:len(whole)-3], whole[len(whole)-3:]
		var parts []string
		for len(head) > 2 {
			parts = append([]string{head[len(head)-2:]}, parts...)
			head = head[:len(head)-2]
		}
		if head != "" {
			parts = append([]string{head}, parts...)
		}
		grouped = strings.Join(parts, ",") + "," + tail
	}

	if negative {
		return "-₹" + grouped
	}
	return "₹" + grouped
}

// FormatMinutes renders a duration estimate as "1 h 15 min".
func FormatMinutes(minutes float64) string {
	total := int(math.Round(minutes))
	if total < 60 {
		return strconv.Itoa(total) + " min"
	}
	hours, rest := total/60, total%60
	if rest == 0 {
		return strconv.Itoa(hours) + " h"
	}
	return strconv.Itoa(hours) + " h " + strconv.Itoa(rest) + " min"
}
