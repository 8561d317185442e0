// Package intake collects and validates the three inputs of an analysis
// request: the room photo, the event type and the budget.
package intake

import (
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
)

// DefaultMaxImageBytes is the upload ceiling applied when none is configured.
const DefaultMaxImageBytes = 10 << 20

var (
	ErrEmptyImage   = errors.New("intake: image is empty")
	ErrNotImage     = errors.New("intake: file is not an image")
	ErrTooLarge     = errors.New("intake: image exceeds the size limit")
	ErrInvalidData  = errors.New("intake: malformed data URL")
	ErrEmptyEvent   = errors.New("intake: event type must not be empty")
	ErrEmptyBudget  = errors.New("intake: budget must not be empty")
	ErrInvalidPrice = errors.New("intake: budget amount must be a positive number")
)

// Image is a decoded upload: the raw bytes sent to the analysis service and a
// displayable preview of the same picture.
type Image struct {
	Bytes    []byte
	MIMEType string
	Base64   string
	Preview  string
}

// Collector applies the upload policy.
type Collector struct {
	maxBytes int
}

// NewCollector returns a Collector enforcing maxBytes (DefaultMaxImageBytes when <= 0).
func NewCollector(maxBytes int) *Collector {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}
	return &Collector{maxBytes: maxBytes}
}

// MaxBytes reports the enforced upload ceiling.
func (c *Collector) MaxBytes() int {
	return c.maxBytes
}

// SelectImage validates raw file bytes and derives the transmittable payload
// and preview.
func (c *Collector) SelectImage(data []byte) (Image, error) {
	if len(data) == 0 {
		return Image{}, ErrEmptyImage
	}
	if len(data) > c.maxBytes {
		return Image{}, fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, len(data), c.maxBytes)
	}

	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return Image{}, fmt.Errorf("%w: detected %s", ErrNotImage, mime)
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	return Image{
		Bytes:    append([]byte(nil), data...),
		MIMEType: mime,
		Base64:   encoded,
		Preview:  "data:" + mime + ";base64," + encoded,
	}, nil
}

// DecodeDataURL accepts the data URL a browser FileReader produces.
func (c *Collector) DecodeDataURL(value string) (Image, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Image{}, ErrEmptyImage
	}
	header, payload, ok := strings.Cut(value, ",")
	if !ok || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return Image{}, ErrInvalidData
	}
	// Reject before decoding anything obviously over the limit.
	if base64.StdEncoding.DecodedLen(len(payload)) > c.maxBytes+2 {
		return Image{}, fmt.Errorf("%w: limit %d", ErrTooLarge, c.maxBytes)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	return c.SelectImage(data)
}

// SelectEventType accepts one of the catalogue events (case-insensitively,
// by id or label) or any non-empty free text.
func SelectEventType(label string) (string, error) {
	label = strings.Join(strings.Fields(label), " ")
	if label == "" {
		return "", ErrEmptyEvent
	}
	for _, event := range events {
		if strings.EqualFold(label, event.ID) || strings.EqualFold(label, event.Label) {
			return event.ID, nil
		}
	}
	return label, nil
}

// SelectBudget returns a bracket id verbatim or formats a free amount as
// "Approx ₹<amount>".
func SelectBudget(choice string) (string, error) {
	choice = strings.TrimSpace(choice)
	if choice == "" {
		return "", ErrEmptyBudget
	}
	for _, bracket := range brackets {
		if choice == bracket.ID {
			return bracket.ID, nil
		}
	}
	return FormatAmount(choice)
}

// FormatAmount turns a free-form amount into the descriptive budget string.
func FormatAmount(amount string) (string, error) {
	amount = strings.TrimSpace(amount)
	amount = strings.TrimPrefix(amount, "₹")
	amount = strings.ReplaceAll(amount, ",", "")
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return "", ErrEmptyBudget
	}
	value, err := strconv.ParseFloat(amount, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidPrice, amount)
	}
	return "Approx ₹" + amount, nil
}

// IsLowBudget reports whether the budget calls for DIY suggestions: the lowest
// bracket or a free amount under ₹1000.
func IsLowBudget(budget string) bool {
	if budget == brackets[0].ID {
		return true
	}
	rest, ok := strings.CutPrefix(budget, "Approx ₹")
	if !ok {
		return false
	}
	value, err := strconv.ParseFloat(rest, 64)
	return err == nil && value < 1000
}
