package models

import (
	"strings"
	"unicode"
)

// DefaultRole is assigned when a profile is captured without an explicit role.
const DefaultRole = "Homeowner"

// Roles lists the roles offered on the login screen.
var Roles = []string{"Homeowner", "Event Planner", "Student", "Browser"}

// UserProfile is the locally captured identity of the person using the assistant.
// Nothing about it is verified.
type UserProfile struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	AvatarInitials string `json:"avatarInitials"`
}

// NewUserProfile builds a profile from free-text login input.
func NewUserProfile(name, email, role string) UserProfile {
	name = strings.TrimSpace(name)
	role = strings.TrimSpace(role)
	if role == "" {
		role = DefaultRole
	}
	return UserProfile{
		Name:           name,
		Email:          strings.TrimSpace(email),
		Role:           role,
		AvatarInitials: Initials(name),
	}
}

// WithName returns a copy of the profile with a new name and recomputed initials.
func (p UserProfile) WithName(name string) UserProfile {
	p.Name = strings.TrimSpace(name)
	p.AvatarInitials = Initials(p.Name)
	return p
}

// WithRole returns a copy of the profile with a new role.
func (p UserProfile) WithRole(role string) UserProfile {
	if role = strings.TrimSpace(role); role != "" {
		p.Role = role
	}
	return p
}

// FirstName is used by the upload screen greeting.
func (p UserProfile) FirstName() string {
	fields := strings.Fields(p.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Initials takes the first letter of each whitespace separated token, upper-cased,
// and keeps at most two of them.
func Initials(name string) string {
	var out []rune
	for _, token := range strings.Fields(name) {
		first := []rune(token)[0]
		out = append(out, unicode.ToUpper(first))
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}
