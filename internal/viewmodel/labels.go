// Package viewmodel turns stored rows into display records. Every field of a
// display record is populated, either from the row or from a fixed default.
package viewmodel

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	NotSpecified       = "Not specified"
	DefaultLocation    = "Remote"
	DefaultTitle       = "Untitled Project"
	DefaultDescription = "No description yet."
	DefaultBio         = "No description available"

	// Initials placeholders for an empty name, per call site.
	StudentInitials   = "U"
	DashboardInitials = "US"
)

const (
	TierBeginner     = "Beginner"
	TierIntermediate = "Intermediate"
	TierAdvanced     = "Advanced"
)

const (
	AvailabilityNone     = "Not currently available"
	AvailabilityUpTo5    = "Up to 5 hours/week"
	Availability5To10    = "5–10 hours/week"
	Availability10To15   = "10–15 hours/week"
	Availability15To20   = "15–20 hours/week"
	Availability20Plus   = "20+ hours/week"
	AvailabilityFlexible = "Flexible"
)

var AvailabilityOptions = []string{
	AvailabilityNone,
	AvailabilityUpTo5,
	Availability5To10,
	Availability10To15,
	Availability15To20,
	Availability20Plus,
	AvailabilityFlexible,
}

// ParseSkills accepts a comma-delimited string, a list, or JSON holding
// either, and returns the trimmed non-empty entries in source order.
func ParseSkills(v any) []string {
	out := make([]string, 0)
	switch s := v.(type) {
	case nil:
		return out
	case string:
		return appendTrimmed(out, strings.Split(s, ",")...)
	case *string:
		if s == nil {
			return out
		}
		return ParseSkills(*s)
	case []string:
		return appendTrimmed(out, s...)
	case []any:
		for _, item := range s {
			switch it := item.(type) {
			case nil:
			case string:
				out = appendTrimmed(out, it)
			default:
				out = appendTrimmed(out, fmt.Sprint(it))
			}
		}
		return out
	case json.RawMessage:
		return parseSkillsJSON([]byte(s))
	case []byte:
		return parseSkillsJSON(s)
	default:
		return out
	}
}

func parseSkillsJSON(b []byte) []string {
	if len(strings.TrimSpace(string(b))) == 0 {
		return make([]string, 0)
	}
	var decoded any
	if err := json.Unmarshal(b, &decoded); err != nil {
		return ParseSkills(string(b))
	}
	return ParseSkills(decoded)
}

func appendTrimmed(out []string, items ...string) []string {
	for _, it := range items {
		if t := strings.TrimSpace(it); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// PostedLabel renders the age of t relative to now in whole elapsed days.
// A t after now counts as today.
func PostedLabel(t, now time.Time) string {
	return AgeLabel("Posted", t, now)
}

// AgeLabel is PostedLabel with another leading verb ("Applied", "Joined").
func AgeLabel(verb string, t, now time.Time) string {
	days := int(now.Sub(t).Hours() / 24)
	if days < 0 {
		days = 0
	}

	switch {
	case days == 0:
		return verb + " today"
	case days == 1:
		return verb + " 1 day ago"
	case days < 7:
		return fmt.Sprintf("%s %d days ago", verb, days)
	case days < 14:
		return verb + " 1 week ago"
	case days < 30:
		return fmt.Sprintf("%s %d weeks ago", verb, days/7)
	case days < 60:
		return verb + " 1 month ago"
	default:
		return fmt.Sprintf("%s %d months ago", verb, days/30)
	}
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// PostedLabelString is PostedLabel over a stored timestamp string. An
// unparseable value comes back unchanged.
func PostedLabelString(raw string, now time.Time) string {
	s := strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return PostedLabel(t, now)
		}
	}
	return raw
}

// Initials takes the first letters of the first and last words of name, or
// the first two letters of a single word, uppercased.
func Initials(name, placeholder string) string {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return placeholder
	case 1:
		r := []rune(parts[0])
		if len(r) > 2 {
			r = r[:2]
		}
		return strings.ToUpper(string(r))
	default:
		first, _ := utf8.DecodeRuneInString(parts[0])
		last, _ := utf8.DecodeRuneInString(parts[len(parts)-1])
		return string([]rune{unicode.ToUpper(first), unicode.ToUpper(last)})
	}
}

func ExperienceTier(projectsCompleted int) string {
	switch {
	case projectsCompleted >= 10:
		return TierAdvanced
	case projectsCompleted >= 5:
		return TierIntermediate
	default:
		return TierBeginner
	}
}

var firstNumber = regexp.MustCompile(`\d+`)

// AvailabilityBucket maps a stored availability string onto one of
// AvailabilityOptions, defaulting to Flexible.
func AvailabilityBucket(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || s == NotSpecified {
		return AvailabilityFlexible
	}
	for _, opt := range AvailabilityOptions {
		if s == opt {
			return opt
		}
	}

	m := firstNumber.FindString(s)
	if m == "" {
		return AvailabilityFlexible
	}
	hours, err := strconv.Atoi(m)
	if err != nil {
		return AvailabilityFlexible
	}
	switch {
	case hours >= 20:
		return Availability20Plus
	case hours >= 15:
		return Availability15To20
	case hours >= 10:
		return Availability10To15
	case hours >= 5:
		return Availability5To10
	case hours > 0:
		return AvailabilityUpTo5
	default:
		return AvailabilityFlexible
	}
}

func orDefault(p *string, def string) string {
	if p == nil {
		return def
	}
	if s := strings.TrimSpace(*p); s != "" {
		return s
	}
	return def
}

func isHTTPURL(p *string) bool {
	if p == nil {
		return false
	}
	s := strings.TrimSpace(*p)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
