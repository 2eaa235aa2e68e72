package viewmodel

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return now.Add(-time.Duration(n) * 24 * time.Hour)
}

func TestParseSkills(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want []string
	}{
		{"nil", nil, []string{}},
		{"delimited", "React, Python", []string{"React", "Python"}},
		{"blank entries", " React ,, ,Python,", []string{"React", "Python"}},
		{"no dedup", "Go,Go", []string{"Go", "Go"}},
		{"list", []string{" SQL", "", "Figma "}, []string{"SQL", "Figma"}},
		{"any list", []any{"Go", nil, " ", 3}, []string{"Go", "3"}},
		{"json array", json.RawMessage(`["React Native"," ","JavaScript"]`), []string{"React Native", "JavaScript"}},
		{"json string", json.RawMessage(`"Python, SQL"`), []string{"Python", "SQL"}},
		{"json null", json.RawMessage(`null`), []string{}},
		{"empty raw", json.RawMessage(nil), []string{}},
		{"unknown type", 42, []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseSkills(tc.in))
		})
	}
}

func TestPostedLabel_Boundaries(t *testing.T) {
	cases := []struct {
		days int
		want string
	}{
		{0, "Posted today"},
		{1, "Posted 1 day ago"},
		{2, "Posted 2 days ago"},
		{6, "Posted 6 days ago"},
		{7, "Posted 1 week ago"},
		{13, "Posted 1 week ago"},
		{14, "Posted 2 weeks ago"},
		{29, "Posted 4 weeks ago"},
		{30, "Posted 1 month ago"},
		{59, "Posted 1 month ago"},
		{60, "Posted 2 months ago"},
		{365, "Posted 12 months ago"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, PostedLabel(daysAgo(tc.days), now), "days=%d", tc.days)
	}
}

func TestPostedLabel_ThreeDaysAgo(t *testing.T) {
	assert.Equal(t, "Posted 3 days ago", PostedLabel(daysAgo(3), now))
}

func TestPostedLabel_PartialDayAndFuture(t *testing.T) {
	assert.Equal(t, "Posted today", PostedLabel(now.Add(-23*time.Hour), now))
	assert.Equal(t, "Posted 1 day ago", PostedLabel(now.Add(-47*time.Hour), now))
	assert.Equal(t, "Posted today", PostedLabel(now.Add(time.Hour), now))
}

func TestPostedLabelString(t *testing.T) {
	assert.Equal(t, "Posted 3 days ago", PostedLabelString(daysAgo(3).Format(time.RFC3339), now))
	assert.Equal(t, "Posted 1 week ago", PostedLabelString("2025-03-08 11:00:00.123456+00", now))
	assert.Equal(t, "Posted 2 weeks ago", PostedLabelString("2025-03-01", now))
	assert.Equal(t, "yesterday-ish", PostedLabelString("yesterday-ish", now))
	assert.Equal(t, "", PostedLabelString("", now))
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "AL", Initials("ada lovelace", StudentInitials))
	assert.Equal(t, "GH", Initials("Grace  Brewster   Hopper", StudentInitials))
	assert.Equal(t, "AD", Initials("ada", StudentInitials))
	assert.Equal(t, "X", Initials("x", StudentInitials))
	assert.Equal(t, "ÉM", Initials("élodie martin", StudentInitials))
	assert.Equal(t, "U", Initials("   ", StudentInitials))
	assert.Equal(t, "US", Initials("", DashboardInitials))
}

func TestExperienceTier(t *testing.T) {
	assert.Equal(t, TierAdvanced, ExperienceTier(10))
	assert.Equal(t, TierIntermediate, ExperienceTier(9))
	assert.Equal(t, TierIntermediate, ExperienceTier(5))
	assert.Equal(t, TierBeginner, ExperienceTier(4))
	assert.Equal(t, TierBeginner, ExperienceTier(0))
}

func TestAvailabilityBucket(t *testing.T) {
	cases := map[string]string{
		"":                        AvailabilityFlexible,
		NotSpecified:              AvailabilityFlexible,
		"Flexible":                AvailabilityFlexible,
		"Not currently available": AvailabilityNone,
		"10–15 hours/week":        Availability10To15,
		"25 hours":                Availability20Plus,
		"20":                      Availability20Plus,
		"about 15h per week":      Availability15To20,
		"12-14 hrs":               Availability10To15,
		"5 hours":                 Availability5To10,
		"3 hours weekly":          AvailabilityUpTo5,
		"0 hours":                 AvailabilityFlexible,
		"weekends":                AvailabilityFlexible,
	}

	for in, want := range cases {
		assert.Equal(t, want, AvailabilityBucket(in), "input=%q", in)
	}
}
