package viewmodel

import (
	"encoding/json"
	"testing"

	"joinup/internal/domain/application"
	"joinup/internal/domain/project"
	"joinup/internal/domain/user"
	"joinup/internal/filter"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestNewStudent_Defaults(t *testing.T) {
	u := user.User{ID: uuid.New(), Email: "sam.lee@uni.edu"}
	s := NewStudent(u)

	assert.Equal(t, "sam.lee", s.Name)
	assert.Equal(t, NotSpecified, s.Major)
	assert.Equal(t, NotSpecified, s.Year)
	assert.Equal(t, NotSpecified, s.University)
	assert.Equal(t, DefaultBio, s.Description)
	assert.Equal(t, NotSpecified, s.Availability)
	assert.Equal(t, AvailabilityFlexible, s.AvailabilityBucket)
	assert.Equal(t, TierBeginner, s.ExperienceLevel)
	assert.Equal(t, []string{}, s.Skills)
	assert.Equal(t, "U", s.Initials)
	assert.Empty(t, s.ProfileImageURL)
}

func TestNewStudent_ExperienceTierFromCompletedProjects(t *testing.T) {
	for completed, want := range map[int]string{10: TierAdvanced, 9: TierIntermediate, 4: TierBeginner} {
		s := NewStudent(user.User{ProjectsCompleted: ptr(completed)})
		assert.Equal(t, want, s.ExperienceLevel, "completed=%d", completed)
	}
}

func TestNewStudent_StoredLevelAndAvatar(t *testing.T) {
	u := user.User{
		FullName:          ptr("Maya Chen"),
		ExperienceLevel:   ptr("Advanced"),
		ProjectsCompleted: ptr(1),
		ProfileImage:      ptr("https://cdn.example.com/p/1.png"),
		SkillsRaw:         json.RawMessage(`"Figma, UX Research"`),
		Availability:      ptr("12 hours"),
	}
	s := NewStudent(u)

	assert.Equal(t, "Maya Chen", s.Name)
	assert.Equal(t, TierAdvanced, s.ExperienceLevel)
	assert.Equal(t, "https://cdn.example.com/p/1.png", s.ProfileImageURL)
	assert.Empty(t, s.Initials)
	assert.Equal(t, []string{"Figma", "UX Research"}, s.Skills)
	assert.Equal(t, "12 hours", s.Availability)
	assert.Equal(t, Availability10To15, s.AvailabilityBucket)
}

// The facet values a student exposes are the ones displayed on the card.
func TestStudentFacetsAgreeWithDisplay(t *testing.T) {
	users := []user.User{
		{ProjectsCompleted: ptr(10), Availability: ptr("22 hrs")},
		{ProjectsCompleted: ptr(7), Availability: ptr("Flexible")},
		{ProjectsCompleted: ptr(2)},
	}
	students := NewStudents(users)

	for _, tier := range []string{TierAdvanced, TierIntermediate, TierBeginner} {
		e := filter.New(filter.StudentFacets)
		require.NoError(t, e.Toggle(filter.FacetExperienceLevel, tier))
		got := filter.Apply(e, students)
		require.Len(t, got, 1, tier)
		assert.Equal(t, tier, got[0].ExperienceLevel)
		assert.Equal(t, ExperienceTier(*users[indexOfTier(students, tier)].ProjectsCompleted), got[0].ExperienceLevel)
	}

	e := filter.New(filter.StudentFacets)
	require.NoError(t, e.Toggle(filter.FacetAvailability, AvailabilityFlexible))
	got := filter.Apply(e, students)
	require.Len(t, got, 2)
	for _, s := range got {
		assert.Equal(t, AvailabilityBucket(s.Availability), s.AvailabilityBucket)
	}
}

func indexOfTier(ss []Student, tier string) int {
	for i, s := range ss {
		if s.ExperienceLevel == tier {
			return i
		}
	}
	return -1
}

func TestNewProject_Defaults(t *testing.T) {
	p := NewProject(project.Project{ID: uuid.New(), CreatedAt: daysAgo(3)}, now)

	assert.Equal(t, DefaultTitle, p.Title)
	assert.Equal(t, DefaultDescription, p.Description)
	assert.Equal(t, DefaultLocation, p.Location)
	assert.Equal(t, NotSpecified, p.Compensation)
	assert.Equal(t, []string{}, p.Skills)
	assert.Equal(t, "active", p.Status)
	assert.Equal(t, "Posted 3 days ago", p.PostedDate)
}

func TestNewProject_CompensationAndSkillsFallbacks(t *testing.T) {
	p := NewProject(project.Project{
		Title:        "Data Dashboard",
		Budget:       ptr("$500"),
		Expectations: ptr("Python, SQL"),
		Category:     ptr("Data Science"),
		Status:       project.StatusClosed,
		CreatedAt:    daysAgo(8),
	}, now)

	assert.Equal(t, "$500", p.Compensation)
	assert.Equal(t, []string{"Python", "SQL"}, p.Skills)
	assert.Equal(t, "closed", p.Status)
	assert.Equal(t, []string{"Data Science"}, p.FacetValues(filter.FacetCategory))
	assert.Equal(t, "Posted 1 week ago", p.Summary().PostedDate)
}

func TestNewApplication(t *testing.T) {
	a := application.Application{
		ID:          uuid.New(),
		Message:     ptr("I'd love to help"),
		Status:      application.StatusHired,
		Role:        ptr("Frontend Developer"),
		CreatedAt:   daysAgo(1),
		Project:     &project.Summary{Title: "Landing Page"},
		ApplicantID: uuid.New(),
	}
	applicant := user.User{FullName: ptr("Jo Park")}

	v := NewApplication(a, &applicant, now)
	assert.Equal(t, "I'd love to help", v.CoverLetter)
	assert.Equal(t, "hired", v.Status)
	assert.Equal(t, "Frontend Developer", v.Role)
	assert.Equal(t, "Applied 1 day ago", v.AppliedLabel)
	require.NotNil(t, v.Project)
	assert.Equal(t, "Landing Page", v.Project.Title)
	assert.Equal(t, DefaultLocation, v.Project.Location)
	require.NotNil(t, v.Applicant)
	assert.Equal(t, "JP", v.Applicant.Initials)
}

func TestNewDashboard(t *testing.T) {
	in := DashboardInput{
		Email: "kim@uni.edu",
		Posted: []project.Project{
			{Title: "A", Status: project.StatusActive},
			{Title: "B", Status: project.StatusClosed},
			{Title: "C", Status: project.StatusActive},
		},
		Applied: []application.Application{{ID: uuid.New()}},
	}

	d := NewDashboard(in, now)
	assert.Equal(t, "kim@uni.edu", d.DisplayName)
	assert.Equal(t, "KI", d.Initials)
	assert.Equal(t, DashboardStats{Applied: 1, Saved: 0, Posted: 3, Active: 2}, d.Stats)
	assert.NotNil(t, d.Saved)

	in.Profile = &user.User{FullName: ptr("Kim Tran"), ProfileImage: ptr("https://x/y.png")}
	d = NewDashboard(in, now)
	assert.Equal(t, "Kim Tran", d.DisplayName)
	assert.Empty(t, d.Initials)
	assert.Equal(t, "https://x/y.png", d.AvatarURL)

	d = NewDashboard(DashboardInput{}, now)
	assert.Equal(t, "Student", d.DisplayName)
	assert.Equal(t, "ST", d.Initials)
}
