package viewmodel

import (
	"strings"

	"joinup/internal/domain/user"
	"joinup/internal/filter"

	"github.com/google/uuid"
)

type Student struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	University         string    `json:"university"`
	Major              string    `json:"major"`
	Year               string    `json:"year"`
	Location           string    `json:"location"`
	Rating             float64   `json:"rating"`
	ReviewCount        int       `json:"review_count"`
	Description        string    `json:"description"`
	Skills             []string  `json:"skills"`
	Availability       string    `json:"availability"`
	AvailabilityBucket string    `json:"availability_bucket"`
	ProjectsCompleted  int       `json:"projects_completed"`
	ExperienceLevel    string    `json:"experience_level"`
	ProfileImageURL    string    `json:"profile_image_url,omitempty"`
	Initials           string    `json:"initials,omitempty"`
}

// NewStudent builds a student card. A stored experience level wins over the
// tier derived from completed projects.
func NewStudent(u user.User) Student {
	completed := 0
	if u.ProjectsCompleted != nil {
		completed = *u.ProjectsCompleted
	}
	rating := 0.0
	if u.Rating != nil {
		rating = *u.Rating
	}
	reviews := 0
	if u.ReviewCount != nil {
		reviews = *u.ReviewCount
	}

	availability := orDefault(u.Availability, NotSpecified)

	s := Student{
		ID:                 u.ID,
		Name:               displayName(u),
		University:         orDefault(u.University, NotSpecified),
		Major:              orDefault(u.Major, NotSpecified),
		Year:               orDefault(u.AcademicYear, NotSpecified),
		Location:           orDefault(u.Location, NotSpecified),
		Rating:             rating,
		ReviewCount:        reviews,
		Description:        orDefault(u.Bio, DefaultBio),
		Skills:             ParseSkills(u.SkillsRaw),
		Availability:       availability,
		AvailabilityBucket: AvailabilityBucket(availability),
		ProjectsCompleted:  completed,
		ExperienceLevel:    orDefault(u.ExperienceLevel, ExperienceTier(completed)),
	}
	if isHTTPURL(u.ProfileImage) {
		s.ProfileImageURL = strings.TrimSpace(*u.ProfileImage)
	} else {
		s.Initials = Initials(orDefault(u.FullName, ""), StudentInitials)
	}
	return s
}

func NewStudents(users []user.User) []Student {
	out := make([]Student, 0, len(users))
	for _, u := range users {
		out = append(out, NewStudent(u))
	}
	return out
}

func (s Student) FacetValues(f filter.Facet) []string {
	switch f {
	case filter.FacetExperienceLevel:
		return []string{s.ExperienceLevel}
	case filter.FacetAcademicYear:
		return []string{s.Year}
	case filter.FacetMajor:
		return []string{s.Major}
	case filter.FacetSkills:
		return s.Skills
	case filter.FacetAvailability:
		return []string{s.AvailabilityBucket}
	default:
		return nil
	}
}

// displayName falls back from the full name to the email's local part.
func displayName(u user.User) string {
	if name := orDefault(u.FullName, ""); name != "" {
		return name
	}
	if local, _, ok := strings.Cut(u.Email, "@"); ok && strings.TrimSpace(local) != "" {
		return strings.TrimSpace(local)
	}
	return "Unknown"
}

// Profile is the signed-in user's own card.
type Profile struct {
	Student
	Email string `json:"email"`
}

func NewProfile(u user.User) Profile {
	return Profile{Student: NewStudent(u), Email: u.Email}
}
