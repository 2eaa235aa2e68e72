package user

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User is a registered account. Nullable columns stay pointers; SkillsRaw
// holds the stored JSON, which is either a delimited string or an array.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string

	FullName          *string
	University        *string
	Major             *string
	AcademicYear      *string
	Bio               *string
	SkillsRaw         json.RawMessage
	Availability      *string
	Location          *string
	Rating            *float64
	ReviewCount       *int
	ProjectsCompleted *int
	ExperienceLevel   *string
	ProfileImage      *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfileUpdate carries the editable profile fields. Nil fields are left
// unchanged.
type ProfileUpdate struct {
	FullName     *string
	University   *string
	Major        *string
	AcademicYear *string
	Bio          *string
	Skills       []string
	Availability *string
	Location     *string
}

func (p ProfileUpdate) Empty() bool {
	return p.FullName == nil &&
		p.University == nil &&
		p.Major == nil &&
		p.AcademicYear == nil &&
		p.Bio == nil &&
		p.Skills == nil &&
		p.Availability == nil &&
		p.Location == nil
}
