package project

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusClosed
}

type Project struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
	Title   string

	Description     *string
	Company         *string
	Expectations    *string
	SkillsRaw       json.RawMessage
	Location        *string
	Compensation    *string
	Budget          *string
	Duration        *string
	Category        *string
	ExperienceLevel *string
	AcademicYear    *string
	Availability    *string
	IsUrgent        bool

	Status       Status
	CurrentHires int
	MaxHires     int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Summary is the subset of a project embedded in application and bookmark
// rows.
type Summary struct {
	ID           uuid.UUID
	Title        string
	Description  *string
	Company      *string
	Expectations *string
	Location     *string
	Compensation *string
	Status       Status
	CreatedAt    time.Time
}

type NewProject struct {
	OwnerID         uuid.UUID
	Title           string
	Description     string
	Company         *string
	Skills          []string
	Location        string
	Budget          *string
	Duration        *string
	Category        *string
	ExperienceLevel *string
	AcademicYear    *string
	Availability    *string
	IsUrgent        bool
	MaxHires        int
}
