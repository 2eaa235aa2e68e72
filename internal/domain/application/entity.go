package application

import (
	"time"

	"joinup/internal/domain/project"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusHired    Status = "hired"
	StatusRejected Status = "rejected"
)

// CanHire reports whether an application in s may move to hired.
func (s Status) CanHire() bool {
	return s == StatusPending
}

type Application struct {
	ID          uuid.UUID
	ProjectID   uuid.UUID
	ApplicantID uuid.UUID

	CoverLetter        *string
	Message            *string
	ResumeLink         *string
	PortfolioLink      *string
	Availability       *string
	RelevantExperience *string
	WhyInterested      *string

	Status Status
	Role   *string

	CreatedAt time.Time
	UpdatedAt time.Time

	Project *project.Summary
}

type NewApplication struct {
	ProjectID          uuid.UUID
	ApplicantID        uuid.UUID
	CoverLetter        string
	Message            *string
	ResumeLink         *string
	PortfolioLink      *string
	Availability       *string
	RelevantExperience *string
	WhyInterested      *string
}

// HireResult is the state after a successful hire.
type HireResult struct {
	Application  Application
	ProjectID    uuid.UUID
	CurrentHires int
}
