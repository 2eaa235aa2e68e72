package viewmodel

import (
	"time"

	"joinup/internal/domain/application"
	"joinup/internal/domain/saved"
	"joinup/internal/domain/user"

	"github.com/google/uuid"
)

type Application struct {
	ID                 uuid.UUID       `json:"id"`
	ProjectID          uuid.UUID       `json:"project_id"`
	ApplicantID        uuid.UUID       `json:"applicant_id"`
	Status             string          `json:"status"`
	Role               string          `json:"role,omitempty"`
	CoverLetter        string          `json:"cover_letter"`
	ResumeLink         string          `json:"resume_link,omitempty"`
	PortfolioLink      string          `json:"portfolio_link,omitempty"`
	Availability       string          `json:"availability"`
	RelevantExperience string          `json:"relevant_experience,omitempty"`
	WhyInterested      string          `json:"why_interested,omitempty"`
	AppliedLabel       string          `json:"applied_label"`
	CreatedAt          time.Time       `json:"created_at"`
	Project            *ProjectSummary `json:"project,omitempty"`
	Applicant          *Student        `json:"applicant,omitempty"`
}

type SavedProject struct {
	ID        uuid.UUID       `json:"id"`
	ProjectID uuid.UUID       `json:"project_id"`
	SavedAt   time.Time       `json:"saved_at"`
	Project   *ProjectSummary `json:"project,omitempty"`
}

// NewApplication builds an application card; applicant is attached when the
// caller loaded it (owner view).
func NewApplication(a application.Application, applicant *user.User, now time.Time) Application {
	cover := orDefault(a.CoverLetter, "")
	if cover == "" {
		cover = orDefault(a.Message, "")
	}

	status := a.Status
	if status == "" {
		status = application.StatusPending
	}

	out := Application{
		ID:                 a.ID,
		ProjectID:          a.ProjectID,
		ApplicantID:        a.ApplicantID,
		Status:             string(status),
		Role:               orDefault(a.Role, ""),
		CoverLetter:        cover,
		ResumeLink:         orDefault(a.ResumeLink, ""),
		PortfolioLink:      orDefault(a.PortfolioLink, ""),
		Availability:       orDefault(a.Availability, NotSpecified),
		RelevantExperience: orDefault(a.RelevantExperience, ""),
		WhyInterested:      orDefault(a.WhyInterested, ""),
		AppliedLabel:       AgeLabel("Applied", a.CreatedAt, now),
		CreatedAt:          a.CreatedAt,
	}
	if a.Project != nil {
		s := NewProjectSummary(*a.Project, now)
		out.Project = &s
	}
	if applicant != nil {
		st := NewStudent(*applicant)
		out.Applicant = &st
	}
	return out
}

func NewApplications(as []application.Application, now time.Time) []Application {
	out := make([]Application, 0, len(as))
	for _, a := range as {
		out = append(out, NewApplication(a, nil, now))
	}
	return out
}

func NewSavedProject(s saved.SavedProject, now time.Time) SavedProject {
	out := SavedProject{
		ID:        s.ID,
		ProjectID: s.ProjectID,
		SavedAt:   s.CreatedAt,
	}
	if s.Project != nil {
		p := NewProjectSummary(*s.Project, now)
		out.Project = &p
	}
	return out
}

func NewSavedProjects(ss []saved.SavedProject, now time.Time) []SavedProject {
	out := make([]SavedProject, 0, len(ss))
	for _, s := range ss {
		out = append(out, NewSavedProject(s, now))
	}
	return out
}
