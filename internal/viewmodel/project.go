package viewmodel

import (
	"time"

	"joinup/internal/domain/project"
	"joinup/internal/filter"

	"github.com/google/uuid"
)

type Project struct {
	ID              uuid.UUID `json:"id"`
	OwnerID         uuid.UUID `json:"owner_id"`
	Title           string    `json:"title"`
	Company         string    `json:"company"`
	Description     string    `json:"description"`
	Expectations    string    `json:"expectations"`
	Skills          []string  `json:"skills"`
	Location        string    `json:"location"`
	Compensation    string    `json:"compensation"`
	Duration        string    `json:"duration"`
	Category        string    `json:"category"`
	ExperienceLevel string    `json:"experience_level"`
	AcademicYear    string    `json:"academic_year"`
	Availability    string    `json:"availability"`
	IsUrgent        bool      `json:"is_urgent"`
	Status          string    `json:"status"`
	CurrentHires    int       `json:"current_hires"`
	MaxHires        int       `json:"max_hires"`
	PostedDate      string    `json:"posted_date"`
	CreatedAt       time.Time `json:"created_at"`
}

type ProjectSummary struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Description  string    `json:"description"`
	Expectations string    `json:"expectations"`
	Location     string    `json:"location"`
	Compensation string    `json:"compensation"`
	Status       string    `json:"status"`
	PostedDate   string    `json:"posted_date"`
}

func NewProject(p project.Project, now time.Time) Project {
	skills := ParseSkills(p.SkillsRaw)
	if len(skills) == 0 && p.Expectations != nil {
		skills = ParseSkills(*p.Expectations)
	}

	status := p.Status
	if !status.Valid() {
		status = project.StatusActive
	}

	return Project{
		ID:              p.ID,
		OwnerID:         p.OwnerID,
		Title:           orDefault(&p.Title, DefaultTitle),
		Company:         orDefault(p.Company, NotSpecified),
		Description:     orDefault(p.Description, DefaultDescription),
		Expectations:    orDefault(p.Expectations, ""),
		Skills:          skills,
		Location:        orDefault(p.Location, DefaultLocation),
		Compensation:    orDefault(p.Compensation, orDefault(p.Budget, NotSpecified)),
		Duration:        orDefault(p.Duration, NotSpecified),
		Category:        orDefault(p.Category, NotSpecified),
		ExperienceLevel: orDefault(p.ExperienceLevel, NotSpecified),
		AcademicYear:    orDefault(p.AcademicYear, NotSpecified),
		Availability:    orDefault(p.Availability, NotSpecified),
		IsUrgent:        p.IsUrgent,
		Status:          string(status),
		CurrentHires:    p.CurrentHires,
		MaxHires:        p.MaxHires,
		PostedDate:      PostedLabel(p.CreatedAt, now),
		CreatedAt:       p.CreatedAt,
	}
}

func NewProjects(ps []project.Project, now time.Time) []Project {
	out := make([]Project, 0, len(ps))
	for _, p := range ps {
		out = append(out, NewProject(p, now))
	}
	return out
}

func (p Project) Summary() ProjectSummary {
	return ProjectSummary{
		ID:           p.ID,
		Title:        p.Title,
		Company:      p.Company,
		Description:  p.Description,
		Expectations: p.Expectations,
		Location:     p.Location,
		Compensation: p.Compensation,
		Status:       p.Status,
		PostedDate:   p.PostedDate,
	}
}

func NewProjectSummary(s project.Summary, now time.Time) ProjectSummary {
	return NewProject(project.Project{
		ID:           s.ID,
		Title:        s.Title,
		Description:  s.Description,
		Company:      s.Company,
		Expectations: s.Expectations,
		Location:     s.Location,
		Compensation: s.Compensation,
		Status:       s.Status,
		CreatedAt:    s.CreatedAt,
	}, now).Summary()
}

func (p Project) FacetValues(f filter.Facet) []string {
	switch f {
	case filter.FacetCategory:
		return []string{p.Category}
	case filter.FacetSkills:
		return p.Skills
	case filter.FacetDuration:
		return []string{p.Duration}
	default:
		return nil
	}
}
