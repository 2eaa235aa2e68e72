package viewmodel

import (
	"strings"
	"time"

	"joinup/internal/domain/application"
	"joinup/internal/domain/project"
	"joinup/internal/domain/saved"
	"joinup/internal/domain/user"
)

type DashboardStats struct {
	Applied int `json:"applied"`
	Saved   int `json:"saved"`
	Posted  int `json:"posted"`
	Active  int `json:"active"`
}

type Dashboard struct {
	DisplayName string           `json:"display_name"`
	Initials    string           `json:"initials,omitempty"`
	AvatarURL   string           `json:"avatar_url,omitempty"`
	Posted      []ProjectSummary `json:"posted"`
	Applied     []Application    `json:"applied"`
	Saved       []SavedProject   `json:"saved"`
	Stats       DashboardStats   `json:"stats"`
}

// DashboardInput holds whatever the dashboard fetches returned. Profile is
// nil when the profile could not be loaded.
type DashboardInput struct {
	Email   string
	Profile *user.User
	Posted  []project.Project
	Applied []application.Application
	Saved   []saved.SavedProject
}

func NewDashboard(in DashboardInput, now time.Time) Dashboard {
	d := Dashboard{
		Posted:  make([]ProjectSummary, 0, len(in.Posted)),
		Applied: NewApplications(in.Applied, now),
		Saved:   NewSavedProjects(in.Saved, now),
	}

	for _, p := range in.Posted {
		d.Posted = append(d.Posted, NewProject(p, now).Summary())
		if p.Status == project.StatusActive {
			d.Stats.Active++
		}
	}
	d.Stats.Posted = len(in.Posted)
	d.Stats.Applied = len(d.Applied)
	d.Stats.Saved = len(d.Saved)

	d.DisplayName = "Student"
	if in.Profile != nil && orDefault(in.Profile.FullName, "") != "" {
		d.DisplayName = orDefault(in.Profile.FullName, "")
	} else if email := strings.TrimSpace(in.Email); email != "" {
		d.DisplayName = email
	}

	if in.Profile != nil && isHTTPURL(in.Profile.ProfileImage) {
		d.AvatarURL = strings.TrimSpace(*in.Profile.ProfileImage)
	} else {
		d.Initials = Initials(d.DisplayName, DashboardInitials)
	}
	return d
}
