package seeder

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"joinup/internal/database"
)

type demoProject struct {
	OwnerEmail      string
	Title           string
	Description     string
	Company         string
	Skills          []string
	Location        string
	Budget          string
	Duration        string
	Category        string
	ExperienceLevel string
	AcademicYear    string
	Availability    string
	IsUrgent        bool
	MaxHires        int
}

var demoProjects = []demoProject{
	{
		OwnerEmail: "maya.chen@demo.joinup.dev",
		Title:      "Campus events API", Description: "REST API that aggregates student club events.",
		Company: "Campus Labs", Skills: []string{"Go", "PostgreSQL"}, Location: "Remote",
		Budget: "$500", Duration: "1-2 months", Category: "Web Development",
		ExperienceLevel: "Intermediate", AcademicYear: "Junior", Availability: "Part-time", MaxHires: 2,
	},
	{
		OwnerEmail: "amara.okafor@demo.joinup.dev",
		Title:      "Survey results dashboard", Description: "Visualize a semester of survey data.",
		Skills: []string{"Python", "SQL"}, Location: "Remote",
		Duration: "2-4 weeks", Category: "Data Science",
		ExperienceLevel: "Beginner", Availability: "Flexible", IsUrgent: true, MaxHires: 1,
	},
	{
		OwnerEmail: "leo.garcia@demo.joinup.dev",
		Title:      "Study app onboarding redesign", Description: "Rework the first-run experience of a study planner.",
		Company: "Studyly", Skills: []string{"Figma", "UI/UX"}, Location: "Austin, TX",
		Budget: "$300", Duration: "2-4 weeks", Category: "Design",
		ExperienceLevel: "Intermediate", AcademicYear: "Sophomore", Availability: "Part-time", MaxHires: 1,
	},
}

// ProjectsSeeder posts demo projects for seeded owners. A project whose
// owner already has one with the same title is skipped.
type ProjectsSeeder struct{}

func (ProjectsSeeder) Name() string { return "demo_projects" }

func (ProjectsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := RequireColumns(ctx, db, "projects",
		"id", "owner_id", "title", "description", "company", "expectations", "skills", "location",
		"compensation", "budget", "duration", "category", "experience_level", "academic_year",
		"availability", "is_urgent", "status", "max_hires",
	); err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, p := range demoProjects {
			var ownerID string
			err := tx.QueryRow(ctx, `SELECT id::text FROM users WHERE email = $1`, p.OwnerEmail).Scan(&ownerID)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return fmt.Errorf("owner %s not seeded", p.OwnerEmail)
				}
				return err
			}

			skills, err := json.Marshal(p.Skills)
			if err != nil {
				return err
			}
			_, err = tx.Exec(ctx,
				`INSERT INTO projects (
					owner_id, title, description, company, expectations, skills, location, compensation, budget,
					duration, category, experience_level, academic_year, availability, is_urgent, status, max_hires
				)
				SELECT $1::uuid, $2, $3, $4, $5, $6::jsonb, $7, $8, $8, $9, $10, $11, $12, $13, $14, 'active', $15
				WHERE NOT EXISTS (SELECT 1 FROM projects WHERE owner_id = $1::uuid AND title = $2)`,
				ownerID, p.Title, p.Description, nullable(p.Company), strings.Join(p.Skills, ", "), string(skills),
				p.Location, nullable(p.Budget), p.Duration, p.Category, p.ExperienceLevel, nullable(p.AcademicYear),
				p.Availability, p.IsUrgent, p.MaxHires,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
