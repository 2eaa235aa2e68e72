package seeder

import (
	"context"
	"encoding/json"

	"joinup/internal/database"

	"golang.org/x/crypto/bcrypt"
)

type demoStudent struct {
	Email        string
	FullName     string
	University   string
	Major        string
	AcademicYear string
	Bio          string
	Skills       []string
	Availability string
	Location     string
	Rating       float64
	Reviews      int
	Completed    int
}

var demoStudents = []demoStudent{
	{
		Email: "maya.chen@demo.joinup.dev", FullName: "Maya Chen",
		University: "State University", Major: "Computer Science", AcademicYear: "Senior",
		Bio:    "Backend developer who likes APIs and databases.",
		Skills: []string{"Go", "PostgreSQL", "Docker"}, Availability: "Part-time", Location: "Remote",
		Rating: 4.8, Reviews: 12, Completed: 9,
	},
	{
		Email: "leo.garcia@demo.joinup.dev", FullName: "Leo Garcia",
		University: "Tech Institute", Major: "Design", AcademicYear: "Junior",
		Bio:    "Product designer focused on mobile onboarding flows.",
		Skills: []string{"Figma", "UI/UX", "Prototyping"}, Availability: "Flexible", Location: "Austin, TX",
		Rating: 4.5, Reviews: 6, Completed: 4,
	},
	{
		Email: "amara.okafor@demo.joinup.dev", FullName: "Amara Okafor",
		University: "City College", Major: "Data Science", AcademicYear: "Graduate",
		Bio:    "Builds dashboards and small ML pipelines.",
		Skills: []string{"Python", "SQL", "Machine Learning"}, Availability: "Full-time", Location: "Remote",
		Rating: 4.9, Reviews: 20, Completed: 15,
	},
	{
		Email: "sam.lee@demo.joinup.dev", FullName: "Sam Lee",
		University: "State University", Major: "Marketing", AcademicYear: "Sophomore",
		Skills: []string{"Content Writing", "SEO"}, Availability: "Part-time", Location: "New York, NY",
	},
}

// StudentsSeeder inserts demo accounts. Existing emails are left untouched.
type StudentsSeeder struct {
	Cost int
}

func (StudentsSeeder) Name() string { return "demo_students" }

func (s StudentsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := RequireColumns(ctx, db, "users",
		"id", "email", "password_hash", "full_name", "university", "major", "academic_year", "bio",
		"skills", "availability", "location", "rating", "review_count", "projects_completed",
	); err != nil {
		return err
	}

	cost := s.Cost
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), cost)
	if err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, st := range demoStudents {
			skills, err := json.Marshal(st.Skills)
			if err != nil {
				return err
			}
			var rating any
			if st.Reviews > 0 {
				rating = st.Rating
			}
			var bio any
			if st.Bio != "" {
				bio = st.Bio
			}
			_, err = tx.Exec(ctx,
				`INSERT INTO users (
					email, password_hash, full_name, university, major, academic_year, bio, skills,
					availability, location, rating, review_count, projects_completed
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb, $9, $10, $11, $12, $13)
				ON CONFLICT (email) DO NOTHING`,
				st.Email, string(hash), st.FullName, st.University, st.Major, st.AcademicYear, bio, string(skills),
				st.Availability, st.Location, rating, st.Reviews, st.Completed,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}
