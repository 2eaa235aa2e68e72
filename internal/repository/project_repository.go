package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"joinup/internal/database"
	"joinup/internal/domain/project"

	"github.com/google/uuid"
)

const projectColumns = `id, owner_id, title, description, company, expectations, COALESCE(skills::text, ''),
	location, compensation, budget, duration, category, experience_level, academic_year, availability,
	is_urgent, status, current_hires, max_hires, created_at, updated_at`

type PostgresProjectRepository struct {
	db database.DB
}

func NewPostgresProjectRepository(db database.DB) *PostgresProjectRepository {
	return &PostgresProjectRepository{db: db}
}

// Create stores a new active project. Compensation mirrors the budget and
// expectations hold the skills as a comma-separated list.
func (r *PostgresProjectRepository) Create(ctx context.Context, in project.NewProject) (project.Project, error) {
	skills, err := skillsJSON(in.Skills)
	if err != nil {
		return project.Project{}, err
	}
	expectations := strings.Join(in.Skills, ", ")
	maxHires := in.MaxHires
	if maxHires <= 0 {
		maxHires = 1
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO projects (
			id, owner_id, title, description, company, expectations, skills, location, compensation, budget,
			duration, category, experience_level, academic_year, availability, is_urgent, status, max_hires
		) VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb, $8, $9, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING `+projectColumns,
		uuid.New(), in.OwnerID, in.Title, in.Description, in.Company, expectations, skills, in.Location, in.Budget,
		in.Duration, in.Category, in.ExperienceLevel, in.AcademicYear, in.Availability, in.IsUrgent,
		string(project.StatusActive), maxHires,
	)
	return scanProject(row)
}

func (r *PostgresProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (project.Project, error) {
	return scanProject(r.db.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
}

func (r *PostgresProjectRepository) ListActive(ctx context.Context) ([]project.Project, error) {
	return r.list(ctx, `SELECT `+projectColumns+` FROM projects WHERE status = $1 ORDER BY created_at DESC`, string(project.StatusActive))
}

func (r *PostgresProjectRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]project.Project, error) {
	return r.list(ctx, `SELECT `+projectColumns+` FROM projects WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
}

func (r *PostgresProjectRepository) list(ctx context.Context, query string, args ...any) ([]project.Project, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]project.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Close moves an active project owned by ownerID to closed.
func (r *PostgresProjectRepository) Close(ctx context.Context, id, ownerID uuid.UUID) (project.Project, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE projects SET status = $3, updated_at = now()
		 WHERE id = $1 AND owner_id = $2 AND status = $4
		 RETURNING `+projectColumns,
		id, ownerID, string(project.StatusClosed), string(project.StatusActive),
	)
	p, err := scanProject(row)
	if errors.Is(err, project.ErrNotFound) {
		return project.Project{}, r.explainMiss(ctx, id, ownerID)
	}
	return p, err
}

func (r *PostgresProjectRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	err = r.explainMiss(ctx, id, ownerID)
	if errors.Is(err, project.ErrNotActive) {
		return project.ErrNotFound
	}
	return err
}

// explainMiss says why a guarded write on id matched no row.
func (r *PostgresProjectRepository) explainMiss(ctx context.Context, id, ownerID uuid.UUID) error {
	var owner uuid.UUID
	var status project.Status
	err := r.db.QueryRow(ctx, `SELECT owner_id, status FROM projects WHERE id = $1`, id).Scan(&owner, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return project.ErrNotFound
		}
		return err
	}
	if owner != ownerID {
		return project.ErrForbidden
	}
	if status != project.StatusActive {
		return project.ErrNotActive
	}
	return project.ErrNotFound
}

func scanProject(row scanner) (project.Project, error) {
	var p project.Project
	var skills string
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.Title, &p.Description, &p.Company, &p.Expectations, &skills,
		&p.Location, &p.Compensation, &p.Budget, &p.Duration, &p.Category, &p.ExperienceLevel, &p.AcademicYear,
		&p.Availability, &p.IsUrgent, &p.Status, &p.CurrentHires, &p.MaxHires, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return project.Project{}, project.ErrNotFound
		}
		return project.Project{}, err
	}
	p.SkillsRaw = rawJSON(skills)
	return p, nil
}
