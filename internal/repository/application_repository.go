package repository

import (
	"context"
	"database/sql"
	"errors"

	"joinup/internal/database"
	"joinup/internal/domain/application"
	"joinup/internal/domain/project"

	"github.com/google/uuid"
)

const applicationColumns = `a.id, a.project_id, a.applicant_id, a.cover_letter, a.message, a.resume_link, a.portfolio_link,
	a.availability, a.relevant_experience, a.why_interested, a.status, a.role, a.created_at, a.updated_at`

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

func (r *PostgresApplicationRepository) Create(ctx context.Context, in application.NewApplication) (application.Application, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO applications AS a (
			id, project_id, applicant_id, cover_letter, message, resume_link, portfolio_link,
			availability, relevant_experience, why_interested, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+applicationColumns,
		uuid.New(), in.ProjectID, in.ApplicantID, in.CoverLetter, in.Message, in.ResumeLink, in.PortfolioLink,
		in.Availability, in.RelevantExperience, in.WhyInterested, string(application.StatusPending),
	)
	a, err := scanApplication(row)
	if err != nil && pgCode(err) == pgForeignKeyViolation {
		return application.Application{}, project.ErrNotFound
	}
	return a, err
}

// Exists is the pre-insert duplicate check. It is a read, not a constraint.
func (r *PostgresApplicationRepository) Exists(ctx context.Context, projectID, applicantID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE project_id = $1 AND applicant_id = $2)`,
		projectID, applicantID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+applicationColumns+`, `+projectSummaryColumns+`
		 FROM applications a JOIN projects p ON p.id = a.project_id
		 WHERE a.id = $1`,
		id,
	)
	return scanApplicationWithProject(row)
}

func (r *PostgresApplicationRepository) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]application.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+`, `+projectSummaryColumns+`
		 FROM applications a JOIN projects p ON p.id = a.project_id
		 WHERE a.applicant_id = $1
		 ORDER BY a.created_at DESC`,
		applicantID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		a, err := scanApplicationWithProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]application.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications a WHERE a.project_id = $1 ORDER BY a.created_at ASC`,
		projectID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Hire flips a pending application to hired and bumps the project's hire
// counter in the same transaction. The counter is incremented in SQL and is
// not checked against max_hires.
func (r *PostgresApplicationRepository) Hire(ctx context.Context, id, ownerID uuid.UUID, role string) (application.HireResult, error) {
	var res application.HireResult

	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		a, err := scanApplication(tx.QueryRow(ctx,
			`UPDATE applications a SET status = $3, role = $4, updated_at = now()
			 FROM projects p
			 WHERE a.id = $1 AND p.id = a.project_id AND p.owner_id = $2 AND a.status = $5
			 RETURNING `+applicationColumns,
			id, ownerID, string(application.StatusHired), role, string(application.StatusPending),
		))
		if errors.Is(err, application.ErrNotFound) {
			return explainHireMiss(ctx, tx, id, ownerID)
		}
		if err != nil {
			return err
		}

		var hires int
		err = tx.QueryRow(ctx,
			`UPDATE projects SET current_hires = current_hires + 1, updated_at = now()
			 WHERE id = $1
			 RETURNING current_hires`,
			a.ProjectID,
		).Scan(&hires)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return project.ErrNotFound
			}
			return err
		}

		res = application.HireResult{Application: a, ProjectID: a.ProjectID, CurrentHires: hires}
		return nil
	})
	if err != nil {
		return application.HireResult{}, err
	}
	return res, nil
}

func explainHireMiss(ctx context.Context, q database.Querier, id, ownerID uuid.UUID) error {
	var status application.Status
	var owner uuid.UUID
	err := q.QueryRow(ctx,
		`SELECT a.status, p.owner_id FROM applications a JOIN projects p ON p.id = a.project_id WHERE a.id = $1`,
		id,
	).Scan(&status, &owner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return application.ErrNotFound
		}
		return err
	}
	if owner != ownerID {
		return application.ErrForbidden
	}
	if !status.CanHire() {
		return application.ErrInvalidTransition
	}
	return application.ErrNotFound
}

func applicationDest(a *application.Application) []any {
	return []any{
		&a.ID, &a.ProjectID, &a.ApplicantID, &a.CoverLetter, &a.Message, &a.ResumeLink, &a.PortfolioLink,
		&a.Availability, &a.RelevantExperience, &a.WhyInterested, &a.Status, &a.Role, &a.CreatedAt, &a.UpdatedAt,
	}
}

func scanApplication(row scanner) (application.Application, error) {
	var a application.Application
	if err := row.Scan(applicationDest(&a)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}
	return a, nil
}

func scanApplicationWithProject(row scanner) (application.Application, error) {
	var a application.Application
	var s project.Summary
	dest := append(applicationDest(&a), summaryDest(&s)...)
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}
	a.Project = &s
	return a, nil
}
