package repository

import (
	"context"

	"joinup/internal/database"
	"joinup/internal/domain/project"
	"joinup/internal/domain/saved"

	"github.com/google/uuid"
)

type PostgresSavedProjectRepository struct {
	db database.DB
}

func NewPostgresSavedProjectRepository(db database.DB) *PostgresSavedProjectRepository {
	return &PostgresSavedProjectRepository{db: db}
}

// Save bookmarks a project; saving twice returns the existing bookmark.
func (r *PostgresSavedProjectRepository) Save(ctx context.Context, userID, projectID uuid.UUID) (saved.SavedProject, error) {
	var s saved.SavedProject
	err := r.db.QueryRow(ctx,
		`INSERT INTO saved_projects (id, user_id, project_id) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, project_id) DO UPDATE SET user_id = EXCLUDED.user_id
		 RETURNING id, user_id, project_id, created_at`,
		uuid.New(), userID, projectID,
	).Scan(&s.ID, &s.UserID, &s.ProjectID, &s.CreatedAt)
	if err != nil {
		if pgCode(err) == pgForeignKeyViolation {
			return saved.SavedProject{}, project.ErrNotFound
		}
		return saved.SavedProject{}, err
	}
	return s, nil
}

func (r *PostgresSavedProjectRepository) Remove(ctx context.Context, userID, projectID uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM saved_projects WHERE user_id = $1 AND project_id = $2`, userID, projectID)
	if err != nil {
		return err
	}
	if n == 0 {
		return saved.ErrNotFound
	}
	return nil
}

func (r *PostgresSavedProjectRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]saved.SavedProject, error) {
	rows, err := r.db.Query(ctx,
		`SELECT s.id, s.user_id, s.project_id, s.created_at, `+projectSummaryColumns+`
		 FROM saved_projects s JOIN projects p ON p.id = s.project_id
		 WHERE s.user_id = $1
		 ORDER BY s.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]saved.SavedProject, 0)
	for rows.Next() {
		var s saved.SavedProject
		var p project.Summary
		dest := append([]any{&s.ID, &s.UserID, &s.ProjectID, &s.CreatedAt}, summaryDest(&p)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		s.Project = &p
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
