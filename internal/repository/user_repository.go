package repository

import (
	"context"
	"database/sql"
	"errors"

	"joinup/internal/database"
	"joinup/internal/domain/user"

	"github.com/google/uuid"
)

const userColumns = `id, email, password_hash, full_name, university, major, academic_year, bio,
	COALESCE(skills::text, ''), availability, location, rating::float8, review_count, projects_completed,
	experience_level, profile_image, created_at, updated_at`

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, u user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, full_name) VALUES ($1, $2, $3, $4)`,
		u.ID, u.Email, u.PasswordHash, u.FullName,
	)
	return err
}

func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresUserRepository) ListStudents(ctx context.Context) ([]user.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, in user.ProfileUpdate) (user.User, error) {
	skills, err := skillsJSON(in.Skills)
	if err != nil {
		return user.User{}, err
	}

	row := r.db.QueryRow(ctx,
		`UPDATE users SET
			full_name = COALESCE($2, full_name),
			university = COALESCE($3, university),
			major = COALESCE($4, major),
			academic_year = COALESCE($5, academic_year),
			bio = COALESCE($6, bio),
			skills = COALESCE($7::jsonb, skills),
			availability = COALESCE($8, availability),
			location = COALESCE($9, location),
			updated_at = now()
		 WHERE id = $1
		 RETURNING `+userColumns,
		id, in.FullName, in.University, in.Major, in.AcademicYear, in.Bio, skills, in.Availability, in.Location,
	)
	return scanUser(row)
}

func (r *PostgresUserRepository) SetProfileImage(ctx context.Context, id uuid.UUID, url string) error {
	n, err := r.db.Exec(ctx, `UPDATE users SET profile_image = $2, updated_at = now() WHERE id = $1`, id, url)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func scanUser(row scanner) (user.User, error) {
	var u user.User
	var skills string
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.University, &u.Major, &u.AcademicYear, &u.Bio,
		&skills, &u.Availability, &u.Location, &u.Rating, &u.ReviewCount, &u.ProjectsCompleted,
		&u.ExperienceLevel, &u.ProfileImage, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	u.SkillsRaw = rawJSON(skills)
	return u, nil
}
