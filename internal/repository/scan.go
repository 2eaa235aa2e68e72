package repository

import (
	"encoding/json"
	"errors"
	"strings"

	"joinup/internal/domain/project"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

type scanner interface {
	Scan(dest ...any) error
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// skillsJSON encodes a skill list for a jsonb parameter; nil stays NULL.
func skillsJSON(skills []string) (*string, error) {
	if skills == nil {
		return nil, nil
	}
	clean := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			clean = append(clean, s)
		}
	}
	b, err := json.Marshal(clean)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

func rawJSON(s string) json.RawMessage {
	if s == "" {
		return nil
	}
	return json.RawMessage(s)
}

const projectSummaryColumns = `p.id, p.title, p.description, p.company, p.expectations, p.location, p.compensation, p.status, p.created_at`

func summaryDest(s *project.Summary) []any {
	return []any{&s.ID, &s.Title, &s.Description, &s.Company, &s.Expectations, &s.Location, &s.Compensation, &s.Status, &s.CreatedAt}
}
