package seeder

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"joinup/internal/database"
)

// RequireColumns fails unless table exists with every listed column, naming
// all missing ones so a stale schema is caught before any row is written.
func RequireColumns(ctx context.Context, q database.Querier, table string, columns ...string) error {
	if q == nil {
		return database.ErrNilDB
	}
	if strings.TrimSpace(table) == "" || slices.Contains(columns, "") {
		return errors.New("table and column names are required")
	}

	rows, err := q.Query(ctx,
		`SELECT column_name FROM information_schema.columns
		 WHERE table_schema = current_schema() AND table_name = $1`,
		table,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	have := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		have[name] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(have) == 0 {
		return fmt.Errorf("table %s does not exist, run migrations first", table)
	}

	var missing []string
	for _, col := range columns {
		if !have[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("table %s is missing columns: %s", table, strings.Join(missing, ", "))
	}
	return nil
}
