package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type traceKey struct{}

type traceStart struct {
	sql   string
	start time.Time
}

// slowQueryTracer logs statements that take longer than threshold or fail
// with something other than no rows.
type slowQueryTracer struct {
	logger    zerolog.Logger
	threshold time.Duration
	now       func() time.Time
}

func newSlowQueryTracer(logger zerolog.Logger, threshold time.Duration) *slowQueryTracer {
	return &slowQueryTracer{
		logger:    logger.With().Str("component", "postgres").Logger(),
		threshold: threshold,
		now:       time.Now,
	}
}

func (t *slowQueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, traceKey{}, traceStart{sql: data.SQL, start: t.now()})
}

func (t *slowQueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	st, ok := ctx.Value(traceKey{}).(traceStart)
	if !ok {
		return
	}
	elapsed := t.now().Sub(st.start)

	switch {
	case data.Err != nil && !errors.Is(data.Err, pgx.ErrNoRows) && ctx.Err() == nil:
		t.logger.Warn().Err(data.Err).Dur("elapsed", elapsed).Str("sql", compactSQL(st.sql)).Msg("query failed")
	case t.threshold > 0 && elapsed >= t.threshold:
		t.logger.Warn().Dur("elapsed", elapsed).Str("sql", compactSQL(st.sql)).Msg("slow query")
	}
}

func compactSQL(sql string) string {
	s := strings.Join(strings.Fields(sql), " ")
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
