package db

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
)

// QueryHook logs every statement with its operation, table and duration.
type QueryHook struct {
	logger *slog.Logger
}

var _ bun.QueryHook = (*QueryHook)(nil)

func NewQueryHook(logger *slog.Logger) *QueryHook {
	return &QueryHook{logger: logger}
}

func (h *QueryHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *QueryHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	table := ""
	if event.IQuery != nil {
		table = event.IQuery.GetTableName()
	}

	attrs := []any{
		"operation", event.Operation(),
		"table", table,
		"duration", time.Since(event.StartTime),
	}

	if event.Err != nil && !errors.Is(event.Err, sql.ErrNoRows) {
		h.logger.WarnContext(ctx, "query failed", append(attrs, "error", event.Err)...)
		return
	}
	h.logger.DebugContext(ctx, "query executed", attrs...)
}
