package mysql

import (
	"context"
	"database/sql"
	"time"

	"hostel_pms/internal/domain"
)

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Log is the MySQL-backed audit trail of AI gateway calls.
type Log struct{ db *sql.DB }

func New(db *sql.DB) *Log { return &Log{db: db} }

// Migrate creates the invocation table when it does not exist yet.
func (l *Log) Migrate(ctx context.Context) error {
	_, err := l.db.ExecContext(ctx, createInvocationsSQL)
	return err
}

func (l *Log) Record(ctx context.Context, inv domain.Invocation) error {
	at := inv.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := l.db.ExecContext(ctx, insertInvocationSQL,
		inv.Operation,
		inv.Mode,
		inv.OK,
		inv.DurationMS,
		valStr(inv.Error),
		at.UTC(),
	)
	return err
}

func (l *Log) Recent(ctx context.Context, limit int) ([]domain.Invocation, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := l.db.QueryContext(ctx, recentInvocationsSQL, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Invocation{}
	for rows.Next() {
		var inv domain.Invocation
		var errText sql.NullString
		if err := rows.Scan(&inv.Operation, &inv.Mode, &inv.OK, &inv.DurationMS, &errText, &inv.At); err != nil {
			return nil, err
		}
		if errText.Valid {
			inv.Error = errText.String
		}
		out = append(out, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Nop is the InvocationLog used when no database is configured.
type Nop struct{}

func (Nop) Record(ctx context.Context, inv domain.Invocation) error { return nil }

func (Nop) Recent(ctx context.Context, limit int) ([]domain.Invocation, error) {
	return []domain.Invocation{}, nil
}

var (
	_ domain.InvocationLog = (*Log)(nil)
	_ domain.InvocationLog = Nop{}
)
