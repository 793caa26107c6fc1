package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

func (t *sqlTx) SetMarker(ctx context.Context, name string, ts time.Time) error {
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO markers (name, value) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET value = excluded.value`,
		name, ts.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return failure("set marker", err)
	}
	return nil
}

func (t *sqlTx) Marker(ctx context.Context, name string) (time.Time, bool, error) {
	var value string
	err := t.tx.QueryRowContext(ctx, `SELECT value FROM markers WHERE name = ?`, name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, failure("get marker", err)
	}
	ts, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, false, failure("parse marker", err)
	}
	return ts, true, nil
}
