package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath      string      `json:"db_path" yaml:"db_path"`
	DBSizeBytes int64       `json:"db_size_bytes" yaml:"db_size_bytes"`
	Pets        int         `json:"pets" yaml:"pets"`
	Records     int         `json:"records" yaml:"records"`
	Orphans     int         `json:"orphan_records" yaml:"orphan_records"`
	Types       []TypeStats `json:"types" yaml:"types"`
}

// TypeStats holds per-record-type counts.
type TypeStats struct {
	Type  string `json:"type" yaml:"type"`
	Count int    `json:"count" yaml:"count"`
}

// Stats returns database statistics. Orphans counts records whose pet no longer exists.
// All counts come from one read transaction.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{DBPath: s.path, Types: []TypeStats{}}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, failure("stats", err)
	}
	defer tx.Rollback()

	// DB file size
	if info, err := os.Stat(s.path); err == nil {
		st.DBSizeBytes = info.Size()
	}

	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM pets`, &st.Pets},
		{`SELECT COUNT(*) FROM records`, &st.Records},
		{`SELECT COUNT(*) FROM records r WHERE NOT EXISTS (SELECT 1 FROM pets p WHERE p.id = r.pet_id)`, &st.Orphans},
	}
	for _, c := range counts {
		if err := tx.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return nil, failure("stats", err)
		}
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT type, COUNT(*) AS cnt
		FROM records
		GROUP BY type ORDER BY cnt DESC, type`)
	if err != nil {
		return nil, failure("stats", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ts TypeStats
		if err := rows.Scan(&ts.Type, &ts.Count); err != nil {
			return nil, failure("stats", err)
		}
		st.Types = append(st.Types, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, failure("stats", err)
	}
	return st, nil
}
