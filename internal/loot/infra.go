package loot

import (
	"context"
	"database/sql"
)

type repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) Repo {
	return &repo{db: db}
}

func (r *repo) SaveRecord(ctx context.Context, rec *Record) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO loot_reports (command_id, requester, outcome, hot_zone, reason)
		VALUES ($1, $2, $3, $4, $5)
	`,
		rec.CommandID,
		rec.Requester,
		rec.Outcome,
		rec.HotZone,
		rec.Reason,
	)
	return err
}

func (r *repo) RecentRecords(ctx context.Context, limit int) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, command_id, requester, outcome, hot_zone, reason, extract(epoch from created_at)::bigint
		FROM loot_reports
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(
			&rec.ID,
			&rec.CommandID,
			&rec.Requester,
			&rec.Outcome,
			&rec.HotZone,
			&rec.Reason,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}

	return out, rows.Err()
}

// nopRepo keeps the bot runnable without DATABASE_URL.
type nopRepo struct{}

func NewNopRepo() Repo {
	return nopRepo{}
}

func (nopRepo) SaveRecord(context.Context, *Record) error { return nil }

func (nopRepo) RecentRecords(context.Context, int) ([]Record, error) { return nil, nil }
