package meterrepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/tichaonax/electricity-tokens-sub004/internal/domain"
	"github.com/tichaonax/electricity-tokens-sub004/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// Latest returns the newest meter snapshot, or nil when the poller has
// not stored one yet.
func (r *Repository) Latest(ctx context.Context) (*domain.MeterSnapshot, error) {
	query := `
        SELECT id, reading, reading_at, source
        FROM meter_readings
        ORDER BY reading_at DESC, id DESC
        LIMIT 1
    `
	row := r.db.QueryRow(ctx, query)

	var s domain.MeterSnapshot
	err := row.Scan(&s.ID, &s.Reading, &s.ReadingAt, &s.Source)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't get latest meter snapshot", zap.Error(err))
		return nil, err
	}
	return &s, nil
}

func (r *Repository) Save(ctx context.Context, snapshot *domain.MeterSnapshot) error {
	query := `
        INSERT INTO meter_readings (reading, reading_at, source)
        VALUES ($1, $2, $3)
        RETURNING id
    `
	err := r.db.QueryRow(ctx, query, snapshot.Reading, snapshot.ReadingAt, snapshot.Source).Scan(&snapshot.ID)
	if err != nil {
		zap.L().Error("can't save meter snapshot", zap.Error(err))
		return err
	}
	return nil
}
