package contributionrepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/tichaonax/electricity-tokens-sub004/internal/domain"
	"github.com/tichaonax/electricity-tokens-sub004/internal/pg"
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func (r *Repository) FindByPurchaseID(ctx context.Context, purchaseID int) (*domain.Contribution, error) {
	query := `
        SELECT id, purchase_id, user_id, amount, meter_reading, tokens_consumed, contributed_at
        FROM contributions
        WHERE purchase_id = $1
    `
	row := r.db.QueryRow(ctx, query, purchaseID)

	var c domain.Contribution
	err := row.Scan(&c.ID, &c.PurchaseID, &c.UserID, &c.Amount, &c.MeterReading, &c.TokensConsumed, &c.ContributedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find contribution", zap.Error(err))
		return nil, err
	}
	return &c, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Contribution, error) {
	query := `
        SELECT id, purchase_id, user_id, amount, meter_reading, tokens_consumed, contributed_at
        FROM contributions
        WHERE id = $1
    `
	row := r.db.QueryRow(ctx, query, id)

	var c domain.Contribution
	err := row.Scan(&c.ID, &c.PurchaseID, &c.UserID, &c.Amount, &c.MeterReading, &c.TokensConsumed, &c.ContributedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find contribution", zap.Error(err))
		return nil, err
	}
	return &c, nil
}

func (r *Repository) FindAll(ctx context.Context) ([]domain.Contribution, error) {
	query := `
        SELECT id, purchase_id, user_id, amount, meter_reading, tokens_consumed, contributed_at
        FROM contributions
        ORDER BY contributed_at ASC, id ASC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("can't get contributions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var contributions []domain.Contribution
	for rows.Next() {
		var c domain.Contribution
		err := rows.Scan(&c.ID, &c.PurchaseID, &c.UserID, &c.Amount, &c.MeterReading, &c.TokensConsumed, &c.ContributedAt)
		if err != nil {
			zap.L().Error("can't scan contribution row", zap.Error(err))
			return nil, err
		}
		contributions = append(contributions, c)
	}
	return contributions, nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.Contribution, error) {
	query := `
        SELECT id, purchase_id, user_id, amount, meter_reading, tokens_consumed, contributed_at
        FROM contributions
        WHERE user_id = $1
        ORDER BY contributed_at ASC, id ASC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("can't get contributions for user", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var contributions []domain.Contribution
	for rows.Next() {
		var c domain.Contribution
		err := rows.Scan(&c.ID, &c.PurchaseID, &c.UserID, &c.Amount, &c.MeterReading, &c.TokensConsumed, &c.ContributedAt)
		if err != nil {
			zap.L().Error("can't scan contribution row", zap.Error(err))
			return nil, err
		}
		contributions = append(contributions, c)
	}
	return contributions, nil
}

// Save inserts the settlement row. The UNIQUE constraint on purchase_id
// makes concurrent double-settlement lose with a conflict error.
func (r *Repository) Save(ctx context.Context, contribution *domain.Contribution) error {
	query := `
        INSERT INTO contributions (purchase_id, user_id, amount, meter_reading, tokens_consumed, contributed_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		row := r.db.QueryRow(ctx, query, contribution.PurchaseID, contribution.UserID, contribution.Amount, contribution.MeterReading, contribution.TokensConsumed, contribution.ContributedAt)
		if err := row.Scan(&contribution.ID); err != nil {
			zap.L().Error("can't save contribution", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int) error {
	query := `
        DELETE FROM contributions
        WHERE id = $1
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		_, err := r.db.Exec(ctx, query, id)
		if err != nil {
			zap.L().Error("failed to delete contribution", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}
