package purchaserepo

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

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Purchase, error) {
	query := `
        SELECT id, creator_id, total_tokens, total_payment, meter_reading, token_number, is_emergency, purchase_date, created_at
        FROM purchases
        WHERE id = $1
    `
	row := r.db.QueryRow(ctx, query, id)

	var p domain.Purchase
	err := row.Scan(&p.ID, &p.CreatorID, &p.TotalTokens, &p.TotalPayment, &p.MeterReading, &p.TokenNumber, &p.IsEmergency, &p.PurchaseDate, &p.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find purchase", zap.Error(err))
		return nil, err
	}
	return &p, nil
}

// FindAll returns every purchase in chronological order, ties broken by
// insertion id. The engine relies on this total order.
func (r *Repository) FindAll(ctx context.Context) ([]domain.Purchase, error) {
	query := `
        SELECT id, creator_id, total_tokens, total_payment, meter_reading, token_number, is_emergency, purchase_date, created_at
        FROM purchases
        ORDER BY purchase_date ASC, id ASC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("can't get purchases", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var purchases []domain.Purchase
	for rows.Next() {
		var p domain.Purchase
		err := rows.Scan(&p.ID, &p.CreatorID, &p.TotalTokens, &p.TotalPayment, &p.MeterReading, &p.TokenNumber, &p.IsEmergency, &p.PurchaseDate, &p.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan purchase row", zap.Error(err))
			return nil, err
		}
		purchases = append(purchases, p)
	}
	return purchases, nil
}

func (r *Repository) Save(ctx context.Context, purchase *domain.Purchase) error {
	query := `
        INSERT INTO purchases (creator_id, total_tokens, total_payment, meter_reading, token_number, is_emergency, purchase_date)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		row := r.db.QueryRow(ctx, query, purchase.CreatorID, purchase.TotalTokens, purchase.TotalPayment, purchase.MeterReading, purchase.TokenNumber, purchase.IsEmergency, purchase.PurchaseDate)
		if err := row.Scan(&purchase.ID); err != nil {
			zap.L().Error("can't save purchase", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, purchase *domain.Purchase) error {
	query := `
        UPDATE purchases
        SET total_tokens = $1, total_payment = $2, meter_reading = $3, token_number = $4, is_emergency = $5, purchase_date = $6
        WHERE id = $7
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		_, err := r.db.Exec(ctx, query, purchase.TotalTokens, purchase.TotalPayment, purchase.MeterReading, purchase.TokenNumber, purchase.IsEmergency, purchase.PurchaseDate, purchase.ID)
		if err != nil {
			zap.L().Error("failed to update purchase", zap.Error(err))
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
        DELETE FROM purchases
        WHERE id = $1
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		_, err := r.db.Exec(ctx, query, id)
		if err != nil {
			zap.L().Error("failed to delete purchase", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}
