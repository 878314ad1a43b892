package contributionservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/tichaonax/electricity-tokens-sub004/internal/domain"
	"github.com/tichaonax/electricity-tokens-sub004/internal/engine"
	"github.com/tichaonax/electricity-tokens-sub004/internal/pg"
)

type PurchaseRepo interface {
	FindByID(ctx context.Context, id int) (*domain.Purchase, error)
	FindAll(ctx context.Context) ([]domain.Purchase, error)
}

type ContributionRepo interface {
	FindByID(ctx context.Context, id int) (*domain.Contribution, error)
	FindAll(ctx context.Context) ([]domain.Contribution, error)
	FindByUserID(ctx context.Context, userID int) ([]domain.Contribution, error)
	Save(ctx context.Context, contribution *domain.Contribution) error
	Delete(ctx context.Context, id int) error
}

type Service struct {
	purchaseRepo     PurchaseRepo
	contributionRepo ContributionRepo
	txManager        pg.TXManager
	tolerance        float64
}

func New(purchaseRepo PurchaseRepo, contributionRepo ContributionRepo, txManager pg.TXManager, tolerance float64) *Service {
	return &Service{
		purchaseRepo:     purchaseRepo,
		contributionRepo: contributionRepo,
		txManager:        txManager,
		tolerance:        tolerance,
	}
}

var (
	ErrPurchaseNotFound     = errors.New("purchase not found")
	ErrContributionNotFound = errors.New("contribution not found")
	ErrAlreadySettled       = errors.New("purchase already has a contribution")
	ErrNegativeAmount       = errors.New("amount and tokens consumed must not be negative")
)

// GateError reports an out-of-order settlement attempt, carrying the id
// of the purchase that must be settled first.
type GateError struct {
	Decision engine.GateDecision
}

func (e *GateError) Error() string {
	return e.Decision.Reason
}

type ReadingError struct {
	Check engine.ReadingCheck
}

func (e *ReadingError) Error() string {
	return fmt.Sprintf("meter reading too low, minimum is %g (%s)", e.Check.SuggestedMinimum, e.Check.Context)
}

type TokensError struct {
	Check engine.TokensCheck
}

func (e *TokensError) Error() string {
	return e.Check.Context
}

// Create settles a purchase. The gate check, the reading validation and
// the insert run in one transaction; the UNIQUE constraint on purchase_id
// is the backstop against a concurrent settlement of the same purchase.
func (s *Service) Create(ctx context.Context, contribution *domain.Contribution, isAdmin bool) error {
	if contribution.Amount < 0 || contribution.TokensConsumed < 0 {
		return ErrNegativeAmount
	}
	if contribution.ContributedAt.IsZero() {
		contribution.ContributedAt = time.Now()
	}

	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		purchases, err := s.purchaseRepo.FindAll(ctx)
		if err != nil {
			return err
		}
		contributions, err := s.contributionRepo.FindAll(ctx)
		if err != nil {
			return err
		}

		var purchase *domain.Purchase
		for i := range purchases {
			if purchases[i].ID == contribution.PurchaseID {
				purchase = &purchases[i]
				break
			}
		}
		if purchase == nil {
			return ErrPurchaseNotFound
		}

		decision := engine.CanAcceptContribution(purchases, contributions, contribution.PurchaseID, isAdmin)
		if !decision.CanContribute {
			if decision.NextAvailablePurchaseID == 0 {
				return ErrAlreadySettled
			}
			return &GateError{Decision: decision}
		}
		if decision.Reason != "" {
			zap.L().Warn("sequential gate bypassed",
				zap.Int("purchaseID", contribution.PurchaseID),
				zap.Int("nextAvailable", decision.NextAvailablePurchaseID))
		}

		// The settlement reading may not fall below the purchase's own
		// reading, nor below anything recorded earlier.
		if contribution.MeterReading < purchase.MeterReading {
			return &ReadingError{Check: engine.ReadingCheck{
				SuggestedMinimum: purchase.MeterReading,
				Context: fmt.Sprintf("purchase %d recorded %g kWh on %s",
					purchase.ID, purchase.MeterReading, purchase.PurchaseDate.Format("2006-01-02")),
			}}
		}
		check := engine.ValidateReading(purchases, contributions, contribution.MeterReading, contribution.ContributedAt, engine.ReadingKindContribution, 0)
		if !check.Valid {
			return &ReadingError{Check: check}
		}

		tokensCheck := engine.ValidateTokensConsumed(purchases, contributions, *contribution, s.tolerance)
		if !tokensCheck.Valid {
			return &TokensError{Check: tokensCheck}
		}

		return s.contributionRepo.Save(ctx, contribution)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadySettled
		}
		return err
	}

	zap.L().Info("contribution recorded",
		zap.Int("purchaseID", contribution.PurchaseID),
		zap.Int("userID", contribution.UserID),
		zap.Float64("amount", contribution.Amount))
	return nil
}

// Delete removes a settlement, re-opening the sequential gate for its
// purchase. Restricted to admins at the HTTP layer.
func (s *Service) Delete(ctx context.Context, id int) error {
	contribution, err := s.contributionRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if contribution == nil {
		return ErrContributionNotFound
	}
	if err := s.contributionRepo.Delete(ctx, id); err != nil {
		return err
	}
	zap.L().Info("contribution deleted, purchase re-opened",
		zap.Int("contributionID", id),
		zap.Int("purchaseID", contribution.PurchaseID))
	return nil
}

// GetSettled returns the settled history with purchases joined, in
// chronological purchase order.
func (s *Service) GetSettled(ctx context.Context) ([]engine.SettledPurchase, error) {
	purchases, err := s.purchaseRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	contributions, err := s.contributionRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return engine.JoinSettled(purchases, contributions), nil
}

func (s *Service) GetByUser(ctx context.Context, userID int) ([]domain.Contribution, error) {
	contributions, err := s.contributionRepo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to fetch contributions", zap.Error(err))
		return nil, err
	}
	return contributions, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
