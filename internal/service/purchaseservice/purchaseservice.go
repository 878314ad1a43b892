package purchaseservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tichaonax/electricity-tokens-sub004/internal/domain"
	"github.com/tichaonax/electricity-tokens-sub004/internal/engine"
	"github.com/tichaonax/electricity-tokens-sub004/internal/pg"
	"github.com/tichaonax/electricity-tokens-sub004/pkg/validate"
)

type PurchaseRepo interface {
	FindByID(ctx context.Context, id int) (*domain.Purchase, error)
	FindAll(ctx context.Context) ([]domain.Purchase, error)
	Save(ctx context.Context, purchase *domain.Purchase) error
	Update(ctx context.Context, purchase *domain.Purchase) error
	Delete(ctx context.Context, id int) error
}

type ContributionRepo interface {
	FindAll(ctx context.Context) ([]domain.Contribution, error)
	FindByPurchaseID(ctx context.Context, purchaseID int) (*domain.Contribution, error)
}

type Service struct {
	purchaseRepo     PurchaseRepo
	contributionRepo ContributionRepo
	txManager        pg.TXManager
}

func New(purchaseRepo PurchaseRepo, contributionRepo ContributionRepo, txManager pg.TXManager) *Service {
	return &Service{
		purchaseRepo:     purchaseRepo,
		contributionRepo: contributionRepo,
		txManager:        txManager,
	}
}

var (
	ErrInvalidAmount      = errors.New("tokens, payment and meter reading must be positive")
	ErrInvalidTokenNumber = errors.New("invalid prepaid token number")
	ErrPurchaseNotFound   = errors.New("purchase not found")
	// ErrPurchaseSettled guards immutability: a purchase referenced by a
	// contribution cannot change until the contribution is removed.
	ErrPurchaseSettled = errors.New("purchase already has a contribution")
)

// ReadingError carries the validator verdict so the caller can suggest a
// correction to the user.
type ReadingError struct {
	Check engine.ReadingCheck
}

func (e *ReadingError) Error() string {
	return fmt.Sprintf("meter reading too low, minimum is %g (%s)", e.Check.SuggestedMinimum, e.Check.Context)
}

func (s *Service) Create(ctx context.Context, purchase *domain.Purchase) error {
	if purchase.TotalTokens <= 0 || purchase.TotalPayment <= 0 || purchase.MeterReading <= 0 {
		return ErrInvalidAmount
	}
	if purchase.TokenNumber != "" && !validate.IsTokenNumber(purchase.TokenNumber) {
		return ErrInvalidTokenNumber
	}
	if purchase.PurchaseDate.IsZero() {
		purchase.PurchaseDate = time.Now()
	}

	// Validation and insert share one transaction so a concurrent insert
	// cannot slip a higher reading in between.
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.checkReading(ctx, purchase, 0); err != nil {
			return err
		}
		if err := s.purchaseRepo.Save(ctx, purchase); err != nil {
			zap.L().Error("can't save purchase: ", zap.Error(err))
			return err
		}
		zap.L().Info("purchase recorded",
			zap.Int("id", purchase.ID),
			zap.Float64("tokens", purchase.TotalTokens),
			zap.Bool("emergency", purchase.IsEmergency))
		return nil
	})
}

func (s *Service) Update(ctx context.Context, purchase *domain.Purchase) error {
	if purchase.TotalTokens <= 0 || purchase.TotalPayment <= 0 || purchase.MeterReading <= 0 {
		return ErrInvalidAmount
	}
	if purchase.TokenNumber != "" && !validate.IsTokenNumber(purchase.TokenNumber) {
		return ErrInvalidTokenNumber
	}

	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		existing, err := s.purchaseRepo.FindByID(ctx, purchase.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			return ErrPurchaseNotFound
		}
		contribution, err := s.contributionRepo.FindByPurchaseID(ctx, purchase.ID)
		if err != nil {
			return err
		}
		if contribution != nil {
			return ErrPurchaseSettled
		}
		if err := s.checkReading(ctx, purchase, purchase.ID); err != nil {
			return err
		}
		return s.purchaseRepo.Update(ctx, purchase)
	})
}

func (s *Service) Delete(ctx context.Context, id int) error {
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		existing, err := s.purchaseRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return ErrPurchaseNotFound
		}
		contribution, err := s.contributionRepo.FindByPurchaseID(ctx, id)
		if err != nil {
			return err
		}
		if contribution != nil {
			return ErrPurchaseSettled
		}
		return s.purchaseRepo.Delete(ctx, id)
	})
}

func (s *Service) GetAll(ctx context.Context) ([]domain.Purchase, error) {
	purchases, err := s.purchaseRepo.FindAll(ctx)
	if err != nil {
		zap.L().Error("failed to get purchases", zap.Error(err))
		return nil, err
	}
	return purchases, nil
}

func (s *Service) GetByID(ctx context.Context, id int) (*domain.Purchase, error) {
	purchase, err := s.purchaseRepo.FindByID(ctx, id)
	if err != nil {
		zap.L().Error("failed to get purchase", zap.Error(err))
		return nil, err
	}
	if purchase == nil {
		return nil, ErrPurchaseNotFound
	}
	return purchase, nil
}

func (s *Service) checkReading(ctx context.Context, purchase *domain.Purchase, excludeID int) error {
	purchases, err := s.purchaseRepo.FindAll(ctx)
	if err != nil {
		return err
	}
	contributions, err := s.contributionRepo.FindAll(ctx)
	if err != nil {
		return err
	}
	check := engine.ValidateReading(purchases, contributions, purchase.MeterReading, purchase.PurchaseDate, engine.ReadingKindPurchase, excludeID)
	if !check.Valid {
		return &ReadingError{Check: check}
	}
	return nil
}
