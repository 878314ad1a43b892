package settlementservice

import (
	"context"

	"go.uber.org/zap"

	"github.com/tichaonax/electricity-tokens-sub004/internal/domain"
	"github.com/tichaonax/electricity-tokens-sub004/internal/engine"
)

type PurchaseRepo interface {
	FindAll(ctx context.Context) ([]domain.Purchase, error)
}

type ContributionRepo interface {
	FindAll(ctx context.Context) ([]domain.Contribution, error)
}

type MeterRepo interface {
	Latest(ctx context.Context) (*domain.MeterSnapshot, error)
}

type Service struct {
	purchaseRepo     PurchaseRepo
	contributionRepo ContributionRepo
	meterRepo        MeterRepo
	thresholds       engine.Thresholds
}

func New(purchaseRepo PurchaseRepo, contributionRepo ContributionRepo, meterRepo MeterRepo, thresholds engine.Thresholds) *Service {
	return &Service{
		purchaseRepo:     purchaseRepo,
		contributionRepo: contributionRepo,
		meterRepo:        meterRepo,
		thresholds:       thresholds,
	}
}

func (s *Service) GetCostBreakdowns(ctx context.Context) ([]engine.CostBreakdown, error) {
	settled, err := s.settled(ctx)
	if err != nil {
		return nil, err
	}
	breakdowns, err := engine.TrueCost(settled)
	if err != nil {
		zap.L().Error("failed to compute cost breakdowns", zap.Error(err))
		return nil, err
	}
	return breakdowns, nil
}

func (s *Service) GetUserBreakdown(ctx context.Context, userID int) (engine.CostBreakdown, error) {
	breakdowns, err := s.GetCostBreakdowns(ctx)
	if err != nil {
		return engine.CostBreakdown{}, err
	}
	for _, b := range breakdowns {
		if b.UserID == userID {
			return b, nil
		}
	}
	// A user with no settlements owes and is owed nothing.
	return engine.CostBreakdown{UserID: userID}, nil
}

// GetRunningBalance projects the user's position forward. The current
// reading comes from the poller's latest snapshot; without one the
// highest settled reading stands in, which projects zero unsettled
// consumption.
func (s *Service) GetRunningBalance(ctx context.Context, userID int) (engine.RunningBalance, error) {
	purchases, err := s.purchaseRepo.FindAll(ctx)
	if err != nil {
		return engine.RunningBalance{}, err
	}
	contributions, err := s.contributionRepo.FindAll(ctx)
	if err != nil {
		return engine.RunningBalance{}, err
	}
	settled := engine.JoinSettled(purchases, contributions)

	currentReading := 0.0
	snapshot, err := s.meterRepo.Latest(ctx)
	if err != nil {
		return engine.RunningBalance{}, err
	}
	if snapshot != nil {
		currentReading = snapshot.Reading
	}

	balance, err := engine.ProjectRunningBalance(purchases, settled, userID, currentReading, s.thresholds)
	if err != nil {
		zap.L().Error("failed to project running balance", zap.Error(err), zap.Int("userID", userID))
		return engine.RunningBalance{}, err
	}
	return balance, nil
}

func (s *Service) settled(ctx context.Context) ([]engine.SettledPurchase, error) {
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
