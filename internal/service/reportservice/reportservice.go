package reportservice

import (
	"context"
	"time"

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

type Service struct {
	purchaseRepo     PurchaseRepo
	contributionRepo ContributionRepo
}

func New(purchaseRepo PurchaseRepo, contributionRepo ContributionRepo) *Service {
	return &Service{
		purchaseRepo:     purchaseRepo,
		contributionRepo: contributionRepo,
	}
}

// GetPurchaseComparison builds the actual-versus-fair view. Zero from/to
// bounds mean an unbounded range; the dataset is small enough that the
// filter runs in memory.
func (s *Service) GetPurchaseComparison(ctx context.Context, from, to time.Time) ([]engine.PurchaseComparisonRow, error) {
	settled, err := s.settled(ctx)
	if err != nil {
		return nil, err
	}

	filtered := settled[:0:0]
	for _, sp := range settled {
		if !from.IsZero() && sp.Purchase.PurchaseDate.Before(from) {
			continue
		}
		if !to.IsZero() && sp.Purchase.PurchaseDate.After(to) {
			continue
		}
		filtered = append(filtered, sp)
	}

	rows, err := engine.PurchaseComparison(filtered)
	if err != nil {
		zap.L().Error("failed to build purchase comparison", zap.Error(err))
		return nil, err
	}
	return rows, nil
}

// GetPremiumReport quantifies the cost of emergency purchases above the
// regular rate.
func (s *Service) GetPremiumReport(ctx context.Context) (engine.EmergencyPremium, error) {
	purchases, err := s.purchaseRepo.FindAll(ctx)
	if err != nil {
		return engine.EmergencyPremium{}, err
	}
	report, err := engine.PremiumReport(purchases)
	if err != nil {
		zap.L().Error("failed to build premium report", zap.Error(err))
		return engine.EmergencyPremium{}, err
	}
	return report, nil
}

// GetConsumptionTrend returns the monthly consumption series and its
// linear-trend prediction.
func (s *Service) GetConsumptionTrend(ctx context.Context) ([]engine.ConsumptionPoint, engine.ConsumptionTrend, error) {
	settled, err := s.settled(ctx)
	if err != nil {
		return nil, engine.ConsumptionTrend{}, err
	}
	points := engine.MonthlyConsumption(settled)
	return points, engine.PredictConsumption(points), nil
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
