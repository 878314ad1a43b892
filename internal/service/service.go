package service

import (
	"github.com/tichaonax/electricity-tokens-sub004/internal/config"
	"github.com/tichaonax/electricity-tokens-sub004/internal/engine"
	"github.com/tichaonax/electricity-tokens-sub004/internal/pg"
	"github.com/tichaonax/electricity-tokens-sub004/internal/repo"
	"github.com/tichaonax/electricity-tokens-sub004/internal/service/authservice"
	"github.com/tichaonax/electricity-tokens-sub004/internal/service/contributionservice"
	"github.com/tichaonax/electricity-tokens-sub004/internal/service/purchaseservice"
	"github.com/tichaonax/electricity-tokens-sub004/internal/service/reportservice"
	"github.com/tichaonax/electricity-tokens-sub004/internal/service/settlementservice"
	pkgauth "github.com/tichaonax/electricity-tokens-sub004/pkg/auth"
)

type Services struct {
	AuthService         *authservice.Service
	PurchaseService     *purchaseservice.Service
	ContributionService *contributionservice.Service
	SettlementService   *settlementservice.Service
	ReportService       *reportservice.Service
}

func New(repo *repo.Repositories, txManager pg.TXManager, cfg *config.Config) *Services {
	thresholds := engine.NewThresholds(cfg.HealthyLimit, cfg.CriticalLimit)

	return &Services{
		AuthService:         authservice.New(repo.UserRepo, &pkgauth.HashService{}, &pkgauth.JWTService{}),
		PurchaseService:     purchaseservice.New(repo.PurchaseRepo, repo.ContributionRepo, txManager),
		ContributionService: contributionservice.New(repo.PurchaseRepo, repo.ContributionRepo, txManager, cfg.TokensTolerance),
		SettlementService:   settlementservice.New(repo.PurchaseRepo, repo.ContributionRepo, repo.MeterRepo, thresholds),
		ReportService:       reportservice.New(repo.PurchaseRepo, repo.ContributionRepo),
	}
}
