package service

import (
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/tichaonax/electricity-tokens-sub004/internal/config"
	"github.com/tichaonax/electricity-tokens-sub004/internal/pg"
	"github.com/tichaonax/electricity-tokens-sub004/internal/repo"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mockDB.Close()
	mockTxManager := pg.NewMockTXManager(ctrl)

	repos := repo.New(mockDB, mockTxManager)
	cfg := &config.Config{
		HealthyLimit:    5,
		CriticalLimit:   100,
		TokensTolerance: 1.1,
	}

	services := New(repos, mockTxManager, cfg)

	assert.NotNil(t, services.AuthService)
	assert.NotNil(t, services.PurchaseService)
	assert.NotNil(t, services.ContributionService)
	assert.NotNil(t, services.SettlementService)
	assert.NotNil(t, services.ReportService)
}
