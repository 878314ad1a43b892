package repo

import (
	"github.com/tichaonax/electricity-tokens-sub004/internal/pg"
	contributionrepo "github.com/tichaonax/electricity-tokens-sub004/internal/repo/contribution-repo"
	meterrepo "github.com/tichaonax/electricity-tokens-sub004/internal/repo/meter-repo"
	purchaserepo "github.com/tichaonax/electricity-tokens-sub004/internal/repo/purchase-repo"
	userrepo "github.com/tichaonax/electricity-tokens-sub004/internal/repo/user-repo"
)

type Repositories struct {
	UserRepo         *userrepo.Repository
	PurchaseRepo     *purchaserepo.Repository
	ContributionRepo *contributionrepo.Repository
	MeterRepo        *meterrepo.Repository
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		UserRepo:         userrepo.New(conn),
		PurchaseRepo:     purchaserepo.New(conn, txManager),
		ContributionRepo: contributionrepo.New(conn, txManager),
		MeterRepo:        meterrepo.New(conn),
	}
}
