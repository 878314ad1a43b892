// Package engine implements the purchase-contribution reconciliation rules:
// chronological meter-reading validation, the sequential settlement gate,
// fair-share cost allocation and running-balance projection.
//
// Every function takes explicit snapshots of purchases and contributions
// and computes a pure result. The engine holds no state and performs no
// I/O; concurrency control lives at the storage boundary.
package engine

import (
	"errors"

	"github.com/tichaonax/electricity-tokens-sub004/internal/domain"
)

var (
	// ErrUnitCostUndefined signals a purchase with no tokens; dividing by
	// zero must surface as an error, never NaN or a silent zero.
	ErrUnitCostUndefined = errors.New("unit cost undefined: purchase has no tokens")
	// ErrDuplicateSettlement signals two contributions for one purchase in
	// an input batch. The database UNIQUE constraint prevents this for
	// persisted data; the engine re-checks so it is also safe against
	// hand-built fixtures.
	ErrDuplicateSettlement = errors.New("duplicate settlement for purchase in input")
	// ErrNoHistory signals an aggregate requested over an empty dataset.
	ErrNoHistory = errors.New("no purchase history: cannot compute")
)

// SettledPurchase pairs a purchase with its single settling contribution.
type SettledPurchase struct {
	Purchase     domain.Purchase
	Contribution domain.Contribution
}

// JoinSettled pairs each contribution with its purchase, keeping the
// purchases' chronological order. Contributions whose purchase is absent
// from the snapshot are dropped.
func JoinSettled(purchases []domain.Purchase, contributions []domain.Contribution) []SettledPurchase {
	byPurchase := make(map[int]domain.Contribution, len(contributions))
	for _, c := range contributions {
		byPurchase[c.PurchaseID] = c
	}

	var settled []SettledPurchase
	for _, p := range purchases {
		if c, ok := byPurchase[p.ID]; ok {
			settled = append(settled, SettledPurchase{Purchase: p, Contribution: c})
		}
	}
	return settled
}

// purchaseLess is the total order on purchases: date ascending, insertion
// id breaking ties.
func purchaseLess(a, b domain.Purchase) bool {
	if a.PurchaseDate.Equal(b.PurchaseDate) {
		return a.ID < b.ID
	}
	return a.PurchaseDate.Before(b.PurchaseDate)
}
