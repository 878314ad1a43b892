package engine

import (
	"fmt"
	"sort"

	"github.com/tichaonax/electricity-tokens-sub004/internal/domain"
)

// GateDecision says whether a purchase may receive its contribution now.
// When blocked, NextAvailablePurchaseID identifies the purchase that must
// be settled first so the caller can redirect the user.
type GateDecision struct {
	CanContribute           bool
	Reason                  string
	NextAvailablePurchaseID int
}

// CanAcceptContribution enforces the sequential settlement order:
// contributions walk through purchases oldest first, because each
// tokensConsumed figure is read as cumulative usage since the previous
// settlement. Skipping ahead would leave the skipped purchase's fair share
// undefined. Admins may bypass the order for corrective entry; the
// decision still reports the purchase that was due.
func CanAcceptContribution(purchases []domain.Purchase, contributions []domain.Contribution, purchaseID int, isAdmin bool) GateDecision {
	settled := make(map[int]struct{}, len(contributions))
	for _, c := range contributions {
		settled[c.PurchaseID] = struct{}{}
	}

	var requested *domain.Purchase
	for i := range purchases {
		if purchases[i].ID == purchaseID {
			requested = &purchases[i]
			break
		}
	}
	if requested == nil {
		return GateDecision{
			CanContribute: false,
			Reason:        fmt.Sprintf("purchase %d not found", purchaseID),
		}
	}
	if _, ok := settled[purchaseID]; ok {
		// One contribution per purchase; not even admins may add a second.
		return GateDecision{
			CanContribute: false,
			Reason:        fmt.Sprintf("purchase %d already has a contribution", purchaseID),
		}
	}

	ordered := make([]domain.Purchase, len(purchases))
	copy(ordered, purchases)
	sort.Slice(ordered, func(i, j int) bool { return purchaseLess(ordered[i], ordered[j]) })

	for _, p := range ordered {
		if _, ok := settled[p.ID]; ok {
			continue
		}
		if p.ID == purchaseID {
			return GateDecision{CanContribute: true}
		}
		if isAdmin {
			return GateDecision{
				CanContribute:           true,
				Reason:                  fmt.Sprintf("sequential order bypassed by admin; purchase %d is still unsettled", p.ID),
				NextAvailablePurchaseID: p.ID,
			}
		}
		return GateDecision{
			CanContribute:           false,
			Reason:                  fmt.Sprintf("purchase %d must be settled first", p.ID),
			NextAvailablePurchaseID: p.ID,
		}
	}

	// Unreachable: the requested purchase is unsettled, so the walk above
	// always encounters it.
	return GateDecision{CanContribute: true}
}
