package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tichaonax/electricity-tokens-sub004/internal/domain"
)

// CostBreakdown aggregates one user's settlements: what they paid, what
// the consumed electricity actually cost, and the difference. Positive
// Overpayment is credit, negative is debt.
type CostBreakdown struct {
	UserID           int
	TotalContributed decimal.Decimal
	TotalTrueCost    decimal.Decimal
	Overpayment      decimal.Decimal
}

// PurchaseComparisonRow compares the actual contribution on one purchase
// with the fair contribution implied by metered consumption.
type PurchaseComparisonRow struct {
	PurchaseID         int
	UserID             int
	PurchaseDate       time.Time
	IsEmergency        bool
	UnitCost           decimal.Decimal
	TokensConsumed     decimal.Decimal
	ActualContribution decimal.Decimal
	FairContribution   decimal.Decimal
	Delta              decimal.Decimal
}

// UnitCost is totalPayment / totalTokens. A purchase without tokens has no
// defined rate; positive-number validation upstream should make that
// impossible, so encountering one is a computation error.
func UnitCost(p domain.Purchase) (decimal.Decimal, error) {
	if p.TotalTokens <= 0 {
		return decimal.Decimal{}, fmt.Errorf("purchase %d: %w", p.ID, ErrUnitCostUndefined)
	}
	return decimal.NewFromFloat(p.TotalPayment).Div(decimal.NewFromFloat(p.TotalTokens)), nil
}

// OptimalContribution is the fair price of tokensConsumed kWh drawn from a
// purchase: tokensConsumed x unit cost. It is the single primitive behind
// true cost, purchase comparison and the projections; reports call it with
// different input selections.
func OptimalContribution(tokensConsumed float64, p domain.Purchase) (decimal.Decimal, error) {
	unit, err := UnitCost(p)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.NewFromFloat(tokensConsumed).Mul(unit), nil
}

// TrueCost computes per-user cost breakdowns over a batch of settled
// purchases. The batch must contain at most one contribution per purchase.
// Output is ordered by user id so repeated runs over the same input are
// identical.
func TrueCost(settled []SettledPurchase) ([]CostBreakdown, error) {
	seen := make(map[int]struct{}, len(settled))
	byUser := make(map[int]*CostBreakdown)

	for _, s := range settled {
		if _, ok := seen[s.Purchase.ID]; ok {
			return nil, fmt.Errorf("purchase %d: %w", s.Purchase.ID, ErrDuplicateSettlement)
		}
		seen[s.Purchase.ID] = struct{}{}

		cost, err := OptimalContribution(s.Contribution.TokensConsumed, s.Purchase)
		if err != nil {
			return nil, err
		}

		b, ok := byUser[s.Contribution.UserID]
		if !ok {
			b = &CostBreakdown{UserID: s.Contribution.UserID}
			byUser[s.Contribution.UserID] = b
		}
		b.TotalContributed = b.TotalContributed.Add(decimal.NewFromFloat(s.Contribution.Amount))
		b.TotalTrueCost = b.TotalTrueCost.Add(cost)
	}

	out := make([]CostBreakdown, 0, len(byUser))
	for _, b := range byUser {
		b.Overpayment = b.TotalContributed.Sub(b.TotalTrueCost)
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

// PurchaseComparison builds the per-purchase actual-versus-fair view,
// ordered chronologically. Delta is actual minus fair: positive means the
// contributor overpaid on that purchase.
func PurchaseComparison(settled []SettledPurchase) ([]PurchaseComparisonRow, error) {
	seen := make(map[int]struct{}, len(settled))
	rows := make([]PurchaseComparisonRow, 0, len(settled))

	for _, s := range settled {
		if _, ok := seen[s.Purchase.ID]; ok {
			return nil, fmt.Errorf("purchase %d: %w", s.Purchase.ID, ErrDuplicateSettlement)
		}
		seen[s.Purchase.ID] = struct{}{}

		unit, err := UnitCost(s.Purchase)
		if err != nil {
			return nil, err
		}
		fair := decimal.NewFromFloat(s.Contribution.TokensConsumed).Mul(unit)
		actual := decimal.NewFromFloat(s.Contribution.Amount)

		rows = append(rows, PurchaseComparisonRow{
			PurchaseID:         s.Purchase.ID,
			UserID:             s.Contribution.UserID,
			PurchaseDate:       s.Purchase.PurchaseDate,
			IsEmergency:        s.Purchase.IsEmergency,
			UnitCost:           unit,
			TokensConsumed:     decimal.NewFromFloat(s.Contribution.TokensConsumed),
			ActualContribution: actual,
			FairContribution:   fair,
			Delta:              actual.Sub(fair),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].PurchaseDate.Equal(rows[j].PurchaseDate) {
			return rows[i].PurchaseID < rows[j].PurchaseID
		}
		return rows[i].PurchaseDate.Before(rows[j].PurchaseDate)
	})
	return rows, nil
}

// EmergencyPremium quantifies what emergency purchases cost above the
// regular rate. The core allocation never looks at isEmergency; this is a
// reporting view layered on top.
type EmergencyPremium struct {
	EmergencyTokens  decimal.Decimal
	EmergencyPayment decimal.Decimal
	StandardRate     decimal.Decimal
	PremiumPaid      decimal.Decimal
}

// PremiumReport compares emergency spend to what the same tokens would
// have cost at the trailing non-emergency rate. With no non-emergency
// history there is no reference rate and the report cannot be computed.
func PremiumReport(purchases []domain.Purchase) (EmergencyPremium, error) {
	var stdTokens, stdPayment, emTokens, emPayment decimal.Decimal
	for _, p := range purchases {
		if p.IsEmergency {
			emTokens = emTokens.Add(decimal.NewFromFloat(p.TotalTokens))
			emPayment = emPayment.Add(decimal.NewFromFloat(p.TotalPayment))
		} else {
			stdTokens = stdTokens.Add(decimal.NewFromFloat(p.TotalTokens))
			stdPayment = stdPayment.Add(decimal.NewFromFloat(p.TotalPayment))
		}
	}
	if stdTokens.IsZero() {
		return EmergencyPremium{}, ErrNoHistory
	}
	rate := stdPayment.Div(stdTokens)
	return EmergencyPremium{
		EmergencyTokens:  emTokens,
		EmergencyPayment: emPayment,
		StandardRate:     rate,
		PremiumPaid:      emPayment.Sub(emTokens.Mul(rate)),
	}, nil
}
