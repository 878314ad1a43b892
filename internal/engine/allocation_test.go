package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tichaonax/electricity-tokens-sub004/internal/domain"
)

func settledFixture() []SettledPurchase {
	return []SettledPurchase{
		{
			Purchase: domain.Purchase{
				ID: 1, TotalTokens: 1000, TotalPayment: 250, MeterReading: 5000, PurchaseDate: date(2024, 6, 1),
			},
			Contribution: domain.Contribution{
				ID: 1, PurchaseID: 1, UserID: 1, Amount: 250, MeterReading: 5000, TokensConsumed: 0, ContributedAt: date(2024, 6, 5),
			},
		},
		{
			Purchase: domain.Purchase{
				ID: 2, TotalTokens: 500, TotalPayment: 150, MeterReading: 6100, PurchaseDate: date(2024, 6, 15), IsEmergency: true,
			},
			Contribution: domain.Contribution{
				ID: 2, PurchaseID: 2, UserID: 2, Amount: 143, MeterReading: 6100, TokensConsumed: 1100, ContributedAt: date(2024, 6, 20),
			},
		},
	}
}

func TestUnitCost(t *testing.T) {
	unit, err := UnitCost(domain.Purchase{ID: 2, TotalTokens: 500, TotalPayment: 150})
	require.NoError(t, err)
	assert.True(t, unit.Equal(decimal.RequireFromString("0.3")), unit.String())

	_, err = UnitCost(domain.Purchase{ID: 3, TotalTokens: 0, TotalPayment: 100})
	assert.ErrorIs(t, err, ErrUnitCostUndefined)
}

func TestOptimalContribution(t *testing.T) {
	p := domain.Purchase{ID: 2, TotalTokens: 500, TotalPayment: 150}

	cost, err := OptimalContribution(1100, p)
	require.NoError(t, err)
	assert.True(t, cost.Equal(decimal.NewFromInt(330)), cost.String())

	cost, err = OptimalContribution(0, p)
	require.NoError(t, err)
	assert.True(t, cost.IsZero())
}

func TestTrueCost(t *testing.T) {
	breakdowns, err := TrueCost(settledFixture())
	require.NoError(t, err)
	require.Len(t, breakdowns, 2)

	// Contribution with zero consumption is pure credit.
	assert.Equal(t, 1, breakdowns[0].UserID)
	assert.True(t, breakdowns[0].TotalTrueCost.IsZero())
	assert.True(t, breakdowns[0].Overpayment.Equal(decimal.NewFromInt(250)), breakdowns[0].Overpayment.String())

	// 1100 kWh at 0.3/kWh costs 330; paying 143 leaves 187 owed.
	assert.Equal(t, 2, breakdowns[1].UserID)
	assert.True(t, breakdowns[1].TotalTrueCost.Equal(decimal.NewFromInt(330)), breakdowns[1].TotalTrueCost.String())
	assert.True(t, breakdowns[1].Overpayment.Equal(decimal.NewFromInt(-187)), breakdowns[1].Overpayment.String())
}

func TestTrueCostConservation(t *testing.T) {
	settled := settledFixture()
	breakdowns, err := TrueCost(settled)
	require.NoError(t, err)

	var sumContributed, sumTrueCost, sumOverpayment decimal.Decimal
	for _, b := range breakdowns {
		sumContributed = sumContributed.Add(b.TotalContributed)
		sumTrueCost = sumTrueCost.Add(b.TotalTrueCost)
		sumOverpayment = sumOverpayment.Add(b.Overpayment)
	}

	var wantTrueCost decimal.Decimal
	for _, s := range settled {
		cost, err := OptimalContribution(s.Contribution.TokensConsumed, s.Purchase)
		require.NoError(t, err)
		wantTrueCost = wantTrueCost.Add(cost)
	}

	assert.True(t, sumTrueCost.Equal(wantTrueCost))
	assert.True(t, sumOverpayment.Equal(sumContributed.Sub(sumTrueCost)))
}

func TestTrueCostIdempotence(t *testing.T) {
	settled := settledFixture()

	first, err := TrueCost(settled)
	require.NoError(t, err)
	second, err := TrueCost(settled)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestTrueCostRejectsDuplicatePurchase(t *testing.T) {
	settled := settledFixture()
	settled = append(settled, SettledPurchase{
		Purchase:     settled[0].Purchase,
		Contribution: domain.Contribution{ID: 3, PurchaseID: 1, UserID: 3, Amount: 10},
	})

	_, err := TrueCost(settled)
	assert.ErrorIs(t, err, ErrDuplicateSettlement)
}

func TestTrueCostZeroTokensPurchase(t *testing.T) {
	settled := []SettledPurchase{
		{
			Purchase:     domain.Purchase{ID: 9, TotalTokens: 0, TotalPayment: 50},
			Contribution: domain.Contribution{ID: 9, PurchaseID: 9, UserID: 1, Amount: 50, TokensConsumed: 10},
		},
	}

	_, err := TrueCost(settled)
	assert.ErrorIs(t, err, ErrUnitCostUndefined)
}

func TestPurchaseComparison(t *testing.T) {
	rows, err := PurchaseComparison(settledFixture())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 1, rows[0].PurchaseID)
	assert.True(t, rows[0].FairContribution.IsZero())
	assert.True(t, rows[0].Delta.Equal(decimal.NewFromInt(250)))

	assert.Equal(t, 2, rows[1].PurchaseID)
	assert.True(t, rows[1].IsEmergency)
	assert.True(t, rows[1].UnitCost.Equal(decimal.RequireFromString("0.3")))
	assert.True(t, rows[1].FairContribution.Equal(decimal.NewFromInt(330)))
	assert.True(t, rows[1].Delta.Equal(decimal.NewFromInt(-187)))
}

func TestPremiumReport(t *testing.T) {
	purchases := []domain.Purchase{
		{ID: 1, TotalTokens: 1000, TotalPayment: 250},
		{ID: 2, TotalTokens: 500, TotalPayment: 150, IsEmergency: true},
	}

	report, err := PremiumReport(purchases)
	require.NoError(t, err)

	// Standard rate 0.25/kWh; the same 500 kWh would have cost 125.
	assert.True(t, report.StandardRate.Equal(decimal.RequireFromString("0.25")))
	assert.True(t, report.PremiumPaid.Equal(decimal.NewFromInt(25)), report.PremiumPaid.String())
}

func TestPremiumReportNoStandardHistory(t *testing.T) {
	purchases := []domain.Purchase{
		{ID: 1, TotalTokens: 500, TotalPayment: 150, IsEmergency: true},
	}

	_, err := PremiumReport(purchases)
	assert.ErrorIs(t, err, ErrNoHistory)
}
