package engine

import (
	"github.com/shopspring/decimal"
	"github.com/tichaonax/electricity-tokens-sub004/internal/domain"
)

type BalanceStatus string

const (
	StatusHealthy  BalanceStatus = "healthy"
	StatusWarning  BalanceStatus = "warning"
	StatusCritical BalanceStatus = "critical"
)

// Thresholds classify a contribution balance. They come from
// configuration, not engine logic: healthy down to -HealthyLimit, critical
// at or below -CriticalLimit, warning between.
type Thresholds struct {
	HealthyLimit  decimal.Decimal
	CriticalLimit decimal.Decimal
}

func NewThresholds(healthyLimit, criticalLimit float64) Thresholds {
	return Thresholds{
		HealthyLimit:  decimal.NewFromFloat(healthyLimit),
		CriticalLimit: decimal.NewFromFloat(criticalLimit),
	}
}

func (t Thresholds) Classify(balance decimal.Decimal) BalanceStatus {
	switch {
	case balance.GreaterThanOrEqual(t.HealthyLimit.Neg()):
		return StatusHealthy
	case balance.LessThanOrEqual(t.CriticalLimit.Neg()):
		return StatusCritical
	default:
		return StatusWarning
	}
}

// RunningBalance extends the allocation output with forward-looking
// figures for one user.
type RunningBalance struct {
	ContributionBalance                 decimal.Decimal
	TokensConsumedSinceLastContribution decimal.Decimal
	AnticipatedPayment                  decimal.Decimal
	AnticipatedOthersPayment            decimal.Decimal
	AnticipatedTokenPurchase            decimal.Decimal
	HistoricalCostPerKwh                decimal.Decimal
	Status                              BalanceStatus
}

// ProjectRunningBalance estimates what the user's next settlement looks
// like: consumption metered since the last settlement is priced at the
// trailing average rate, net of any existing credit or debt.
//
//   - HistoricalCostPerKwh: sum(payment) / sum(tokens) over all purchases.
//   - TokensConsumedSinceLastContribution: currentReading minus the latest
//     settled reading (highest purchase reading when nothing is settled).
//     A stale snapshot below that baseline projects as zero, not negative.
//   - AnticipatedPayment: unsettled kWh x rate - balance.
//   - AnticipatedTokenPurchase: unsettled kWh x rate, the forecast total
//     of the next purchase.
//   - AnticipatedOthersPayment: that forecast scaled by the other members'
//     historical consumption share.
func ProjectRunningBalance(purchases []domain.Purchase, settled []SettledPurchase, userID int, currentReading float64, th Thresholds) (RunningBalance, error) {
	if len(purchases) == 0 {
		return RunningBalance{}, ErrNoHistory
	}

	var sumTokens, sumPayment decimal.Decimal
	for _, p := range purchases {
		sumTokens = sumTokens.Add(decimal.NewFromFloat(p.TotalTokens))
		sumPayment = sumPayment.Add(decimal.NewFromFloat(p.TotalPayment))
	}
	if sumTokens.IsZero() {
		return RunningBalance{}, ErrUnitCostUndefined
	}
	rate := sumPayment.Div(sumTokens)

	breakdowns, err := TrueCost(settled)
	if err != nil {
		return RunningBalance{}, err
	}
	var balance decimal.Decimal
	for _, b := range breakdowns {
		if b.UserID == userID {
			balance = b.Overpayment
			break
		}
	}

	baseline := -1.0
	for _, s := range settled {
		if s.Contribution.MeterReading > baseline {
			baseline = s.Contribution.MeterReading
		}
	}
	if baseline < 0 {
		for _, p := range purchases {
			if p.MeterReading > baseline {
				baseline = p.MeterReading
			}
		}
	}
	consumed := decimal.NewFromFloat(currentReading - baseline)
	if consumed.IsNegative() {
		consumed = decimal.Zero
	}

	nextPurchase := consumed.Mul(rate)
	payment := nextPurchase.Sub(balance)

	var userTokens, totalTokens decimal.Decimal
	for _, s := range settled {
		d := decimal.NewFromFloat(s.Contribution.TokensConsumed)
		totalTokens = totalTokens.Add(d)
		if s.Contribution.UserID == userID {
			userTokens = userTokens.Add(d)
		}
	}
	share := decimal.NewFromInt(1)
	if totalTokens.IsPositive() {
		share = userTokens.Div(totalTokens)
	}
	othersPayment := nextPurchase.Mul(decimal.NewFromInt(1).Sub(share))

	return RunningBalance{
		ContributionBalance:                 balance,
		TokensConsumedSinceLastContribution: consumed,
		AnticipatedPayment:                  payment,
		AnticipatedOthersPayment:            othersPayment,
		AnticipatedTokenPurchase:            nextPurchase,
		HistoricalCostPerKwh:                rate,
		Status:                              th.Classify(balance),
	}, nil
}
