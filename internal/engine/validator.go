package engine

import (
	"fmt"
	"time"

	"github.com/tichaonax/electricity-tokens-sub004/internal/domain"
)

type ReadingKind string

const (
	ReadingKindPurchase     ReadingKind = "purchase"
	ReadingKindContribution ReadingKind = "contribution"
)

// ReadingCheck is the validator verdict. On failure SuggestedMinimum holds
// the prior maximum the candidate must reach and Context names the record
// that recorded it.
type ReadingCheck struct {
	Valid            bool
	SuggestedMinimum float64
	Context          string
}

// ValidateReading decides whether a candidate meter reading is
// chronologically and physically consistent with every purchase and
// contribution recorded strictly before candidateDate. Equal readings are
// valid (zero consumption since the last record). excludeID skips the
// record of the given kind being edited; pass 0 on create.
func ValidateReading(purchases []domain.Purchase, contributions []domain.Contribution, candidate float64, candidateDate time.Time, kind ReadingKind, excludeID int) ReadingCheck {
	if candidate < 0 {
		return ReadingCheck{
			Valid:            false,
			SuggestedMinimum: 0,
			Context:          "meter readings cannot be negative",
		}
	}

	maxReading := -1.0
	var maxContext string

	for _, p := range purchases {
		if kind == ReadingKindPurchase && p.ID == excludeID {
			continue
		}
		if !p.PurchaseDate.Before(candidateDate) {
			continue
		}
		if p.MeterReading > maxReading {
			maxReading = p.MeterReading
			maxContext = fmt.Sprintf("previous purchase recorded %g kWh on %s",
				p.MeterReading, p.PurchaseDate.Format("2006-01-02"))
		}
	}

	for _, c := range contributions {
		if kind == ReadingKindContribution && c.ID == excludeID {
			continue
		}
		if !c.ContributedAt.Before(candidateDate) {
			continue
		}
		if c.MeterReading > maxReading {
			maxReading = c.MeterReading
			maxContext = fmt.Sprintf("previous contribution recorded %g kWh on %s",
				c.MeterReading, c.ContributedAt.Format("2006-01-02"))
		}
	}

	// First reading in the system: any non-negative value is consistent.
	if maxReading < 0 {
		return ReadingCheck{Valid: true}
	}

	if candidate < maxReading {
		return ReadingCheck{
			Valid:            false,
			SuggestedMinimum: maxReading,
			Context:          maxContext,
		}
	}
	return ReadingCheck{Valid: true}
}

// TokensCheck is the verdict on a submitted tokensConsumed figure.
type TokensCheck struct {
	Valid      bool
	MaxAllowed float64
	Context    string
}

// ValidateTokensConsumed bounds a contribution's tokensConsumed by the
// meter delta since the previous settlement, scaled by a tolerance factor.
// The tolerance absorbs manual-entry slack; historical data was accepted
// under a 1.1 factor, so tightening it would invalidate old records.
//
// The baseline is the latest prior contribution's reading; before any
// settlement exists it is the earliest purchase's reading.
func ValidateTokensConsumed(purchases []domain.Purchase, contributions []domain.Contribution, candidate domain.Contribution, tolerance float64) TokensCheck {
	baseline := -1.0
	for _, c := range contributions {
		if c.ID == candidate.ID && candidate.ID != 0 {
			continue
		}
		if !c.ContributedAt.Before(candidate.ContributedAt) {
			continue
		}
		if c.MeterReading > baseline {
			baseline = c.MeterReading
		}
	}
	if baseline < 0 {
		if first, ok := earliestPurchase(purchases); ok {
			baseline = first.MeterReading
		}
	}
	if baseline < 0 {
		// No settlements and no purchases: nothing to measure against.
		return TokensCheck{Valid: candidate.TokensConsumed == 0, MaxAllowed: 0,
			Context: "no prior records to measure consumption against"}
	}

	delta := candidate.MeterReading - baseline
	if delta < 0 {
		delta = 0
	}
	maxAllowed := delta * tolerance
	if candidate.TokensConsumed > maxAllowed {
		return TokensCheck{
			Valid:      false,
			MaxAllowed: maxAllowed,
			Context: fmt.Sprintf("tokens consumed %g exceeds the %g kWh metered since the last settlement (tolerance %g)",
				candidate.TokensConsumed, delta, tolerance),
		}
	}
	return TokensCheck{Valid: true, MaxAllowed: maxAllowed}
}

func earliestPurchase(purchases []domain.Purchase) (domain.Purchase, bool) {
	if len(purchases) == 0 {
		return domain.Purchase{}, false
	}
	first := purchases[0]
	for _, p := range purchases[1:] {
		if purchaseLess(p, first) {
			first = p
		}
	}
	return first, true
}
