package engine

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

type TrendConfidence string

const (
	ConfidenceVeryLow  TrendConfidence = "very low"
	ConfidenceLow      TrendConfidence = "low"
	ConfidenceModerate TrendConfidence = "moderate"
	ConfidenceHigh     TrendConfidence = "high"
)

// Slopes flatter than this (kWh per month) are reported as stable.
const stableSlope = 0.5

type ConsumptionPoint struct {
	Month  time.Time
	Tokens float64
}

type ConsumptionTrend struct {
	Direction  TrendDirection
	Slope      decimal.Decimal
	NextMonth  decimal.Decimal
	Confidence TrendConfidence
}

// MonthlyConsumption buckets settled tokensConsumed by contribution month,
// oldest first.
func MonthlyConsumption(settled []SettledPurchase) []ConsumptionPoint {
	buckets := make(map[time.Time]float64)
	for _, s := range settled {
		at := s.Contribution.ContributedAt
		month := time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, time.UTC)
		buckets[month] += s.Contribution.TokensConsumed
	}

	points := make([]ConsumptionPoint, 0, len(buckets))
	for month, tokens := range buckets {
		points = append(points, ConsumptionPoint{Month: month, Tokens: tokens})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Month.Before(points[j].Month) })
	return points
}

// PredictConsumption fits a least-squares line through the monthly series
// and extrapolates one month ahead. Fewer than two points cannot carry a
// trend: the prediction is flat at the last observed value with very low
// confidence rather than an error.
func PredictConsumption(points []ConsumptionPoint) ConsumptionTrend {
	n := len(points)
	if n < 2 {
		next := 0.0
		if n == 1 {
			next = points[0].Tokens
		}
		return ConsumptionTrend{
			Direction:  TrendStable,
			Slope:      decimal.Zero,
			NextMonth:  decimal.NewFromFloat(next),
			Confidence: ConfidenceVeryLow,
		}
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, p := range points {
		x := float64(i)
		sumX += x
		sumY += p.Tokens
		sumXY += x * p.Tokens
		sumXX += x * x
	}
	fn := float64(n)
	slope := (fn*sumXY - sumX*sumY) / (fn*sumXX - sumX*sumX)
	intercept := (sumY - slope*sumX) / fn

	next := intercept + slope*fn
	if next < 0 {
		next = 0
	}

	direction := TrendStable
	switch {
	case slope > stableSlope:
		direction = TrendIncreasing
	case slope < -stableSlope:
		direction = TrendDecreasing
	}

	confidence := ConfidenceLow
	switch {
	case n >= 6:
		confidence = ConfidenceHigh
	case n >= 4:
		confidence = ConfidenceModerate
	}

	return ConsumptionTrend{
		Direction:  direction,
		Slope:      decimal.NewFromFloat(slope),
		NextMonth:  decimal.NewFromFloat(next),
		Confidence: confidence,
	}
}
