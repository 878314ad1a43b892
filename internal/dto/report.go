package dto

import "time"

type PurchaseComparisonRowDTO struct {
	PurchaseID         int       `json:"purchase_id" example:"2"`
	UserID             int       `json:"user_id" example:"2"`
	PurchaseDate       time.Time `json:"purchase_date" example:"2024-06-15T00:00:00Z"`
	IsEmergency        bool      `json:"is_emergency" example:"true"`
	UnitCost           float64   `json:"unit_cost" example:"0.3"`
	TokensConsumed     float64   `json:"tokens_consumed" example:"1100"`
	ActualContribution float64   `json:"actual_contribution" example:"143"`
	FairContribution   float64   `json:"fair_contribution" example:"330"`
	Delta              float64   `json:"delta" example:"-187"`
}

type PremiumReportResponseDTO struct {
	EmergencyTokens  float64 `json:"emergency_tokens" example:"500"`
	EmergencyPayment float64 `json:"emergency_payment" example:"150"`
	StandardRate     float64 `json:"standard_rate" example:"0.25"`
	PremiumPaid      float64 `json:"premium_paid" example:"25"`
}

type ConsumptionPointDTO struct {
	Month  string  `json:"month" example:"2024-06"`
	Tokens float64 `json:"tokens" example:"150"`
}

type ConsumptionTrendResponseDTO struct {
	Direction  string                `json:"direction" example:"increasing"`
	Slope      float64               `json:"slope" example:"50"`
	NextMonth  float64               `json:"next_month" example:"250"`
	Confidence string                `json:"confidence" example:"low"`
	Months     []ConsumptionPointDTO `json:"months"`
}
