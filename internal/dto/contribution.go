package dto

import "time"

type CreateContributionRequestDTO struct {
	PurchaseID     int     `json:"purchase_id" example:"1"`
	Amount         float64 `json:"amount" example:"250"`
	MeterReading   float64 `json:"meter_reading" example:"5000"`
	TokensConsumed float64 `json:"tokens_consumed" example:"0"`
}

type ContributionResponseDTO struct {
	ID             int       `json:"id" example:"1"`
	PurchaseID     int       `json:"purchase_id" example:"1"`
	UserID         int       `json:"user_id" example:"1"`
	Amount         float64   `json:"amount" example:"250"`
	MeterReading   float64   `json:"meter_reading" example:"5000"`
	TokensConsumed float64   `json:"tokens_consumed" example:"0"`
	ContributedAt  time.Time `json:"contributed_at" example:"2024-06-05T00:00:00Z"`
}

// GateBlockedDTO reports an out-of-order settlement attempt and where to
// go instead.
type GateBlockedDTO struct {
	Message                 string `json:"message"`
	NextAvailablePurchaseID int    `json:"next_available_purchase_id" example:"2"`
}

// TokensRejectedDTO reports a tokens-consumed claim beyond what the meter
// delta allows.
type TokensRejectedDTO struct {
	Message    string  `json:"message"`
	MaxAllowed float64 `json:"max_allowed" example:"1210"`
	Context    string  `json:"context"`
}
