package dto

import "time"

type CreatePurchaseRequestDTO struct {
	TotalTokens  float64   `json:"total_tokens" example:"1000"`
	TotalPayment float64   `json:"total_payment" example:"250"`
	MeterReading float64   `json:"meter_reading" example:"5000"`
	TokenNumber  string    `json:"token_number,omitempty" example:"2404815702"`
	IsEmergency  bool      `json:"is_emergency" example:"false"`
	PurchaseDate time.Time `json:"purchase_date" example:"2024-06-01T00:00:00Z"`
}

type PurchaseResponseDTO struct {
	ID           int       `json:"id" example:"1"`
	CreatorID    int       `json:"creator_id" example:"1"`
	TotalTokens  float64   `json:"total_tokens" example:"1000"`
	TotalPayment float64   `json:"total_payment" example:"250"`
	MeterReading float64   `json:"meter_reading" example:"5000"`
	TokenNumber  string    `json:"token_number,omitempty" example:"2404815702"`
	IsEmergency  bool      `json:"is_emergency" example:"false"`
	PurchaseDate time.Time `json:"purchase_date" example:"2024-06-01T00:00:00Z"`
}

// ReadingRejectedDTO explains a failed meter-reading validation so the UI
// can suggest the minimum acceptable value.
type ReadingRejectedDTO struct {
	Message          string  `json:"message"`
	SuggestedMinimum float64 `json:"suggested_minimum" example:"6100"`
	Context          string  `json:"context" example:"previous purchase recorded 6100 kWh on 2024-06-15"`
}
