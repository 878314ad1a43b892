package dto

// RunningBalanceResponseDTO is the projector output for one user.
// Positive contribution_balance is credit, negative is owed.
type RunningBalanceResponseDTO struct {
	ContributionBalance      float64 `json:"contribution_balance" example:"-50"`
	TokensConsumedSinceLast  float64 `json:"tokens_consumed_since_last_contribution" example:"100"`
	AnticipatedPayment       float64 `json:"anticipated_payment" example:"80"`
	AnticipatedOthersPayment float64 `json:"anticipated_others_payment" example:"0"`
	AnticipatedTokenPurchase float64 `json:"anticipated_token_purchase" example:"30"`
	HistoricalCostPerKwh     float64 `json:"historical_cost_per_kwh" example:"0.3"`
	Status                   string  `json:"status" example:"warning"`
}

type CostBreakdownResponseDTO struct {
	UserID           int     `json:"user_id" example:"1"`
	TotalContributed float64 `json:"total_contributed" example:"250"`
	TotalTrueCost    float64 `json:"total_true_cost" example:"0"`
	Overpayment      float64 `json:"overpayment" example:"250"`
}
