package balance

import (
	"context"
	"errors"
	"net/http"

	"github.com/tichaonax/electricity-tokens-sub004/internal/dto"
	"github.com/tichaonax/electricity-tokens-sub004/internal/engine"
	"github.com/tichaonax/electricity-tokens-sub004/pkg/auth"
	"github.com/tichaonax/electricity-tokens-sub004/pkg/utils"
)

type Service interface {
	GetRunningBalance(ctx context.Context, userID int) (engine.RunningBalance, error)
	GetUserBreakdown(ctx context.Context, userID int) (engine.CostBreakdown, error)
}

type BalanceHandler struct {
	settlementService Service
}

func New(settlementService Service) *BalanceHandler {
	return &BalanceHandler{
		settlementService: settlementService,
	}
}

// GetBalance godoc
//
//	@Summary		Running balance projection
//	@Description	Project the user's position forward: credit or debt so far, consumption metered since the last settlement, and the anticipated next payment at the trailing average rate.
//	@Tags			Balance
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	dto.RunningBalanceResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		422	{object}	utils.Response	"Not enough history to project"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/balance [get]
func (h *BalanceHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	balance, err := h.settlementService.GetRunningBalance(r.Context(), userID)
	if err != nil {
		if errors.Is(err, engine.ErrNoHistory) || errors.Is(err, engine.ErrUnitCostUndefined) {
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.RunningBalanceResponseDTO{
		ContributionBalance:      dto.Money(balance.ContributionBalance),
		TokensConsumedSinceLast:  balance.TokensConsumedSinceLastContribution.InexactFloat64(),
		AnticipatedPayment:       dto.Money(balance.AnticipatedPayment),
		AnticipatedOthersPayment: dto.Money(balance.AnticipatedOthersPayment),
		AnticipatedTokenPurchase: dto.Money(balance.AnticipatedTokenPurchase),
		HistoricalCostPerKwh:     dto.Rate(balance.HistoricalCostPerKwh),
		Status:                   string(balance.Status),
	})
}
