package contributions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tichaonax/electricity-tokens-sub004/internal/domain"
	"github.com/tichaonax/electricity-tokens-sub004/internal/dto"
	"github.com/tichaonax/electricity-tokens-sub004/internal/service/contributionservice"
	"github.com/tichaonax/electricity-tokens-sub004/pkg/auth"
	"github.com/tichaonax/electricity-tokens-sub004/pkg/utils"
)

type Service interface {
	Create(ctx context.Context, contribution *domain.Contribution, isAdmin bool) error
	Delete(ctx context.Context, id int) error
	GetByUser(ctx context.Context, userID int) ([]domain.Contribution, error)
}

type ContributionHandler struct {
	contributionService Service
}

func New(contributionService Service) *ContributionHandler {
	return &ContributionHandler{
		contributionService: contributionService,
	}
}

// AddContribution godoc
//
//	@Summary		Settle a purchase
//	@Description	Record a contribution against the earliest unsettled purchase. Settling out of order requires the admin role; a purchase can be settled only once.
//	@Tags			Contributions
//	@Accept			json
//	@Produce		json
//	@Param			request	body	dto.CreateContributionRequestDTO	true	"Contribution to record"
//	@Security		BearerAuth
//	@Success		201	{object}	dto.ContributionResponseDTO
//	@Failure		400	{object}	utils.Response			"Invalid request body or negative values"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		404	{object}	utils.Response			"Purchase not found"
//	@Failure		409	{object}	dto.GateBlockedDTO		"Purchase already settled or out of sequence"
//	@Failure		422	{object}	dto.ReadingRejectedDTO	"Meter reading or tokens consumed rejected"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/contributions [post]
func (h *ContributionHandler) AddContribution(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.CreateContributionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	contribution := &domain.Contribution{
		PurchaseID:     req.PurchaseID,
		UserID:         userID,
		Amount:         req.Amount,
		MeterReading:   req.MeterReading,
		TokensConsumed: req.TokensConsumed,
	}

	if err := h.contributionService.Create(r.Context(), contribution, auth.IsAdmin(r.Context())); err != nil {
		respondContributionError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.ContributionResponseDTO{
		ID:             contribution.ID,
		PurchaseID:     contribution.PurchaseID,
		UserID:         contribution.UserID,
		Amount:         contribution.Amount,
		MeterReading:   contribution.MeterReading,
		TokensConsumed: contribution.TokensConsumed,
		ContributedAt:  contribution.ContributedAt,
	})
}

// GetContributions godoc
//
//	@Summary		List the user's contributions
//	@Tags			Contributions
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		dto.ContributionResponseDTO
//	@Failure		204	{object}	utils.Response	"No data available"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/contributions [get]
func (h *ContributionHandler) GetContributions(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	contributions, err := h.contributionService.GetByUser(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if len(contributions) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "No data available")
		return
	}

	response := make([]dto.ContributionResponseDTO, len(contributions))
	for i, c := range contributions {
		response[i] = dto.ContributionResponseDTO{
			ID:             c.ID,
			PurchaseID:     c.PurchaseID,
			UserID:         c.UserID,
			Amount:         c.Amount,
			MeterReading:   c.MeterReading,
			TokensConsumed: c.TokensConsumed,
			ContributedAt:  c.ContributedAt,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// DeleteContribution godoc
//
//	@Summary		Remove a contribution
//	@Description	Delete a contribution, re-opening its purchase for settlement. Admin only.
//	@Tags			Contributions
//	@Produce		json
//	@Param			id	path	int	true	"Contribution id"
//	@Security		BearerAuth
//	@Success		200	{object}	utils.Response	"Contribution deleted"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Admin role required"
//	@Failure		404	{object}	utils.Response	"Contribution not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/contributions/{id} [delete]
func (h *ContributionHandler) DeleteContribution(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid contribution id")
		return
	}

	if err := h.contributionService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, contributionservice.ErrContributionNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "contribution deleted"})
}

func respondContributionError(w http.ResponseWriter, err error) {
	var (
		gateErr    *contributionservice.GateError
		readingErr *contributionservice.ReadingError
		tokensErr  *contributionservice.TokensError
	)
	switch {
	case errors.Is(err, contributionservice.ErrNegativeAmount):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, contributionservice.ErrPurchaseNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, contributionservice.ErrAlreadySettled):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.As(err, &gateErr):
		utils.RespondWithJSON(w, http.StatusConflict, dto.GateBlockedDTO{
			Message:                 gateErr.Decision.Reason,
			NextAvailablePurchaseID: gateErr.Decision.NextAvailablePurchaseID,
		})
	case errors.As(err, &readingErr):
		utils.RespondWithJSON(w, http.StatusUnprocessableEntity, dto.ReadingRejectedDTO{
			Message:          "Meter reading conflicts with an earlier record",
			SuggestedMinimum: readingErr.Check.SuggestedMinimum,
			Context:          readingErr.Check.Context,
		})
	case errors.As(err, &tokensErr):
		utils.RespondWithJSON(w, http.StatusUnprocessableEntity, dto.TokensRejectedDTO{
			Message:    "Tokens consumed exceeds what the meter delta allows",
			MaxAllowed: tokensErr.Check.MaxAllowed,
			Context:    tokensErr.Check.Context,
		})
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
