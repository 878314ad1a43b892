package purchases

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tichaonax/electricity-tokens-sub004/internal/domain"
	"github.com/tichaonax/electricity-tokens-sub004/internal/dto"
	"github.com/tichaonax/electricity-tokens-sub004/internal/service/purchaseservice"
	"github.com/tichaonax/electricity-tokens-sub004/pkg/auth"
	"github.com/tichaonax/electricity-tokens-sub004/pkg/utils"
)

type Service interface {
	Create(ctx context.Context, purchase *domain.Purchase) error
	Update(ctx context.Context, purchase *domain.Purchase) error
	Delete(ctx context.Context, id int) error
	GetAll(ctx context.Context) ([]domain.Purchase, error)
	GetByID(ctx context.Context, id int) (*domain.Purchase, error)
}

type PurchaseHandler struct {
	purchaseService Service
}

func New(purchaseService Service) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
	}
}

// AddPurchase godoc
//
//	@Summary		Record a token purchase
//	@Description	Record electricity tokens bought in bulk for the shared meter. The meter reading must not fall below any earlier record.
//	@Tags			Purchases
//	@Accept			json
//	@Produce		json
//	@Param			request	body	dto.CreatePurchaseRequestDTO	true	"Purchase to record"
//	@Security		BearerAuth
//	@Success		201	{object}	dto.PurchaseResponseDTO
//	@Failure		400	{object}	utils.Response			"Invalid request body or non-positive values"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		422	{object}	dto.ReadingRejectedDTO	"Meter reading below a prior record"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/purchases [post]
func (h *PurchaseHandler) AddPurchase(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.CreatePurchaseRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	purchase := &domain.Purchase{
		CreatorID:    userID,
		TotalTokens:  req.TotalTokens,
		TotalPayment: req.TotalPayment,
		MeterReading: req.MeterReading,
		TokenNumber:  req.TokenNumber,
		IsEmergency:  req.IsEmergency,
		PurchaseDate: req.PurchaseDate,
	}

	if err := h.purchaseService.Create(r.Context(), purchase); err != nil {
		respondPurchaseError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toResponse(purchase))
}

// GetPurchases godoc
//
//	@Summary		List purchases
//	@Description	Retrieve all purchases in chronological order
//	@Tags			Purchases
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		dto.PurchaseResponseDTO
//	@Failure		204	{object}	utils.Response	"No data available"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/purchases [get]
func (h *PurchaseHandler) GetPurchases(w http.ResponseWriter, r *http.Request) {
	purchases, err := h.purchaseService.GetAll(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if len(purchases) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "No data available")
		return
	}

	response := make([]dto.PurchaseResponseDTO, len(purchases))
	for i := range purchases {
		response[i] = toResponse(&purchases[i])
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetPurchase godoc
//
//	@Summary		Get one purchase
//	@Tags			Purchases
//	@Produce		json
//	@Param			id	path	int	true	"Purchase id"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.PurchaseResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Purchase not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/purchases/{id} [get]
func (h *PurchaseHandler) GetPurchase(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid purchase id")
		return
	}

	purchase, err := h.purchaseService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, purchaseservice.ErrPurchaseNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toResponse(purchase))
}

// UpdatePurchase godoc
//
//	@Summary		Edit a purchase
//	@Description	Edit an unsettled purchase. A purchase with a contribution is immutable until the contribution is removed.
//	@Tags			Purchases
//	@Accept			json
//	@Produce		json
//	@Param			id		path	int								true	"Purchase id"
//	@Param			request	body	dto.CreatePurchaseRequestDTO	true	"New purchase values"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.PurchaseResponseDTO
//	@Failure		400	{object}	utils.Response			"Invalid request"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		404	{object}	utils.Response			"Purchase not found"
//	@Failure		409	{object}	utils.Response			"Purchase already settled"
//	@Failure		422	{object}	dto.ReadingRejectedDTO	"Meter reading below a prior record"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/purchases/{id} [put]
func (h *PurchaseHandler) UpdatePurchase(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid purchase id")
		return
	}

	var req dto.CreatePurchaseRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	purchase := &domain.Purchase{
		ID:           id,
		CreatorID:    userID,
		TotalTokens:  req.TotalTokens,
		TotalPayment: req.TotalPayment,
		MeterReading: req.MeterReading,
		TokenNumber:  req.TokenNumber,
		IsEmergency:  req.IsEmergency,
		PurchaseDate: req.PurchaseDate,
	}

	if err := h.purchaseService.Update(r.Context(), purchase); err != nil {
		respondPurchaseError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toResponse(purchase))
}

// DeletePurchase godoc
//
//	@Summary		Delete a purchase
//	@Description	Delete an unsettled purchase. A settled purchase requires removing its contribution first.
//	@Tags			Purchases
//	@Produce		json
//	@Param			id	path	int	true	"Purchase id"
//	@Security		BearerAuth
//	@Success		200	{object}	utils.Response	"Purchase deleted"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Purchase not found"
//	@Failure		409	{object}	utils.Response	"Purchase already settled"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/purchases/{id} [delete]
func (h *PurchaseHandler) DeletePurchase(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid purchase id")
		return
	}

	if err := h.purchaseService.Delete(r.Context(), id); err != nil {
		respondPurchaseError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "purchase deleted"})
}

func respondPurchaseError(w http.ResponseWriter, err error) {
	var readingErr *purchaseservice.ReadingError
	switch {
	case errors.Is(err, purchaseservice.ErrInvalidAmount),
		errors.Is(err, purchaseservice.ErrInvalidTokenNumber):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, purchaseservice.ErrPurchaseNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, purchaseservice.ErrPurchaseSettled):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.As(err, &readingErr):
		utils.RespondWithJSON(w, http.StatusUnprocessableEntity, dto.ReadingRejectedDTO{
			Message:          "Meter reading conflicts with an earlier record",
			SuggestedMinimum: readingErr.Check.SuggestedMinimum,
			Context:          readingErr.Check.Context,
		})
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func toResponse(p *domain.Purchase) dto.PurchaseResponseDTO {
	return dto.PurchaseResponseDTO{
		ID:           p.ID,
		CreatorID:    p.CreatorID,
		TotalTokens:  p.TotalTokens,
		TotalPayment: p.TotalPayment,
		MeterReading: p.MeterReading,
		TokenNumber:  p.TokenNumber,
		IsEmergency:  p.IsEmergency,
		PurchaseDate: p.PurchaseDate,
	}
}
