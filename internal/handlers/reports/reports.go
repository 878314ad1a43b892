package reports

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tichaonax/electricity-tokens-sub004/internal/dto"
	"github.com/tichaonax/electricity-tokens-sub004/internal/engine"
	"github.com/tichaonax/electricity-tokens-sub004/pkg/utils"
)

type ReportService interface {
	GetPurchaseComparison(ctx context.Context, from, to time.Time) ([]engine.PurchaseComparisonRow, error)
	GetPremiumReport(ctx context.Context) (engine.EmergencyPremium, error)
	GetConsumptionTrend(ctx context.Context) ([]engine.ConsumptionPoint, engine.ConsumptionTrend, error)
}

type SettlementService interface {
	GetCostBreakdowns(ctx context.Context) ([]engine.CostBreakdown, error)
}

type ReportHandler struct {
	reportService     ReportService
	settlementService SettlementService
}

func New(reportService ReportService, settlementService SettlementService) *ReportHandler {
	return &ReportHandler{
		reportService:     reportService,
		settlementService: settlementService,
	}
}

// GetBreakdown godoc
//
//	@Summary		Per-user cost breakdown
//	@Description	For every household member, what they contributed, the true cost of their metered consumption, and the resulting credit or debt.
//	@Tags			Reports
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		dto.CostBreakdownResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		422	{object}	utils.Response	"Breakdown cannot be computed"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/reports/breakdown [get]
func (h *ReportHandler) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	breakdowns, err := h.settlementService.GetCostBreakdowns(r.Context())
	if err != nil {
		respondReportError(w, err)
		return
	}

	response := make([]dto.CostBreakdownResponseDTO, len(breakdowns))
	for i, b := range breakdowns {
		response[i] = dto.CostBreakdownResponseDTO{
			UserID:           b.UserID,
			TotalContributed: dto.Money(b.TotalContributed),
			TotalTrueCost:    dto.Money(b.TotalTrueCost),
			Overpayment:      dto.Money(b.Overpayment),
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetComparison godoc
//
//	@Summary		Actual versus fair contributions
//	@Description	Per settled purchase, the actual contribution next to the fair one implied by metered consumption. Optional from/to bounds filter by purchase date.
//	@Tags			Reports
//	@Produce		json
//	@Param			from	query	string	false	"Start date (RFC 3339 or 2006-01-02)"
//	@Param			to		query	string	false	"End date (RFC 3339 or 2006-01-02)"
//	@Security		BearerAuth
//	@Success		200	{array}		dto.PurchaseComparisonRowDTO
//	@Failure		400	{object}	utils.Response	"Invalid date bound"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		422	{object}	utils.Response	"Comparison cannot be computed"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/reports/comparison [get]
func (h *ReportHandler) GetComparison(w http.ResponseWriter, r *http.Request) {
	from, err := parseDateParam(r.URL.Query().Get("from"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid from date")
		return
	}
	to, err := parseDateParam(r.URL.Query().Get("to"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid to date")
		return
	}

	rows, err := h.reportService.GetPurchaseComparison(r.Context(), from, to)
	if err != nil {
		respondReportError(w, err)
		return
	}

	response := make([]dto.PurchaseComparisonRowDTO, len(rows))
	for i, row := range rows {
		response[i] = dto.PurchaseComparisonRowDTO{
			PurchaseID:         row.PurchaseID,
			UserID:             row.UserID,
			PurchaseDate:       row.PurchaseDate,
			IsEmergency:        row.IsEmergency,
			UnitCost:           dto.Rate(row.UnitCost),
			TokensConsumed:     row.TokensConsumed.InexactFloat64(),
			ActualContribution: dto.Money(row.ActualContribution),
			FairContribution:   dto.Money(row.FairContribution),
			Delta:              dto.Money(row.Delta),
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetPremium godoc
//
//	@Summary		Emergency purchase premium
//	@Description	What emergency purchases cost above the regular rate derived from non-emergency history.
//	@Tags			Reports
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	dto.PremiumReportResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		422	{object}	utils.Response	"No non-emergency history to derive a rate from"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/reports/premium [get]
func (h *ReportHandler) GetPremium(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportService.GetPremiumReport(r.Context())
	if err != nil {
		respondReportError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.PremiumReportResponseDTO{
		EmergencyTokens:  report.EmergencyTokens.InexactFloat64(),
		EmergencyPayment: dto.Money(report.EmergencyPayment),
		StandardRate:     dto.Rate(report.StandardRate),
		PremiumPaid:      dto.Money(report.PremiumPaid),
	})
}

// GetTrend godoc
//
//	@Summary		Monthly consumption trend
//	@Description	Monthly settled consumption with a least-squares prediction for the coming month.
//	@Tags			Reports
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	dto.ConsumptionTrendResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/reports/trend [get]
func (h *ReportHandler) GetTrend(w http.ResponseWriter, r *http.Request) {
	points, trend, err := h.reportService.GetConsumptionTrend(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	months := make([]dto.ConsumptionPointDTO, len(points))
	for i, p := range points {
		months[i] = dto.ConsumptionPointDTO{
			Month:  p.Month.Format("2006-01"),
			Tokens: p.Tokens,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ConsumptionTrendResponseDTO{
		Direction:  string(trend.Direction),
		Slope:      trend.Slope.InexactFloat64(),
		NextMonth:  trend.NextMonth.InexactFloat64(),
		Confidence: string(trend.Confidence),
		Months:     months,
	})
}

func respondReportError(w http.ResponseWriter, err error) {
	if errors.Is(err, engine.ErrNoHistory) || errors.Is(err, engine.ErrUnitCostUndefined) || errors.Is(err, engine.ErrDuplicateSettlement) {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
}

func parseDateParam(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
