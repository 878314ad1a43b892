package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/tichaonax/electricity-tokens-sub004/docs"
	authhandlers "github.com/tichaonax/electricity-tokens-sub004/internal/handlers/auth"
	balancehandlers "github.com/tichaonax/electricity-tokens-sub004/internal/handlers/balance"
	contributionhandlers "github.com/tichaonax/electricity-tokens-sub004/internal/handlers/contributions"
	purchasehandlers "github.com/tichaonax/electricity-tokens-sub004/internal/handlers/purchases"
	reporthandlers "github.com/tichaonax/electricity-tokens-sub004/internal/handlers/reports"
	"github.com/tichaonax/electricity-tokens-sub004/internal/service"
	"github.com/tichaonax/electricity-tokens-sub004/pkg/auth"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type PurchaseHandler interface {
	AddPurchase(w http.ResponseWriter, r *http.Request)
	GetPurchases(w http.ResponseWriter, r *http.Request)
	GetPurchase(w http.ResponseWriter, r *http.Request)
	UpdatePurchase(w http.ResponseWriter, r *http.Request)
	DeletePurchase(w http.ResponseWriter, r *http.Request)
}

type ContributionHandler interface {
	AddContribution(w http.ResponseWriter, r *http.Request)
	GetContributions(w http.ResponseWriter, r *http.Request)
	DeleteContribution(w http.ResponseWriter, r *http.Request)
}

type BalanceHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
}

type ReportHandler interface {
	GetBreakdown(w http.ResponseWriter, r *http.Request)
	GetComparison(w http.ResponseWriter, r *http.Request)
	GetPremium(w http.ResponseWriter, r *http.Request)
	GetTrend(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler         AuthHandler
	PurchaseHandler     PurchaseHandler
	ContributionHandler ContributionHandler
	BalanceHandler      BalanceHandler
	ReportHandler       ReportHandler
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		AuthHandler:         authhandlers.New(s.AuthService),
		PurchaseHandler:     purchasehandlers.New(s.PurchaseService),
		ContributionHandler: contributionhandlers.New(s.ContributionService),
		BalanceHandler:      balancehandlers.New(s.SettlementService),
		ReportHandler:       reporthandlers.New(s.ReportService, s.SettlementService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api", func(r chi.Router) {
		r.Post("/user/register", h.AuthHandler.Register)
		r.Post("/user/login", h.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)
			r.Route("/purchases", func(r chi.Router) {
				r.Post("/", h.PurchaseHandler.AddPurchase)
				r.Get("/", h.PurchaseHandler.GetPurchases)
				r.Get("/{id}", h.PurchaseHandler.GetPurchase)
				r.Put("/{id}", h.PurchaseHandler.UpdatePurchase)
				r.Delete("/{id}", h.PurchaseHandler.DeletePurchase)
			})
			r.Route("/contributions", func(r chi.Router) {
				r.Post("/", h.ContributionHandler.AddContribution)
				r.Get("/", h.ContributionHandler.GetContributions)
				r.With(auth.AdminOnly).Delete("/{id}", h.ContributionHandler.DeleteContribution)
			})
			r.Get("/balance", h.BalanceHandler.GetBalance)
			r.Route("/reports", func(r chi.Router) {
				r.Get("/breakdown", h.ReportHandler.GetBreakdown)
				r.Get("/comparison", h.ReportHandler.GetComparison)
				r.Get("/premium", h.ReportHandler.GetPremium)
				r.Get("/trend", h.ReportHandler.GetTrend)
			})
		})
	})

	return r
}
