package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/homegamehq/homegame/internal/auth"
	"github.com/homegamehq/homegame/internal/service"
	"github.com/homegamehq/homegame/pkg/metrics"
)

// Services bundles the service layer the router exposes.
type Services struct {
	Auth        *service.AuthService
	Groups      *service.GroupService
	Games       *service.GameService
	Settlements *service.SettlementService
	Payments    *service.PaymentService
	Balances    *service.BalanceService
}

// NewRouter builds the HTTP API. Health, metrics and auth endpoints are
// public; everything else requires a valid Bearer token.
func NewRouter(
	svcs Services,
	jwtManager *auth.JWTManager,
	logger *slog.Logger,
	registry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		Recoverer(logger),
		RequestID,
		Logging(logger),
		Metrics(httpMetrics),
	)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeSuccess(w, map[string]string{"status": "ok"})
	})
	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", Register(svcs.Auth, logger))
			r.Post("/login", Login(svcs.Auth, logger))
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(jwtManager, logger))

			r.Route("/groups", func(r chi.Router) {
				r.Post("/", CreateGroup(svcs.Groups, logger))
				r.Post("/join", JoinGroup(svcs.Groups, logger))
				r.Get("/{groupID}", GetGroup(svcs.Groups, logger))
				r.Get("/{groupID}/games", ListGroupGames(svcs.Games, logger))
			})

			r.Route("/games", func(r chi.Router) {
				r.Post("/", CreateGame(svcs.Games, logger))
				r.Route("/{gameID}", func(r chi.Router) {
					r.Get("/", GetGame(svcs.Games, logger))
					r.Get("/summary", GetGameSummary(svcs.Games, logger))
					r.Post("/complete", CompleteGame(svcs.Games, logger))

					r.Post("/players", OptIn(svcs.Games, logger))
					r.Route("/players/{playerID}", func(r chi.Router) {
						r.Delete("/", RemovePlayer(svcs.Games, logger))
						r.Post("/rebuys", AddRebuy(svcs.Games, logger))
						r.Post("/cashout", CashOut(svcs.Games, logger))
					})

					r.Get("/settlements", ListGameSettlements(svcs.Settlements, logger))
					r.Get("/settlements/preview", PreviewGameSettlements(svcs.Settlements, logger))

					r.Route("/payments/{playerID}", func(r chi.Router) {
						r.Get("/", GetPayment(svcs.Payments, logger))
						r.Post("/toggle", TogglePayment(svcs.Payments, logger))
					})
				})
			})

			r.Route("/settlements/{settlementID}", func(r chi.Router) {
				r.Post("/toggle", ToggleSettlement(svcs.Settlements, logger))
				r.Post("/paid", MarkSettlementPaid(svcs.Settlements, logger))
			})

			r.Get("/players/me/settlements", ListMySettlements(svcs.Settlements, logger))
			r.Get("/players/me/balance", GetMyBalance(svcs.Balances, logger))
			r.Get("/players/{playerID}/balance", GetPlayerBalance(svcs.Balances, logger))
		})
	})

	return r
}
