package api

import (
	"net/http"
	"time"

	_ "github.com/AlexZinkM/ezkey-wallet/docs"
	"github.com/AlexZinkM/ezkey-wallet/internal/handler"
	"github.com/AlexZinkM/ezkey-wallet/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// SetupRouter sets up router with handlers
func SetupRouter(h *handler.EzKeyHandler, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(observe(log))

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Handle("/metrics", metrics.Handler())

	// Wallet endpoints
	r.Post("/wallet/generate", h.Generate)
	r.Post("/wallet/request", h.ProviderRequest)

	// Session endpoints
	r.Post("/sessions", h.CreateSession)
	r.Route("/sessions/{id}", func(r chi.Router) {
		r.Delete("/", h.DeleteSession)
		r.Get("/network", h.GetNetwork)
		r.Post("/network/switch", h.SwitchNetwork)
		r.Get("/snapshot", h.GetSnapshot)
		r.Get("/balances/probe", h.ProbeBalances)
		r.Get("/estimate/{action}", h.Estimate)
		r.Post("/actions/{action}", h.Execute)
	})

	r.Get("/contracts/{address}", h.CheckContract)

	return r
}

// observe records request metrics by route pattern and logs each request
func observe(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			elapsed := time.Since(start)
			metrics.ObserveHTTP(r.Method, route, status, elapsed)
			log.Debug("request",
				zap.String("method", r.Method),
				zap.String("route", route),
				zap.Int("status", status),
				zap.Duration("elapsed", elapsed),
				zap.String("requestId", middleware.GetReqID(r.Context())),
			)
		})
	}
}
