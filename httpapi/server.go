// Package httpapi exposes the service over HTTP: the public check-in,
// rewards and billboard endpoints, the cron triggers, the admin review
// surface and the Prometheus metrics endpoint.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"sigil/config"
	"sigil/ratelimit"
	"sigil/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// Requests per minute allowed per client IP on signing endpoints.
const (
	signingRatePerMinute = 10
	signingRateBurst     = 5
)

// Server wires the application services into an HTTP listener.
type Server struct {
	cfg        *config.Config
	checkIns   *service.CheckInService
	rewards    *service.RewardsService
	claims     *service.ClaimService
	review     *service.ReviewService
	calendar   *service.CalendarService
	settlement *service.SettlementService
	notify     *service.NotifyService
	analytics  *service.AnalyticsService
	limiter    *ratelimit.Limiter

	httpServer *http.Server
}

// NewServer creates the HTTP server over the given services.
func NewServer(
	cfg *config.Config,
	checkIns *service.CheckInService,
	rewards *service.RewardsService,
	claims *service.ClaimService,
	review *service.ReviewService,
	calendar *service.CalendarService,
	settlement *service.SettlementService,
	notify *service.NotifyService,
	analytics *service.AnalyticsService,
) *Server {
	s := &Server{
		cfg:        cfg,
		checkIns:   checkIns,
		rewards:    rewards,
		claims:     claims,
		review:     review,
		calendar:   calendar,
		settlement: settlement,
		notify:     notify,
		analytics:  analytics,
		limiter:    ratelimit.New(signingRatePerMinute, signingRateBurst),
	}
	s.httpServer = &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Router builds the route tree. Exposed separately so handler tests can
// drive it without a listener.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/calendar", s.handleCalendar)
		r.Get("/check-in/status", s.handleCheckInStatus)
		r.Get("/rewards", s.handleRewards)
		r.Get("/redirect", s.handleRedirect)
		r.Get("/analytics", s.handleAnalytics)
		r.Post("/claim", s.handleClaimDay)
		r.Get("/admin/review", s.handleAdminReview)
		r.Get("/nft/metadata", s.handleNFTMetadata)

		r.Group(func(r chi.Router) {
			r.Use(s.rateLimited)
			r.Post("/v1/check-in", s.handleCheckIn)
			r.Post("/v1/rewards/claim", s.handleClaimRewards)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.cronAuth)
			r.Get("/cron/settle-day", s.handleCronSettle)
			r.Post("/cron/settle-day", s.handleCronSettle)
			r.Get("/cron/notify", s.handleCronNotify)
			r.Post("/cron/notify", s.handleCronNotify)
		})
	})

	return r
}

// Start begins serving and blocks until the listener fails or the context
// is cancelled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		log.Infof("HTTP server listening on %s", s.cfg.ListenAddr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
