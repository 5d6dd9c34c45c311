// Package server exposes the public HTTP API: odds with caching, the sports
// catalog, value bets, parlay pricing, and the prediction endpoint.
package server

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/betpilot/tipster/internal/bestprice"
	"github.com/betpilot/tipster/internal/cache"
	"github.com/betpilot/tipster/internal/metrics"
	"github.com/betpilot/tipster/internal/ratelimit"
	"github.com/betpilot/tipster/internal/sports"
	"github.com/betpilot/tipster/pkg/contracts"
)

// Params collects the server's collaborators. Predictor and Limiter are
// optional; a nil Predictor turns the prediction endpoint into a 503.
type Params struct {
	Provider          contracts.OddsProvider
	Cache             *cache.Cache
	Catalog           *sports.Catalog
	Predictor         contracts.Predictor
	Limiter           *ratelimit.Limiter
	Logger            *zap.Logger
	ValueBetThreshold int
}

// Server handles the public API surface.
type Server struct {
	provider       contracts.OddsProvider
	cache          *cache.Cache
	catalog        *sports.Catalog
	predictor      contracts.Predictor
	limiter        *ratelimit.Limiter
	logger         *zap.Logger
	valueThreshold int

	now func() time.Time
}

// New creates a Server from its collaborators.
func New(p Params) *Server {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	threshold := p.ValueBetThreshold
	if threshold >= 0 {
		threshold = bestprice.DefaultValueThreshold
	}
	return &Server{
		provider:       p.Provider,
		cache:          p.Cache,
		catalog:        p.Catalog,
		predictor:      p.Predictor,
		limiter:        p.Limiter,
		logger:         logger,
		valueThreshold: threshold,
		now:            time.Now,
	}
}

// Router builds the chi router with CORS, request IDs, metrics and rate
// limiting applied to the API group.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(s.requestID)
	r.Use(s.observe)

	r.Route("/api", func(r chi.Router) {
		if s.limiter != nil {
			r.Use(s.rateLimit)
		}
		r.Get("/odds", s.getOdds)
		r.Get("/sports", s.listSports)
		r.Get("/sports/active", s.listActiveSports)
		r.Get("/value-bets", s.getValueBets)
		r.Post("/predictions", s.postPrediction)
		r.Post("/parlay", s.postParlay)
	})

	return r
}

// requestID tags every request with an ID, honoring one supplied upstream.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

// observe records request latency per route and status.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := s.now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPDuration.
			WithLabelValues(route, strconv.Itoa(sw.status)).
			Observe(time.Since(start).Seconds())
	})
}

// rateLimit rejects clients over their fixed-window quota.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, remaining, resetAt := s.limiter.Allow(clientKey(r))

		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if !allowed {
			w.Header().Set("Retry-After", strconv.Itoa(int(time.Until(resetAt).Seconds())+1))
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, slow down")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientKey identifies a caller: forwarded address when behind a proxy,
// otherwise the peer address without the port.
func clientKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// ListenAndServe runs the API server on the given port.
func (s *Server) ListenAndServe(port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	s.logger.Info("api server listening", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("api server: %w", err)
	}
	return nil
}
