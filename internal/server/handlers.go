package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/betpilot/tipster/adapters/theoddsapi"
	"github.com/betpilot/tipster/internal/bestprice"
	"github.com/betpilot/tipster/internal/cache"
	"github.com/betpilot/tipster/internal/metrics"
	"github.com/betpilot/tipster/internal/parlay"
	"github.com/betpilot/tipster/internal/predictor"
	"github.com/betpilot/tipster/internal/sports"
	"github.com/betpilot/tipster/pkg/models"
)

const defaultDays = 5

type oddsResponse struct {
	Odds       []models.Fixture          `json:"odds"`
	BestPrices []models.BestPriceSummary `json:"bestPrices"`
	Cached     bool                      `json:"cached"`
	CacheAge   string                    `json:"cacheAge"`
	Sport      string                    `json:"sport"`
	SportID    string                    `json:"sportId"`
	Days       int                       `json:"days"`
}

// getOdds serves GET /api/odds?sport=&days=.
func (s *Server) getOdds(w http.ResponseWriter, r *http.Request) {
	sport, days, ok := s.oddsParams(w, r)
	if !ok {
		return
	}

	fixtures, hit, key, err := s.fetchOdds(r.Context(), sport.ID, days)
	if err != nil {
		s.writeProviderError(w, err)
		return
	}

	cacheAge := "just now"
	if hit {
		age, known := s.cache.Age(r.Context(), key)
		cacheAge = cache.FormatAge(age, known)
	}

	writeJSON(w, http.StatusOK, oddsResponse{
		Odds:       fixtures,
		BestPrices: bestprice.ExtractAll(fixtures),
		Cached:     hit,
		CacheAge:   cacheAge,
		Sport:      sport.Name,
		SportID:    sport.ID,
		Days:       days,
	})
}

// getValueBets serves GET /api/value-bets?sport=&days=. It shares the odds
// cache key with getOdds so both endpoints reuse one upstream fetch.
func (s *Server) getValueBets(w http.ResponseWriter, r *http.Request) {
	sport, days, ok := s.oddsParams(w, r)
	if !ok {
		return
	}

	fixtures, _, _, err := s.fetchOdds(r.Context(), sport.ID, days)
	if err != nil {
		s.writeProviderError(w, err)
		return
	}

	bets := bestprice.FindValueBets(fixtures, s.valueThreshold, bestprice.DefaultValueLimit)
	writeJSON(w, http.StatusOK, map[string]any{
		"sport":     sport.Name,
		"sportId":   sport.ID,
		"valueBets": bets,
	})
}

// listSports serves GET /api/sports, grouped by category.
func (s *Server) listSports(w http.ResponseWriter, r *http.Request) {
	type group struct {
		Category sports.Category `json:"category"`
		Sports   []sports.Sport  `json:"sports"`
	}

	categories := []sports.Category{
		sports.CategoryAmerican,
		sports.CategorySoccer,
		sports.CategorySouthAfrican,
		sports.CategoryOther,
	}

	groups := make([]group, 0, len(categories))
	for _, cat := range categories {
		if list := s.catalog.ByCategory(cat); len(list) > 0 {
			groups = append(groups, group{Category: cat, Sports: list})
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": groups})
}

// listActiveSports serves GET /api/sports/active: enabled sports in season.
func (s *Server) listActiveSports(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"sports": s.catalog.Active(s.now()),
	})
}

type predictionRequest struct {
	Prompt string `json:"prompt"`
	Sport  string `json:"sport"`
	Days   int    `json:"days"`
}

// postPrediction serves POST /api/predictions. It builds the odds context
// from cached fixtures, assembles the prompt, and delegates to the
// prediction collaborator.
func (s *Server) postPrediction(w http.ResponseWriter, r *http.Request) {
	if s.predictor == nil {
		writeError(w, http.StatusServiceUnavailable, "prediction service is not configured")
		return
	}

	var req predictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Prompt == "" || req.Sport == "" {
		writeError(w, http.StatusBadRequest, "prompt and sport are required")
		return
	}

	sport, ok := s.resolveSport(w, req.Sport)
	if !ok {
		return
	}
	days := req.Days
	if days == 0 {
		days = defaultDays
	}
	if days < 1 || days > 30 {
		writeError(w, http.StatusBadRequest, "days must be between 1 and 30")
		return
	}

	// Odds are context, not the product here: fetch failures degrade to a
	// prediction without live odds instead of failing the request.
	oddsContext := bestprice.NoOddsMessage
	if fixtures, _, _, err := s.fetchOdds(r.Context(), sport.ID, days); err == nil {
		oddsContext = bestprice.FormatForModel(fixtures)
	} else {
		s.logger.Warn("prediction proceeding without odds context",
			zap.String("sport", sport.ID), zap.Error(err))
	}

	resp, err := s.predictor.GeneratePrediction(r.Context(), models.PredictionRequest{
		Prompt:      predictor.BuildPrompt(req.Prompt, sport.ID, oddsContext),
		SportKey:    sport.ID,
		OddsContext: oddsContext,
	})
	if err != nil {
		s.logger.Error("prediction failed", zap.String("sport", sport.ID), zap.Error(err))
		writeError(w, http.StatusBadGateway, "failed to generate prediction")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

type parlayRequest struct {
	Stake float64 `json:"stake"`
	Odds  []int   `json:"odds"`
}

// postParlay serves POST /api/parlay: combined odds, payout and risk.
func (s *Server) postParlay(w http.ResponseWriter, r *http.Request) {
	var req parlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Stake <= 0 {
		writeError(w, http.StatusBadRequest, "stake must be positive")
		return
	}
	if len(req.Odds) < 2 {
		writeError(w, http.StatusBadRequest, "a parlay needs at least 2 legs")
		return
	}
	for _, leg := range req.Odds {
		if leg == 0 {
			writeError(w, http.StatusBadRequest, "odds legs cannot be 0")
			return
		}
	}

	writeJSON(w, http.StatusOK, parlay.Price(req.Stake, req.Odds))
}

// oddsParams validates the sport and days query parameters, writing the
// error response itself when validation fails.
func (s *Server) oddsParams(w http.ResponseWriter, r *http.Request) (sports.Sport, int, bool) {
	sportParam := r.URL.Query().Get("sport")
	if sportParam == "" {
		writeError(w, http.StatusBadRequest, "sport parameter is required")
		return sports.Sport{}, 0, false
	}

	sport, ok := s.resolveSport(w, sportParam)
	if !ok {
		return sports.Sport{}, 0, false
	}

	days := defaultDays
	if d := r.URL.Query().Get("days"); d != "" {
		parsed, err := strconv.Atoi(d)
		if err != nil || parsed < 1 || parsed > 30 {
			writeError(w, http.StatusBadRequest, "days must be between 1 and 30")
			return sports.Sport{}, 0, false
		}
		days = parsed
	}

	return sport, days, true
}

// resolveSport maps legacy names and checks catalog membership and state.
func (s *Server) resolveSport(w http.ResponseWriter, name string) (sports.Sport, bool) {
	sportID := sports.MapLegacyName(name)

	sport, ok := s.catalog.Get(sportID)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown sport: "+sportID)
		return sports.Sport{}, false
	}
	if !sport.Enabled {
		writeError(w, http.StatusServiceUnavailable, "sport is currently disabled: "+sportID)
		return sports.Sport{}, false
	}
	return sport, true
}

// fetchOdds reads fixtures through the cache, fetching from the provider on
// a miss. Returns the fixtures, whether they came from cache, and the key.
func (s *Server) fetchOdds(ctx context.Context, sportID string, days int) ([]models.Fixture, bool, string, error) {
	key := cache.GenerateKey("odds", map[string]any{"sport": sportID, "days": days})

	fixtures, hit, err := cache.WithCache(ctx, s.cache, key, cache.TTLOdds,
		func(ctx context.Context) ([]models.Fixture, error) {
			result, err := s.provider.GetOdds(ctx, sportID, models.GetOddsOptions{Days: days})
			if err != nil {
				metrics.UpstreamRequests.WithLabelValues(sportID, "error").Inc()
				return nil, err
			}
			metrics.UpstreamRequests.WithLabelValues(sportID, "ok").Inc()
			return result, nil
		})
	return fixtures, hit, key, err
}

// writeProviderError maps the odds client's typed errors onto HTTP statuses.
func (s *Server) writeProviderError(w http.ResponseWriter, err error) {
	if na, ok := theoddsapi.AsNotAvailable(err); ok {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:       "this sport is not currently offered by the odds provider",
			Suggestions: na.Suggestions,
		})
		return
	}
	if _, ok := theoddsapi.AsRateLimited(err); ok {
		writeError(w, http.StatusTooManyRequests, "odds provider rate limit reached, data may be stale - try again shortly")
		return
	}
	if _, ok := theoddsapi.AsConfiguration(err); ok {
		s.logger.Error("odds provider credentials rejected", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "odds provider is not configured correctly")
		return
	}
	if _, ok := theoddsapi.AsTimeout(err); ok {
		writeError(w, http.StatusInternalServerError, "odds provider timed out, please retry")
		return
	}
	if errors.Is(err, theoddsapi.ErrInvalidDays) {
		writeError(w, http.StatusBadRequest, "days must be between 1 and 30")
		return
	}

	s.logger.Error("odds fetch failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "failed to fetch odds")
}
