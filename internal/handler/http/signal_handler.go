package http

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/match-signal-service/internal/metrics"
	"github.com/cypherlabdev/match-signal-service/internal/models"
	"github.com/cypherlabdev/match-signal-service/internal/service"
)

// maxBodyBytes caps request bodies; snapshots carry a whole matchday batch
const maxBodyBytes = 10 << 20

// SignalHandler handles HTTP requests for match classifications and rankings
type SignalHandler struct {
	service  *service.SignalService
	defaults models.UserContext
	logger   zerolog.Logger
}

// NewSignalHandler creates a new signal HTTP handler. defaults supplies the profile
// and bankroll when a request leaves them out.
func NewSignalHandler(service *service.SignalService, defaults models.UserContext, logger zerolog.Logger) *SignalHandler {
	return &SignalHandler{
		service:  service,
		defaults: defaults,
		logger:   logger.With().Str("component", "signal_handler").Logger(),
	}
}

// RegisterRoutes registers HTTP routes with the provided mux
func (h *SignalHandler) RegisterRoutes(mux *http.ServeMux) {
	// POST /api/v1/classify - Classify a single match
	mux.HandleFunc("/api/v1/classify", h.handleClassify)

	// POST /api/v1/snapshots - Classify and rank a whole snapshot
	mux.HandleFunc("/api/v1/snapshots", h.handleSnapshot)

	// GET /api/v1/matches/:league/:match_id - Get a cached classification
	mux.HandleFunc("/api/v1/matches/", h.handleGetMatch)

	// GET /api/v1/leagues/:league/classifications - Get all cached classifications of a league
	mux.HandleFunc("/api/v1/leagues/", h.handleGetLeague)

	// GET /api/v1/rankings/:strategy - Get the cached league rankings
	mux.HandleFunc("/api/v1/rankings/", h.handleGetRankings)
}

// userContext resolves the profile and bankroll of a request against the defaults
func (h *SignalHandler) userContext(profile string, bankroll *float64) (models.UserContext, error) {
	user := h.defaults

	if profile != "" {
		p, ok := models.ParseProfile(profile)
		if !ok {
			return user, errors.New("profile must be PRUDENT, BALANCED or AGGRESSIVE")
		}
		user.Profile = p
	}

	if bankroll != nil {
		if math.IsNaN(*bankroll) || math.IsInf(*bankroll, 0) || *bankroll < 0 {
			return user, errors.New("bankroll must be a non-negative number")
		}
		user.Bankroll = *bankroll
	}

	return user, nil
}

// handleClassify handles POST /api/v1/classify
func (h *SignalHandler) handleClassify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req models.ClassifyRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Match == nil {
		h.errorResponse(w, http.StatusBadRequest, "match is required")
		return
	}

	user, err := h.userContext(string(req.Profile), req.Bankroll)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.service.ClassifyMatch(r.Context(), req.Match, req.Snapshot, user)
	if err != nil {
		h.logger.Error().Err(err).Str("match_id", req.Match.MatchID).Msg("classification failed")
		h.errorResponse(w, http.StatusInternalServerError, "classification failed")
		return
	}

	h.jsonResponse(w, http.StatusOK, c)
}

// handleSnapshot handles POST /api/v1/snapshots?snapshot_id=&profile=&bankroll=
func (h *SignalHandler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var snap models.Snapshot
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&snap); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(snap.Leagues) == 0 {
		h.errorResponse(w, http.StatusBadRequest, "snapshot has no leagues")
		return
	}

	query := r.URL.Query()
	var bankroll *float64
	if raw := query.Get("bankroll"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			h.errorResponse(w, http.StatusBadRequest, "bankroll must be a number")
			return
		}
		bankroll = &v
	}

	user, err := h.userContext(query.Get("profile"), bankroll)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.ProcessSnapshot(r.Context(), query.Get("snapshot_id"), &snap, user)
	if err != nil {
		h.logger.Error().Err(err).Msg("snapshot processing failed")
		h.errorResponse(w, http.StatusInternalServerError, "snapshot processing failed")
		return
	}
	metrics.RecordSnapshot(metrics.SourceHTTP)

	h.jsonResponse(w, http.StatusOK, result)
}

// handleGetMatch handles GET /api/v1/matches/:league/:match_id
func (h *SignalHandler) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/v1/matches/")
	parts := strings.Split(path, "/")

	if len(parts) != 2 {
		h.errorResponse(w, http.StatusBadRequest, "invalid path: expected /api/v1/matches/:league/:match_id")
		return
	}

	league := parts[0]
	matchID := parts[1]

	if league == "" || matchID == "" {
		h.errorResponse(w, http.StatusBadRequest, "league and match_id are required")
		return
	}

	c, err := h.service.GetClassification(r.Context(), league, matchID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			h.logger.Debug().
				Str("league", league).
				Str("match_id", matchID).
				Msg("classification not found")
			h.errorResponse(w, http.StatusNotFound, "classification not found")
			return
		}
		h.logger.Error().Err(err).Str("league", league).Str("match_id", matchID).Msg("failed to retrieve classification")
		h.errorResponse(w, http.StatusInternalServerError, "failed to retrieve classification")
		return
	}

	h.jsonResponse(w, http.StatusOK, c)
}

// handleGetLeague handles GET /api/v1/leagues/:league/classifications
func (h *SignalHandler) handleGetLeague(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/v1/leagues/")
	parts := strings.Split(path, "/")

	if len(parts) != 2 || parts[1] != "classifications" {
		h.errorResponse(w, http.StatusBadRequest, "invalid path: expected /api/v1/leagues/:league/classifications")
		return
	}

	league := parts[0]
	if league == "" {
		h.errorResponse(w, http.StatusBadRequest, "league is required")
		return
	}

	list, err := h.service.GetLeagueClassifications(r.Context(), league)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("league", league).
			Msg("failed to retrieve league classifications")
		h.errorResponse(w, http.StatusInternalServerError, "failed to retrieve classifications")
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"league":          league,
		"count":           len(list),
		"classifications": list,
	})
}

// handleGetRankings handles GET /api/v1/rankings/:strategy
func (h *SignalHandler) handleGetRankings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	strategy, ok := models.ParseStrategy(strings.TrimPrefix(r.URL.Path, "/api/v1/rankings/"))
	if !ok {
		h.errorResponse(w, http.StatusBadRequest, "strategy must be play or recover")
		return
	}

	rankings, err := h.service.GetRankings(r.Context(), strategy)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			h.errorResponse(w, http.StatusNotFound, "no rankings available")
			return
		}
		h.logger.Error().Err(err).Str("strategy", string(strategy)).Msg("failed to retrieve rankings")
		h.errorResponse(w, http.StatusInternalServerError, "failed to retrieve rankings")
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"strategy": strategy,
		"leagues":  rankings,
	})
}

// jsonResponse writes a JSON response
func (h *SignalHandler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse writes a JSON error response
func (h *SignalHandler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{
		"error": message,
	})
}
