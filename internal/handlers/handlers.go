package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/XavierBriggs/fortuna/services/betedge/internal/detector"
	"github.com/XavierBriggs/fortuna/services/betedge/internal/ingest"
	"github.com/XavierBriggs/fortuna/services/betedge/internal/lifecycle"
	"github.com/XavierBriggs/fortuna/services/betedge/pkg/contracts"
	"github.com/XavierBriggs/fortuna/services/betedge/pkg/models"
)

const (
	defaultLimit = 50
	maxLimit     = 500

	// failedSportsHeader lists sports whose fetch failed and were left out
	failedSportsHeader = "X-Failed-Sports"
)

// Handler serves the odds and opportunity endpoints
type Handler struct {
	source  contracts.SnapshotSource
	ingest  *ingest.Service
	engine  *detector.Engine
	filter  *lifecycle.Filter
	clock   contracts.Clock
	sports  []string
	markets []string
	timeout time.Duration
	logger  *zap.Logger
}

// Deps holds the handler's collaborators
type Deps struct {
	Source  contracts.SnapshotSource
	Ingest  *ingest.Service
	Engine  *detector.Engine
	Filter  *lifecycle.Filter
	Clock   contracts.Clock
	Sports  []string
	Markets []string
	// Timeout bounds the snapshot fetch for one request
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewHandler creates a new handler with dependencies
func NewHandler(deps Deps) *Handler {
	if deps.Clock == nil {
		deps.Clock = contracts.SystemClock
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Timeout <= 0 {
		deps.Timeout = 20 * time.Second
	}
	return &Handler{
		source:  deps.Source,
		ingest:  deps.Ingest,
		engine:  deps.Engine,
		filter:  deps.Filter,
		clock:   deps.Clock,
		sports:  deps.Sports,
		markets: deps.Markets,
		timeout: deps.Timeout,
		logger:  deps.Logger.Named("handlers"),
	}
}

// HealthCheck returns the health status of the service and its snapshot source
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	start := time.Now()
	resp := models.HealthResponse{
		Status:  "healthy",
		Service: "betedge",
		Checks:  map[string]string{"source": "ok"},
	}

	status := http.StatusOK
	if err := h.source.Ping(ctx); err != nil {
		h.logger.Warn("snapshot source unhealthy", zap.Error(err))
		resp.Status = "unhealthy"
		resp.Checks["source"] = err.Error()
		status = http.StatusServiceUnavailable
	}
	resp.Duration = time.Since(start).String()

	respondJSON(w, status, resp)
}

// GetOdds returns the validated snapshot
// Query params: sport, markets
func (h *Handler) GetOdds(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	snapshot := h.fetch(ctx, w, r)

	respondJSON(w, http.StatusOK, models.ListResponse{
		Data:        snapshot.Events,
		Total:       len(snapshot.Events),
		ScanID:      uuid.NewString(),
		GeneratedAt: h.clock.Now().UTC(),
	})
}

// GetArbitrage returns live arbitrage opportunities, best profit first
// Query params: minProfit, sport, markets, limit
func (h *Handler) GetArbitrage(w http.ResponseWriter, r *http.Request) {
	minProfit, err := parseFloatParam(r, "minProfit", h.engine.Config().DefaultMinProfit)
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, err.Error(), nil)
		return
	}
	limit := parseLimit(r)

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	snapshot := h.fetch(ctx, w, r)
	opps := h.filter.ValidArbitrage(h.engine.DetectArbitrage(snapshot.Events, minProfit))
	total := len(opps)
	if len(opps) > limit {
		opps = opps[:limit]
	}

	respondJSON(w, http.StatusOK, models.ListResponse{
		Data:        opps,
		Total:       total,
		ScanID:      uuid.NewString(),
		GeneratedAt: h.clock.Now().UTC(),
	})
}

// GetPositiveEV returns live +EV bets, best EV first
// Query params: minEV, sport, markets, limit
func (h *Handler) GetPositiveEV(w http.ResponseWriter, r *http.Request) {
	minEV, err := parseFloatParam(r, "minEV", h.engine.Config().DefaultMinEV)
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, err.Error(), nil)
		return
	}
	limit := parseLimit(r)

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	snapshot := h.fetch(ctx, w, r)
	bets := h.filter.ValidPositiveEV(h.engine.DetectPositiveEV(snapshot.Events, minEV))
	total := len(bets)
	if len(bets) > limit {
		bets = bets[:limit]
	}

	respondJSON(w, http.StatusOK, models.ListResponse{
		Data:        bets,
		Total:       total,
		ScanID:      uuid.NewString(),
		GeneratedAt: h.clock.Now().UTC(),
	})
}

// fetch loads the snapshot for the request's sports and markets and reports
// failed sports in a response header
func (h *Handler) fetch(ctx context.Context, w http.ResponseWriter, r *http.Request) ingest.Snapshot {
	sports := parseListParam(r, "sport", h.sports)
	markets := parseListParam(r, "markets", h.markets)

	snapshot := h.ingest.Fetch(ctx, sports, markets)
	if len(snapshot.Failed) > 0 {
		w.Header().Set(failedSportsHeader, strings.Join(snapshot.Failed, ","))
	}
	return snapshot
}

// Helper functions

func parseIntParam(r *http.Request, param string, defaultValue int) int {
	valueStr := r.URL.Query().Get(param)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func parseLimit(r *http.Request) int {
	limit := parseIntParam(r, "limit", defaultLimit)
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

func parseFloatParam(r *http.Request, param string, defaultValue float64) (float64, error) {
	valueStr := r.URL.Query().Get(param)
	if valueStr == "" {
		return defaultValue, nil
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", param)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%s must be a finite number", param)
	}
	return value, nil
}

// parseListParam reads a comma separated query param, falling back to defaults
func parseListParam(r *http.Request, param string, defaults []string) []string {
	var out []string
	for _, part := range strings.Split(r.URL.Query().Get(param), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaults
	}
	return out
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, logger *zap.Logger, status int, message string, err error) {
	if err != nil {
		logger.Warn(message, zap.Int("status", status), zap.Error(err))
	}

	respondJSON(w, status, models.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}
