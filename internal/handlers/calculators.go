package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/XavierBriggs/fortuna/services/betedge/internal/calculator"
	"github.com/XavierBriggs/fortuna/services/betedge/pkg/models"
	"github.com/XavierBriggs/fortuna/services/betedge/pkg/oddsmath"
)

// CalculatorHandler serves the stateless betting calculators
type CalculatorHandler struct {
	logger *zap.Logger
}

// NewCalculatorHandler creates a new calculator handler
func NewCalculatorHandler(logger *zap.Logger) *CalculatorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalculatorHandler{logger: logger.Named("calculators")}
}

// StakeDistribution splits a total stake across arbitrage odds
func (h *CalculatorHandler) StakeDistribution(w http.ResponseWriter, r *http.Request) {
	var req models.StakeDistributionRequest
	if !h.decode(w, r, &req) {
		return
	}
	resp, err := calculator.StakeDistribution(req)
	h.respond(w, resp, err)
}

// Kelly sizes a bet with the Kelly criterion
func (h *CalculatorHandler) Kelly(w http.ResponseWriter, r *http.Request) {
	var req models.KellyRequest
	if !h.decode(w, r, &req) {
		return
	}
	resp, err := calculator.Kelly(req)
	h.respond(w, resp, err)
}

// ExpectedValue prices a single wager
func (h *CalculatorHandler) ExpectedValue(w http.ResponseWriter, r *http.Request) {
	var req models.EVRequest
	if !h.decode(w, r, &req) {
		return
	}
	resp, err := calculator.ExpectedValue(req)
	h.respond(w, resp, err)
}

// Convert converts between decimal and American odds
func (h *CalculatorHandler) Convert(w http.ResponseWriter, r *http.Request) {
	var req models.ConvertRequest
	if !h.decode(w, r, &req) {
		return
	}
	resp, err := calculator.Convert(req)
	h.respond(w, resp, err)
}

// ROI reports the return on a settled bet
func (h *CalculatorHandler) ROI(w http.ResponseWriter, r *http.Request) {
	var req models.ROIRequest
	if !h.decode(w, r, &req) {
		return
	}
	resp, err := calculator.ROI(req)
	h.respond(w, resp, err)
}

func (h *CalculatorHandler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid request body", err)
		return false
	}
	return true
}

func (h *CalculatorHandler) respond(w http.ResponseWriter, resp interface{}, err error) {
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, resp)
	case errors.Is(err, oddsmath.ErrNoArbitrage):
		respondJSON(w, http.StatusUnprocessableEntity, models.ErrorResponse{
			Error:   "no_arbitrage",
			Message: err.Error(),
			Code:    http.StatusUnprocessableEntity,
		})
	case errors.Is(err, oddsmath.ErrInvalidOdds),
		errors.Is(err, oddsmath.ErrInvalidProbability),
		errors.Is(err, oddsmath.ErrInvalidStake):
		respondError(w, h.logger, http.StatusBadRequest, err.Error(), nil)
	default:
		respondError(w, h.logger, http.StatusInternalServerError, "calculation failed", err)
	}
}
