package handlers

import (
	"errors"
	"net/http"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/semih007/gradecalc/internal/models"
	"github.com/semih007/gradecalc/internal/scoring"
)

type evaluateRequest struct {
	Midterm   string                      `json:"midterm"`
	Final     string                      `json:"final"`
	Threshold *scoring.ThresholdSelection `json:"threshold"`
}

type evaluateResponse struct {
	models.EvaluationResult
	Warning string `json:"warning,omitempty"`
}

// HandleEvaluate runs one calculation. Without a threshold in the body the
// persisted default selection is used.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var selection scoring.ThresholdSelection
	if req.Threshold != nil {
		selection = *req.Threshold
	} else {
		selection = h.service.Records.InitialSelection(r.Context())
	}

	result, err := h.service.Calculate(r.Context(), req.Midterm, req.Final, selection)
	var verrs scoring.ValidationErrors
	if errors.As(err, &verrs) {
		writeValidationErrors(w, verrs)
		return
	}
	if err != nil {
		logger.Error.Printf("Failed to evaluate: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, evaluateResponse{
		EvaluationResult: *result,
		Warning:          h.service.ThresholdWarning(result, selection),
	})
}
