package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/semih007/gradecalc/internal/records"
	"github.com/semih007/gradecalc/internal/scoring"
)

func (h *Handler) HandleListHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"rows": h.service.Records.LoadHistory(r.Context()),
		"cap":  h.service.Records.HistoryCap(),
	})
}

func (h *Handler) HandleClearHistory(w http.ResponseWriter, r *http.Request) {
	h.service.Records.ClearHistory(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

type courseRequest struct {
	Name    string `json:"name"`
	Midterm string `json:"midterm"`
	Final   string `json:"final"`
}

// HandleListCourses shows every course evaluated against ?threshold= when
// given, the persisted default otherwise.
func (h *Handler) HandleListCourses(w http.ResponseWriter, r *http.Request) {
	threshold := h.service.Records.LoadDefaultThreshold(r.Context())
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		v, err := scoring.ValidateField(scoring.ThresholdField, raw)
		if err != nil {
			var fe *scoring.FieldError
			errors.As(err, &fe)
			writeValidationErrors(w, scoring.ValidationErrors{fe})
			return
		}
		threshold = v
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"threshold": threshold,
		"rows":      h.service.Records.LoadCourseViews(r.Context(), threshold),
	})
}

func (h *Handler) HandleAddCourse(w http.ResponseWriter, r *http.Request) {
	var req courseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	course, err := h.service.Records.AddCourse(r.Context(), req.Name, req.Midterm, req.Final)
	if err != nil {
		h.courseError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, course)
}

func (h *Handler) HandleUpdateCourse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req courseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.service.Records.UpdateCourse(r.Context(), id, req.Name, req.Midterm, req.Final); err != nil {
		h.courseError(w, err)
		return
	}

	for _, c := range h.service.Records.LoadCourses(r.Context()) {
		if c.ID == id {
			writeJSON(w, http.StatusOK, c)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleDeleteCourse(w http.ResponseWriter, r *http.Request) {
	h.service.Records.DeleteCourse(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) courseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, records.ErrEmptyCourseName):
		http.Error(w, records.ErrEmptyCourseName.Error(), http.StatusBadRequest)
	case errors.Is(err, records.ErrCourseNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		logger.Error.Printf("Course operation failed: %v", err)
		http.Error(w, "Failed to save course", http.StatusInternalServerError)
	}
}

type thresholdResponse struct {
	Threshold float64                    `json:"threshold"`
	Selection scoring.ThresholdSelection `json:"selection"`
	Presets   []float64                  `json:"presets"`
}

func (h *Handler) thresholdState(r *http.Request) thresholdResponse {
	return thresholdResponse{
		Threshold: h.service.Records.LoadDefaultThreshold(r.Context()),
		Selection: h.service.Records.InitialSelection(r.Context()),
		Presets:   h.service.Presets(),
	}
}

func (h *Handler) HandleGetThreshold(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.thresholdState(r))
}

// HandleSetThreshold persists a new default. Unlike the store call it
// reports invalid input so the UI can show the message.
func (h *Handler) HandleSetThreshold(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Threshold string `json:"threshold"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if _, err := scoring.ValidateField(scoring.ThresholdField, req.Threshold); err != nil {
		var fe *scoring.FieldError
		errors.As(err, &fe)
		writeValidationErrors(w, scoring.ValidationErrors{fe})
		return
	}

	h.service.Records.SaveDefaultThreshold(r.Context(), strings.TrimSpace(req.Threshold))
	writeJSON(w, http.StatusOK, h.thresholdState(r))
}
