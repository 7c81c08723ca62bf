package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/semih007/gradecalc/internal/app"
	"github.com/semih007/gradecalc/internal/metrics"
	"github.com/semih007/gradecalc/internal/scoring"
)

type Handler struct {
	service *app.Service
}

func NewHandler(service *app.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// Routes builds the bridge API router. Callers may add more routes to it.
func (h *Handler) Routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(h.instrument)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(h.requireHeaders)

		r.Post("/evaluate", h.HandleEvaluate)

		r.Get("/history", h.HandleListHistory)
		r.Delete("/history", h.HandleClearHistory)

		r.Route("/courses", func(r chi.Router) {
			r.Get("/", h.HandleListCourses)
			r.Post("/", h.HandleAddCourse)
			r.Put("/{id}", h.HandleUpdateCourse)
			r.Delete("/{id}", h.HandleDeleteCourse)
		})

		r.Get("/threshold", h.HandleGetThreshold)
		r.Put("/threshold", h.HandleSetThreshold)
	})

	return r
}

func (h *Handler) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		path := chi.RouteContext(r.Context()).RoutePattern()
		if path == "" {
			path = "unmatched"
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.APIRequestDuration.WithLabelValues(
			path,
			r.Method,
			strconv.Itoa(status),
		).Observe(time.Since(start).Seconds())
	})
}

func (h *Handler) requireHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.service.ValidateHeaders(r.Header) {
			http.Error(w, "these are not the droids you are looking for", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type fieldMessage struct {
	Field   string `json:"field"`
	Raw     string `json:"raw"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error.Printf("Failed to encode response: %v", err)
	}
}

func writeValidationErrors(w http.ResponseWriter, verrs scoring.ValidationErrors) {
	fields := make([]fieldMessage, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fieldMessage{Field: fe.Field, Raw: fe.Raw, Message: fe.Error()})
	}
	writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
		"errors": fields,
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.Debug.Printf("Bad request body on %s: %v", r.URL.Path, err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}
