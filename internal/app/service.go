package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/semih007/gradecalc/internal/metrics"
	"github.com/semih007/gradecalc/internal/models"
	"github.com/semih007/gradecalc/internal/records"
	"github.com/semih007/gradecalc/internal/scoring"
	"github.com/semih007/gradecalc/internal/store"
)

type Service struct {
	Config  *Config
	Store   store.BlobStore
	Grader  *scoring.Grader
	Records *records.Records
}

func NewService(configPath string) (*Service, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewServiceFromConfig(config)
}

func NewServiceFromConfig(config *Config) (*Service, error) {
	store, err := NewStore(config)
	if err != nil {
		return nil, fmt.Errorf("failed to init store: %w", err)
	}

	return NewServiceWithStore(config, store), nil
}

func NewServiceWithStore(config *Config, s store.BlobStore) *Service {
	grader := config.Grader()
	return &Service{
		Config:  config,
		Store:   s,
		Grader:  grader,
		Records: records.New(s, grader, config.RecordsOptions()),
	}
}

func (s *Service) Presets() []float64 {
	return s.Config.Grading.ThresholdPresets
}

// Calculate validates every field, evaluates and records the result in the
// history. Invalid input returns scoring.ValidationErrors listing all bad
// fields and leaves the history untouched.
func (s *Service) Calculate(ctx context.Context, midtermRaw, finalRaw string, selection scoring.ThresholdSelection) (*models.EvaluationResult, error) {
	var verrs scoring.ValidationErrors

	midterm, final, err := scoring.Inputs{Midterm: midtermRaw, Final: finalRaw}.Parse()
	if err != nil {
		var fieldErrs scoring.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return nil, err
		}
		verrs = append(verrs, fieldErrs...)
	}

	threshold, err := selection.Resolve(s.Presets())
	if err != nil {
		var fe *scoring.FieldError
		if !errors.As(err, &fe) {
			return nil, err
		}
		verrs = append(verrs, fe)
	}

	if len(verrs) > 0 {
		for _, fe := range verrs {
			metrics.ValidationFailuresTotal.WithLabelValues(fe.Field).Inc()
		}
		logger.Debug.Printf("Rejected calculation: %v", verrs)
		return nil, verrs
	}

	result := s.Grader.Evaluate(midterm, final, threshold)

	metrics.EvaluationsTotal.WithLabelValues(string(result.Status)).Inc()
	metrics.AverageHistogram.Observe(result.Average)

	s.Records.AppendHistory(ctx, result, midtermRaw, finalRaw, selection.Raw())

	return &result, nil
}

// ThresholdWarning is the explanation shown with a threshold failure, "" otherwise.
func (s *Service) ThresholdWarning(result *models.EvaluationResult, selection scoring.ThresholdSelection) string {
	return s.Grader.ThresholdWarning(*result, selection.Raw())
}

func (s *Service) ValidateHeaders(headers map[string][]string) bool {
	for _, required := range s.Config.Server.RequiredHeaders {
		value := headers[http.CanonicalHeaderKey(required.Name)]
		if len(value) == 0 || !strings.EqualFold(value[0], required.Value) {
			return false
		}
	}
	return true
}

func (s *Service) Close() error {
	if err := s.Store.Close(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	return nil
}
