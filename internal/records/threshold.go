package records

import (
	"context"
	"strings"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/semih007/gradecalc/internal/scoring"
)

// LoadDefaultThreshold returns the persisted default when it is a valid
// score, the configured fallback otherwise.
func (r *Records) LoadDefaultThreshold(ctx context.Context) float64 {
	raw, ok := r.read(ctx, ThresholdKey)
	if !ok {
		return *r.opts.DefaultThreshold
	}
	v, err := scoring.ParseScore(raw)
	if err != nil {
		logger.Debug.Printf("Ignoring stored default threshold %q", raw)
		return *r.opts.DefaultThreshold
	}
	return v
}

// InitialSelection is the threshold selection a fresh calculator starts
// with: the preset button matching the default, or custom mode pre-filled.
func (r *Records) InitialSelection(ctx context.Context) scoring.ThresholdSelection {
	return scoring.SelectionFor(scoring.FormatScore(r.LoadDefaultThreshold(ctx)), r.opts.Presets)
}

// SaveDefaultThreshold persists raw as the default for later sessions.
// Empty or invalid input is ignored, so the stored value is always a valid
// number.
func (r *Records) SaveDefaultThreshold(ctx context.Context, raw string) {
	if strings.TrimSpace(raw) == "" {
		return
	}
	v, err := scoring.ParseScore(raw)
	if err != nil {
		logger.Debug.Printf("Not saving invalid default threshold %q", raw)
		return
	}

	unlock := r.locks.lock(ThresholdKey)
	defer unlock()

	r.write(ctx, ThresholdKey, scoring.FormatScore(v))
}
