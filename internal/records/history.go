package records

import (
	"context"

	"github.com/semih007/gradecalc/internal/metrics"
	"github.com/semih007/gradecalc/internal/models"
)

// AppendHistory records a finished evaluation together with the raw inputs
// that produced it. The newest entry goes first and anything beyond the cap
// is dropped for good. A corrupt history starts over empty; an unreadable one
// is left as it is and the entry is not stored.
func (r *Records) AppendHistory(ctx context.Context, result models.EvaluationResult, midterm, final, threshold string) models.HistoryEntry {
	entry := models.HistoryEntry{
		ID:          r.opts.NewID(),
		Midterm:     midterm,
		Final:       final,
		Threshold:   threshold,
		Average:     result.Average,
		Status:      result.Status,
		StatusLabel: result.StatusLabel,
		StatusColor: result.StatusColor,
		Timestamp:   r.opts.Now().Format(r.opts.TimestampFormat),
	}

	unlock := r.locks.lock(HistoryKey)
	defer unlock()

	var history []models.HistoryEntry
	raw, state := r.readFresh(ctx, HistoryKey)
	switch state {
	case readFailed:
		skipMutation(HistoryKey)
		return entry
	case readFound:
		if !decode(HistoryKey, raw, &history) {
			history = nil
		}
	}

	history = append([]models.HistoryEntry{entry}, history...)
	if len(history) > r.opts.HistoryCap {
		history = history[:r.opts.HistoryCap]
	}

	if r.writeJSON(ctx, HistoryKey, history) {
		metrics.HistoryLength.Set(float64(len(history)))
	}

	return entry
}

// LoadHistory returns the persisted entries newest first, never nil.
func (r *Records) LoadHistory(ctx context.Context) []models.HistoryEntry {
	history := []models.HistoryEntry{}

	raw, ok := r.read(ctx, HistoryKey)
	if !ok {
		return history
	}
	if !decode(HistoryKey, raw, &history) || history == nil {
		return []models.HistoryEntry{}
	}
	if len(history) > r.opts.HistoryCap {
		history = history[:r.opts.HistoryCap]
	}
	return history
}

// ClearHistory removes the history blob. Clearing an empty history is fine.
func (r *Records) ClearHistory(ctx context.Context) {
	unlock := r.locks.lock(HistoryKey)
	defer unlock()

	if r.remove(ctx, HistoryKey) {
		metrics.HistoryLength.Set(0)
	}
}
