// Package records owns everything the calculator persists: the bounded
// history, the saved courses and the default threshold. Each lives under its
// own key of a store.BlobStore as a JSON (or plain text) blob.
//
// Persistence failures never reach callers. A failed read degrades to the
// empty or default state, a failed write leaves the previous blob in place;
// both are logged and counted. A mutation whose read fails is skipped so the
// stored blob is never replaced by a partial view. Once issued, mutations run
// to completion even if the caller's context is cancelled.
package records

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"github.com/shrimpsizemoose/trekker/logger"
	"golang.org/x/sync/singleflight"

	"github.com/semih007/gradecalc/internal/metrics"
	"github.com/semih007/gradecalc/internal/scoring"
	"github.com/semih007/gradecalc/internal/store"
)

const (
	HistoryKey   = "grade_history"
	CoursesKey   = "saved_courses"
	ThresholdKey = "user_default_limit"
)

const (
	DefaultHistoryCap      = 20
	DefaultWriteRetries    = 3
	DefaultRetryBase       = 20 * time.Millisecond
	DefaultTimestampFormat = "02.01.2006 15:04:05"
)

type Options struct {
	HistoryCap      int
	WriteRetries    uint64
	RetryBase       time.Duration
	TimestampFormat string
	Presets         []float64

	// DefaultThreshold is used while no valid default is persisted. Nil
	// means scoring.DefaultThreshold.
	DefaultThreshold *float64

	// Now and NewID are replaceable for tests.
	Now   func() time.Time
	NewID func() string
}

func (o Options) withDefaults() Options {
	if o.HistoryCap <= 0 {
		o.HistoryCap = DefaultHistoryCap
	}
	if o.RetryBase <= 0 {
		o.RetryBase = DefaultRetryBase
	}
	if o.TimestampFormat == "" {
		o.TimestampFormat = DefaultTimestampFormat
	}
	if o.DefaultThreshold == nil || *o.DefaultThreshold < 0 || *o.DefaultThreshold > 100 {
		v := scoring.DefaultThreshold
		o.DefaultThreshold = &v
	}
	if len(o.Presets) == 0 {
		o.Presets = scoring.DefaultPresets
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = func() string { return uuid.NewString() }
	}
	return o
}

type Records struct {
	store  store.BlobStore
	grader *scoring.Grader
	opts   Options

	locks keyLocks
	reads singleflight.Group
}

func New(s store.BlobStore, grader *scoring.Grader, opts Options) *Records {
	if grader == nil {
		grader = scoring.DefaultGrader()
	}
	return &Records{
		store:  s,
		grader: grader,
		opts:   opts.withDefaults(),
	}
}

func (r *Records) HistoryCap() int {
	return r.opts.HistoryCap
}

type readState int

const (
	readFound readState = iota
	readMissing
	readFailed
)

// read returns the raw blob for key. Concurrent reads of one key share a
// single backend call, detached from any one caller's cancellation. ok is
// false for a missing key and for failures.
func (r *Records) read(ctx context.Context, key string) (string, bool) {
	shared := context.WithoutCancel(ctx)
	v, err, _ := r.reads.Do(key, func() (interface{}, error) {
		return r.store.Get(shared, key)
	})
	raw, state := r.settleRead(key, v, err)
	return raw, state == readFound
}

// readFresh bypasses the shared read so a read-modify-write under the key
// lock never observes a value fetched before the lock was taken. Callers
// must not write when it reports readFailed.
func (r *Records) readFresh(ctx context.Context, key string) (string, readState) {
	v, err := r.store.Get(context.WithoutCancel(ctx), key)
	return r.settleRead(key, v, err)
}

func (r *Records) settleRead(key string, v interface{}, err error) (string, readState) {
	if errors.Is(err, store.ErrNotFound) {
		metrics.StoreOperationsTotal.WithLabelValues(key, metrics.OpRead, metrics.ResultMissing).Inc()
		return "", readMissing
	}
	if err != nil {
		metrics.StoreOperationsTotal.WithLabelValues(key, metrics.OpRead, metrics.ResultError).Inc()
		logger.Error.Printf("Failed to read %s: %v", key, err)
		return "", readFailed
	}
	metrics.StoreOperationsTotal.WithLabelValues(key, metrics.OpRead, metrics.ResultOK).Inc()
	raw, _ := v.(string)
	return raw, readFound
}

// skipMutation records a mutation dropped because its read failed.
func skipMutation(key string) {
	metrics.StoreOperationsTotal.WithLabelValues(key, metrics.OpWrite, metrics.ResultError).Inc()
	logger.Error.Printf("Skipping update of %s, previous state kept", key)
}

// decode unmarshals a JSON blob into dst. A corrupt blob is logged and
// reported as absent.
func decode(key, raw string, dst interface{}) bool {
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		metrics.StoreOperationsTotal.WithLabelValues(key, metrics.OpRead, metrics.ResultCorrupt).Inc()
		logger.Error.Printf("Corrupt blob under %s, using empty state: %v", key, err)
		return false
	}
	return true
}

func (r *Records) backoff() retry.Backoff {
	return retry.WithMaxRetries(r.opts.WriteRetries, retry.NewExponential(r.opts.RetryBase))
}

// write persists value under key with bounded retries. It reports whether
// the write landed.
func (r *Records) write(ctx context.Context, key, value string) bool {
	ctx = context.WithoutCancel(ctx)
	start := time.Now()
	defer func() {
		metrics.StoreWriteDuration.WithLabelValues(key).Observe(time.Since(start).Seconds())
	}()

	err := retry.Do(ctx, r.backoff(), func(ctx context.Context) error {
		if err := r.store.Set(ctx, key, value); err != nil {
			logger.Debug.Printf("Write to %s failed, retrying: %v", key, err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		metrics.StoreOperationsTotal.WithLabelValues(key, metrics.OpWrite, metrics.ResultError).Inc()
		logger.Error.Printf("Failed to persist %s, previous state kept: %v", key, err)
		return false
	}

	metrics.StoreOperationsTotal.WithLabelValues(key, metrics.OpWrite, metrics.ResultOK).Inc()
	return true
}

func (r *Records) writeJSON(ctx context.Context, key string, v interface{}) bool {
	data, err := json.Marshal(v)
	if err != nil {
		metrics.StoreOperationsTotal.WithLabelValues(key, metrics.OpWrite, metrics.ResultError).Inc()
		logger.Error.Printf("Failed to encode %s: %v", key, err)
		return false
	}
	return r.write(ctx, key, string(data))
}

func (r *Records) remove(ctx context.Context, key string) bool {
	ctx = context.WithoutCancel(ctx)
	err := retry.Do(ctx, r.backoff(), func(ctx context.Context) error {
		if err := r.store.Delete(ctx, key); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		metrics.StoreOperationsTotal.WithLabelValues(key, metrics.OpDelete, metrics.ResultError).Inc()
		logger.Error.Printf("Failed to delete %s: %v", key, err)
		return false
	}
	metrics.StoreOperationsTotal.WithLabelValues(key, metrics.OpDelete, metrics.ResultOK).Inc()
	return true
}
