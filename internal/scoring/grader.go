// internal/scoring/grader.go
package scoring

import (
	"math"

	"github.com/semih007/gradecalc/internal/models"
)

const (
	DefaultMidtermWeight     = 0.4
	DefaultFinalWeight       = 0.6
	DefaultPassCutoff        = 50.0
	DefaultConditionalCutoff = 40.0
	DefaultThreshold         = 30.0
)

// DefaultPresets are the thresholds offered without typing a custom value.
var DefaultPresets = []float64{30, 35}

// Grader turns two validated scores and a final-exam threshold into a result.
// It holds configuration only and is safe for concurrent use.
type Grader struct {
	MidtermWeight     float64 `toml:"midterm_weight"`
	FinalWeight       float64 `toml:"final_weight"`
	PassCutoff        float64 `toml:"pass_cutoff"`
	ConditionalCutoff float64 `toml:"conditional_cutoff"`
	Labels            Labels  `toml:"-"`
}

func NewGrader(midtermWeight, finalWeight, passCutoff, conditionalCutoff float64, labels Labels) *Grader {
	return &Grader{
		MidtermWeight:     midtermWeight,
		FinalWeight:       finalWeight,
		PassCutoff:        passCutoff,
		ConditionalCutoff: conditionalCutoff,
		Labels:            labels.withDefaults(),
	}
}

func DefaultGrader() *Grader {
	return NewGrader(
		DefaultMidtermWeight,
		DefaultFinalWeight,
		DefaultPassCutoff,
		DefaultConditionalCutoff,
		DefaultLabels(),
	)
}

// Evaluate expects midterm, final and threshold inside [0,100]; validation
// happens before this call. The first matching rule wins:
//
//	final < threshold          -> fail, whatever the average
//	average < conditional cut  -> fail
//	average < pass cut         -> conditional
//	otherwise                  -> pass
func (g *Grader) Evaluate(midterm, final, threshold float64) models.EvaluationResult {
	average := Round2(midterm*g.MidtermWeight + final*g.FinalWeight)
	labels := g.Labels.withDefaults()

	result := models.EvaluationResult{Average: average}

	switch {
	case final < threshold:
		result.Status = models.StatusFail
		result.StatusLabel = labels.BelowThreshold
		result.BelowThreshold = true
	case average < g.ConditionalCutoff:
		result.Status = models.StatusFail
		result.StatusLabel = labels.AverageTooLow
	case average < g.PassCutoff:
		result.Status = models.StatusConditional
		result.StatusLabel = labels.Conditional
	default:
		result.Status = models.StatusPass
		result.StatusLabel = labels.Passed
	}
	result.StatusColor = ColorFor(result.Status)

	return result
}

// Round2 rounds half up on the value scaled by 100. Averages are never
// negative so math.Round matches half-up here.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
