package scoring

import (
	"fmt"

	"github.com/semih007/gradecalc/internal/models"
)

// Labels are the literal strings shown next to a result. Any empty field
// falls back to the English default.
type Labels struct {
	BelowThreshold   string `toml:"below_threshold"`
	AverageTooLow    string `toml:"average_too_low"`
	Conditional      string `toml:"conditional"`
	Passed           string `toml:"passed"`
	NotGraded        string `toml:"not_graded"`
	ThresholdWarning string `toml:"threshold_warning"`
}

func DefaultLabels() Labels {
	return Labels{
		BelowThreshold:   "Failed — below final threshold",
		AverageTooLow:    "Failed — average too low",
		Conditional:      "Conditional pass",
		Passed:           "Passed",
		NotGraded:        "Not graded",
		ThresholdWarning: "Final score is below the %s threshold, so the course is failed even though the average is %.2f.",
	}
}

func (l Labels) withDefaults() Labels {
	d := DefaultLabels()
	if l.BelowThreshold == "" {
		l.BelowThreshold = d.BelowThreshold
	}
	if l.AverageTooLow == "" {
		l.AverageTooLow = d.AverageTooLow
	}
	if l.Conditional == "" {
		l.Conditional = d.Conditional
	}
	if l.Passed == "" {
		l.Passed = d.Passed
	}
	if l.NotGraded == "" {
		l.NotGraded = d.NotGraded
	}
	if l.ThresholdWarning == "" {
		l.ThresholdWarning = d.ThresholdWarning
	}
	return l
}

func (l Labels) NotGradedLabel() string {
	return l.withDefaults().NotGraded
}

// ThresholdWarning explains a threshold failure. It returns "" for any other result.
func (g *Grader) ThresholdWarning(result models.EvaluationResult, thresholdRaw string) string {
	if !result.BelowThreshold {
		return ""
	}
	return fmt.Sprintf(g.Labels.withDefaults().ThresholdWarning, thresholdRaw, result.Average)
}

// Color tokens are resolved to concrete colors by the theme of the UI.
const (
	ColorSuccess = "success"
	ColorWarning = "warning"
	ColorError   = "error"
	ColorNeutral = "neutral"
)

func ColorFor(status models.Status) string {
	switch status {
	case models.StatusPass:
		return ColorSuccess
	case models.StatusConditional:
		return ColorWarning
	case models.StatusFail:
		return ColorError
	default:
		return ColorNeutral
	}
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

var Palette = map[Theme]map[string]string{
	ThemeLight: {
		ColorSuccess: "#2D8659",
		ColorWarning: "#D97706",
		ColorError:   "#C53030",
		ColorNeutral: "#E2E8F0",
	},
	ThemeDark: {
		ColorSuccess: "#48BB78",
		ColorWarning: "#ECC94B",
		ColorError:   "#FC8181",
		ColorNeutral: "#4A5568",
	},
}

// Hex returns the color for token in theme, or "" for unknown input.
func Hex(theme Theme, token string) string {
	return Palette[theme][token]
}
