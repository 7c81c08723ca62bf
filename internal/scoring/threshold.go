package scoring

import (
	"errors"
	"slices"
	"strings"
)

type ThresholdMode string

const (
	ThresholdPreset ThresholdMode = "preset"
	ThresholdCustom ThresholdMode = "custom"
)

const ThresholdField = "threshold"

// ThresholdSelection is what the user picked: one of the preset buttons or a
// typed custom value.
type ThresholdSelection struct {
	Mode   ThresholdMode `json:"mode"`
	Preset float64       `json:"preset,omitempty"`
	Custom string        `json:"custom,omitempty"`
}

func Preset(v float64) ThresholdSelection {
	return ThresholdSelection{Mode: ThresholdPreset, Preset: v}
}

func Custom(raw string) ThresholdSelection {
	return ThresholdSelection{Mode: ThresholdCustom, Custom: raw}
}

// SelectionFor maps a stored threshold value to the selection the UI should
// start in: a preset button when it matches one, custom mode otherwise.
func SelectionFor(raw string, presets []float64) ThresholdSelection {
	v, err := ParseScore(raw)
	if err == nil && slices.Contains(presets, v) {
		return Preset(v)
	}
	return Custom(strings.TrimSpace(raw))
}

// Raw is the threshold text kept in history entries.
func (s ThresholdSelection) Raw() string {
	if s.Mode == ThresholdCustom {
		return s.Custom
	}
	return FormatScore(s.Preset)
}

// Resolve returns the numeric threshold. Custom text goes through the same
// validation as a score; a preset must be one of presets.
func (s ThresholdSelection) Resolve(presets []float64) (float64, error) {
	switch s.Mode {
	case ThresholdCustom:
		return ValidateField(ThresholdField, s.Custom)
	case ThresholdPreset, "":
		if !slices.Contains(presets, s.Preset) {
			return 0, &FieldError{Field: ThresholdField, Raw: FormatScore(s.Preset)}
		}
		return s.Preset, nil
	default:
		return 0, errors.New("unknown threshold mode: " + string(s.Mode))
	}
}
