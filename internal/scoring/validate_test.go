package scoring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScore(t *testing.T) {
	testCases := []struct {
		raw      string
		expected float64
		valid    bool
	}{
		{raw: "0", expected: 0, valid: true},
		{raw: "100", expected: 100, valid: true},
		{raw: "45.5", expected: 45.5, valid: true},
		{raw: "45,5", expected: 45.5, valid: true},
		{raw: "  72 ", expected: 72, valid: true},
		{raw: ""},
		{raw: "   "},
		{raw: "-1"},
		{raw: "100.01"},
		{raw: "abc"},
		{raw: "12abc"},
		{raw: "NaN"},
		{raw: "Inf"},
		{raw: "1,2,3"},
		{raw: "1.5,2"},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			v, err := ParseScore(tc.raw)
			if !tc.valid {
				assert.ErrorIs(t, err, ErrInvalidScore)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, v)
		})
	}
}

func TestInputs_Parse(t *testing.T) {
	t.Run("both valid", func(t *testing.T) {
		midterm, final, err := Inputs{Midterm: "70", Final: "60"}.Parse()
		require.NoError(t, err)
		assert.Equal(t, 70.0, midterm)
		assert.Equal(t, 60.0, final)
	})

	t.Run("every invalid field is reported", func(t *testing.T) {
		_, _, err := Inputs{Midterm: "101", Final: "x"}.Parse()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidScore)

		var verrs ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Len(t, verrs, 2)
		require.NotNil(t, verrs.Field("midterm"))
		assert.Equal(t, "101", verrs.Field("midterm").Raw)
		require.NotNil(t, verrs.Field("final"))
		assert.Equal(t, "x", verrs.Field("final").Raw)
	})

	t.Run("empty field is invalid", func(t *testing.T) {
		_, _, err := Inputs{Midterm: "", Final: "50"}.Parse()
		var verrs ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Len(t, verrs, 1)
		assert.NotNil(t, verrs.Field("midterm"))
		assert.Nil(t, verrs.Field("final"))
	})
}

func TestThresholdSelection(t *testing.T) {
	t.Run("preset resolves", func(t *testing.T) {
		v, err := Preset(35).Resolve(DefaultPresets)
		require.NoError(t, err)
		assert.Equal(t, 35.0, v)
		assert.Equal(t, "35", Preset(35).Raw())
	})

	t.Run("unknown preset is rejected", func(t *testing.T) {
		_, err := Preset(40).Resolve(DefaultPresets)
		assert.ErrorIs(t, err, ErrInvalidScore)
	})

	t.Run("custom validated like a score", func(t *testing.T) {
		v, err := Custom("42,5").Resolve(DefaultPresets)
		require.NoError(t, err)
		assert.Equal(t, 42.5, v)

		_, err = Custom("150").Resolve(DefaultPresets)
		var fe *FieldError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, ThresholdField, fe.Field)

		_, err = Custom("").Resolve(DefaultPresets)
		assert.ErrorIs(t, err, ErrInvalidScore)
	})

	t.Run("selection for stored value", func(t *testing.T) {
		assert.Equal(t, Preset(30), SelectionFor("30", DefaultPresets))
		assert.Equal(t, Preset(35), SelectionFor("35.0", DefaultPresets))
		assert.Equal(t, Custom("40"), SelectionFor(" 40 ", DefaultPresets))
	})
}
