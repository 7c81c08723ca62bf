package scoring

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidScore = errors.New("out of range or not a number")

// FieldError reports one raw text field that is not a number in [0,100].
type FieldError struct {
	Field string `json:"field"`
	Raw   string `json:"raw"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: enter a valid value (0-100), got %q", e.Field, e.Raw)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidScore
}

// ValidationErrors collects every invalid field of a single calculation.
type ValidationErrors []*FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, fe := range v {
		msgs = append(msgs, fe.Error())
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) Unwrap() error {
	return ErrInvalidScore
}

// Field returns the error for field, or nil.
func (v ValidationErrors) Field(field string) *FieldError {
	for _, fe := range v {
		if fe.Field == field {
			return fe
		}
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	if err := v.RegisterValidation("score", func(fl validator.FieldLevel) bool {
		_, err := ParseScore(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}
	return v
}

// Inputs are the two score fields exactly as typed.
type Inputs struct {
	Midterm string `json:"midterm" validate:"score"`
	Final   string `json:"final" validate:"score"`
}

// Parse validates both fields and reports all failures together.
func (in Inputs) Parse() (midterm, final float64, err error) {
	if err := validate.Struct(in); err != nil {
		return 0, 0, toValidationErrors(err)
	}
	midterm, _ = ParseScore(in.Midterm)
	final, _ = ParseScore(in.Final)
	return midterm, final, nil
}

func toValidationErrors(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, &FieldError{Field: fe.Field(), Raw: fmt.Sprint(fe.Value())})
	}
	return out
}

// ParseScore accepts a finite decimal in [0,100]. Surrounding whitespace is
// ignored and a lone decimal comma is read as a dot.
func ParseScore(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, ErrInvalidScore
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidScore
	}
	if v < 0 || v > 100 {
		return 0, ErrInvalidScore
	}
	return v, nil
}

// ValidateField is ParseScore with the field name attached to the error.
func ValidateField(field, raw string) (float64, error) {
	v, err := ParseScore(raw)
	if err != nil {
		return 0, &FieldError{Field: field, Raw: raw}
	}
	return v, nil
}

func FormatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
