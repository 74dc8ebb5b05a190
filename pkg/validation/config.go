package validation

import (
	"fmt"
	"strings"
)

// ConfigValidator provides a fluent interface for validating configuration and
// call arguments. It collects all violations rather than failing on the first
// one, so a bad scenario file reports every problem in a single pass.
type ConfigValidator struct {
	name   string // config or receiver name for error messages
	errors []string
}

// NewConfigValidator creates a new validator scoped to the given name.
func NewConfigValidator(name string) *ConfigValidator {
	return &ConfigValidator{name: name}
}

func (cv *ConfigValidator) addf(format string, args ...any) {
	cv.errors = append(cv.errors, fmt.Sprintf(format, args...))
}

// Required validates that a string field is not empty.
func (cv *ConfigValidator) Required(field, value string) *ConfigValidator {
	if value == "" {
		cv.addf("%s.%s: required field is empty", cv.name, field)
	}
	return cv
}

// PositiveInt validates that an int field is strictly positive.
func (cv *ConfigValidator) PositiveInt(field string, value int) *ConfigValidator {
	if value <= 0 {
		cv.addf("%s.%s: value %d must be positive", cv.name, field, value)
	}
	return cv
}

// NonNegativeInt validates that an int field is zero or greater.
func (cv *ConfigValidator) NonNegativeInt(field string, value int) *ConfigValidator {
	if value < 0 {
		cv.addf("%s.%s: value %d must not be negative", cv.name, field, value)
	}
	return cv
}

// PositiveFloat validates that a float field is strictly positive.
func (cv *ConfigValidator) PositiveFloat(field string, value float64) *ConfigValidator {
	if value <= 0 {
		cv.addf("%s.%s: value %g must be positive", cv.name, field, value)
	}
	return cv
}

// NonNegativeFloat validates that a float field is zero or greater.
func (cv *ConfigValidator) NonNegativeFloat(field string, value float64) *ConfigValidator {
	if value < 0 {
		cv.addf("%s.%s: value %g must not be negative", cv.name, field, value)
	}
	return cv
}

// UnitFraction validates that a float field lies in [0, 1] inclusive.
func (cv *ConfigValidator) UnitFraction(field string, value float64) *ConfigValidator {
	if value < 0 || value > 1 {
		cv.addf("%s.%s: value %g is outside range [0, 1]", cv.name, field, value)
	}
	return cv
}

// NonEmpty validates that a collection has at least one element.
func (cv *ConfigValidator) NonEmpty(field string, length int) *ConfigValidator {
	if length == 0 {
		cv.addf("%s.%s: collection must not be empty", cv.name, field)
	}
	return cv
}

// Check records a violation with the given message when ok is false.
func (cv *ConfigValidator) Check(ok bool, field, msg string) *ConfigValidator {
	if !ok {
		cv.addf("%s.%s: %s", cv.name, field, msg)
	}
	return cv
}

// Valid returns true when no violations were recorded.
func (cv *ConfigValidator) Valid() bool {
	return len(cv.errors) == 0
}

// Err returns nil when valid, otherwise a single error wrapping ErrValidation
// that lists every recorded violation.
func (cv *ConfigValidator) Err() error {
	if len(cv.errors) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(cv.errors, "; "))
}
