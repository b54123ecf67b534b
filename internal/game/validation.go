package game

import (
	"errors"
	"math"
	"strconv"
	"strings"

	constants "github.com/CodeAndHammer/nombroludo/internal/constants"
)

// parseNumber coerces raw form text the way the browser did: whitespace is
// ignored, the empty string reads as zero, and decimal float syntax as well as
// unsigned 0x, 0o and 0b integers are accepted.
func parseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, true
	}
	if base, digits, ok := radixPrefix(s); ok {
		u, err := strconv.ParseUint(digits, base, 64)
		if errors.Is(err, strconv.ErrRange) {
			return math.MaxUint64, true
		}
		return float64(u), err == nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// radixPrefix splits a 0x, 0o or 0b literal into its base and digits. A leading
// zero alone stays decimal, so "010" reads as ten.
func radixPrefix(s string) (int, string, bool) {
	if len(s) < 2 || s[0] != '0' {
		return 0, "", false
	}
	switch s[1] {
	case 'x', 'X':
		return 16, s[2:], true
	case 'o', 'O':
		return 8, s[2:], true
	case 'b', 'B':
		return 2, s[2:], true
	}
	return 0, "", false
}

// parseWhole returns raw as an int when it is integral. Magnitudes beyond
// int32 are clamped, which keeps every comparison against the game bounds.
func parseWhole(raw string) (int, bool) {
	v, ok := parseNumber(raw)
	if !ok || v != math.Trunc(v) {
		return 0, false
	}
	return int(math.Max(math.Min(v, math.MaxInt32), math.MinInt32)), true
}

func checkField(field, raw string, low, high int) (int, *ValidationError) {
	n, ok := parseWhole(raw)
	if !ok || n < 0 {
		return 0, &ValidationError{Field: field, Kind: NotANonNegativeInteger}
	}
	if n < low || n > high {
		return 0, &ValidationError{Field: field, Kind: OutOfRange, Low: low, High: high}
	}
	return n, nil
}

// ValidateSettings checks every field and returns all violations at once.
func ValidateSettings(rawMin, rawMax, rawAttempts string) (Settings, ValidationErrors) {
	var errs ValidationErrors
	min, minErr := checkField(constants.FieldMin, rawMin, constants.RangeLow, constants.RangeHigh)
	max, maxErr := checkField(constants.FieldMax, rawMax, constants.RangeLow, constants.RangeHigh)
	attempts, attErr := checkField(constants.FieldAttempt, rawAttempts, constants.AttemptsLow, constants.AttemptsHigh)

	for _, e := range []*ValidationError{minErr, maxErr, attErr} {
		if e != nil {
			errs = append(errs, *e)
		}
	}
	if minErr == nil && maxErr == nil && min >= max {
		errs = append(errs, ValidationError{Field: constants.FieldMax, Kind: MinNotBelowMax})
	}
	if len(errs) > 0 {
		return Settings{}, errs
	}
	return Settings{Min: min, Max: max, MaxAttempts: attempts}, nil
}

// ParseGuess reports the guess as an integer. Zero, blanks and fractions are
// rejected like any other non-number.
func ParseGuess(raw string) (int, bool) {
	n, ok := parseWhole(raw)
	if !ok || n == 0 {
		return 0, false
	}
	return n, true
}
