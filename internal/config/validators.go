package config

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Validator normalizes a non-empty raw value or says why it is unusable.
// Load replaces a rejected value with the key's default.
type Validator func(value string) (string, error)

var validators = map[string]Validator{}

// RegisterValidator attaches v to key. Registering a key twice panics.
func RegisterValidator(key string, v Validator) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := validators[key]; exists {
		panic(fmt.Sprintf("validator already registered for key: %s", key))
	}
	validators[key] = v
}

// PositiveIntValidator accepts integers greater than zero.
func PositiveIntValidator() Validator {
	return func(value string) (string, error) {
		if n, err := strconv.Atoi(value); err != nil || n <= 0 {
			return "", errors.New("must be a positive integer")
		}
		return value, nil
	}
}

// EnumValidator accepts one of allowed, case-insensitively, and lowercases it.
func EnumValidator(allowed ...string) Validator {
	return func(value string) (string, error) {
		lower := strings.ToLower(value)
		if !slices.Contains(allowed, lower) {
			return "", fmt.Errorf("must be one of: %s", strings.Join(allowed, ", "))
		}
		return lower, nil
	}
}

// BoolValidator normalizes 1/yes/on and 0/no/off to "true"/"false".
func BoolValidator() Validator {
	return func(value string) (string, error) {
		switch normalized := normalizeBool(value); normalized {
		case "true", "false":
			return normalized, nil
		default:
			return "", errors.New("must be one of: 1, true, yes, on, 0, false, no, off")
		}
	}
}

// referenceDate is used to check that a layout renders something date-like.
var referenceDate = time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

// DateLayoutValidator accepts Go reference-time layouts such as "Jan 2 2006".
// strftime patterns and layouts without a year are rejected.
func DateLayoutValidator() Validator {
	return func(value string) (string, error) {
		if strings.Contains(value, "%") || !strings.Contains(referenceDate.Format(value), "2024") {
			return "", errors.New(`must be a Go time layout such as "Jan 2 2006"`)
		}
		return value, nil
	}
}

func initValidators() {
	RegisterValidator("storage_backend", EnumValidator("tsv", "sqlite", "bolt"))
	RegisterValidator("date_format", DateLayoutValidator())
	RegisterValidator("logging_level", EnumValidator("debug", "info", "warn", "error"))
	RegisterValidator("hooks_failure_mode", EnumValidator("warn", "ignore", "abort"))

	for _, key := range []string{"logging_max_files", "hooks_timeout"} {
		RegisterValidator(key, PositiveIntValidator())
	}
	for _, key := range []string{"history_enabled", "debug", "quiet", "logging_enabled", "hooks_enabled"} {
		RegisterValidator(key, BoolValidator())
	}
}

// normalizeBool maps the accepted spellings to "true"/"false" and returns
// anything else unchanged.
func normalizeBool(val string) string {
	switch strings.ToLower(val) {
	case "1", "true", "yes", "on":
		return "true"
	case "0", "false", "no", "off":
		return "false"
	default:
		return val
	}
}
