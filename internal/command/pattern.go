package command

import (
	"fmt"
	"strconv"
	"strings"
)

// Fallback is invoked with the raw argument when a pattern cannot parse it.
type Fallback func(raw string)

// ContractViolation is the panic value for programming errors in command
// wiring. It is never used for user input errors.
type ContractViolation struct {
	Reason string
}

func (c *ContractViolation) Error() string {
	return "command contract violation: " + c.Reason
}

func violate(format string, args ...any) {
	panic(&ContractViolation{Reason: fmt.Sprintf(format, args...)})
}

// NoDefault marks a pattern whose parse cannot fail. Reaching it means a
// pattern was wired with NoDefault although its grammar can reject input.
func NoDefault(raw string) {
	violate("parse failed for %q on a pattern configured without a default", raw)
}

// Pattern parses one argument shape and falls back on failure.
type Pattern[T any] struct {
	parse    func(raw string) (T, bool)
	fallback Fallback
}

// IfParsableElseDefault runs onSuccess with the parsed value, or the
// configured fallback with raw when parsing fails.
func (p Pattern[T]) IfParsableElseDefault(raw string, onSuccess func(T)) {
	value, ok := p.parse(raw)
	if !ok {
		p.fallback(raw)
		return
	}
	onSuccess(value)
}

// Generator produces patterns sharing one grammar with different fallbacks.
type Generator[T any] struct {
	parse func(raw string) (T, bool)
}

// UsingDefault returns a pattern that calls fallback on parse failure.
func (g Generator[T]) UsingDefault(fallback Fallback) Pattern[T] {
	if fallback == nil {
		violate("nil fallback; use NoDefault for patterns that cannot fail")
	}
	return Pattern[T]{parse: g.parse, fallback: fallback}
}

// IntegerPattern parses a trimmed base-10 integer with an optional sign.
func IntegerPattern() Generator[int] {
	return Generator[int]{parse: func(raw string) (int, bool) {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return 0, false
		}
		return n, true
	}}
}

// StringPattern yields the trimmed argument. It never fails.
func StringPattern() Generator[string] {
	return Generator[string]{parse: func(raw string) (string, bool) {
		return strings.TrimSpace(raw), true
	}}
}

// SlashPattern yields the NamedParameterMap of a slash argument. It never
// fails; required fields are validated by the consumer.
func SlashPattern() Generator[*NamedParameterMap] {
	return Generator[*NamedParameterMap]{parse: func(raw string) (*NamedParameterMap, bool) {
		return ParseSlash(raw), true
	}}
}
