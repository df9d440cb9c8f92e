package task

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cristianoliveira/catbot/internal/command"
)

// InvalidArgumentState categorizes why a slash argument was rejected.
type InvalidArgumentState int

const (
	// ParameterMissing means a required parameter was not given at all.
	ParameterMissing InvalidArgumentState = iota
	// ParameterEmpty means a required parameter was given without a value.
	ParameterEmpty
	// NotADate means a date parameter could not be parsed.
	NotADate
)

// String returns the string representation of the state.
func (s InvalidArgumentState) String() string {
	switch s {
	case ParameterMissing:
		return "PARAMETER_MISSING"
	case ParameterEmpty:
		return "PARAMETER_EMPTY"
	case NotADate:
		return "NOT_A_DATE"
	default:
		return fmt.Sprintf("InvalidArgumentState(%d)", int(s))
	}
}

// ArgumentFailure lists the parameters that failed with one state, with the
// raw values the user supplied, in checking order.
type ArgumentFailure struct {
	State  InvalidArgumentState
	Params *command.NamedParameterMap
}

// ArgumentError is returned by a Factory when validation fails. Failures
// holds at most one entry per state, ordered missing, empty, not-a-date.
type ArgumentError struct {
	Kind     Kind
	Failures []ArgumentFailure
}

func (e *ArgumentError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s: %s", f.State, strings.Join(f.Params.Keys(), ", ")))
	}
	return fmt.Sprintf("invalid %s arguments (%s)", e.Kind, strings.Join(parts, "; "))
}

// Factory builds a task from parsed parameters or returns an *ArgumentError.
type Factory func(params *command.NamedParameterMap) (Task, error)

// CreateIfValidElse runs factory and reports each failure to onInvalid.
// The boolean is false when no task was built.
func CreateIfValidElse(
	factory Factory,
	params *command.NamedParameterMap,
	onInvalid func(InvalidArgumentState, *command.NamedParameterMap),
) (Task, bool) {
	t, err := factory(params)
	if err == nil {
		return t, true
	}
	var argErr *ArgumentError
	if errors.As(err, &argErr) {
		for _, f := range argErr.Failures {
			onInvalid(f.State, f.Params)
		}
	}
	return Task{}, false
}

type field struct {
	name   string
	isDate bool
}

// checkFields validates the required fields in order and returns the trimmed
// values plus parsed dates.
func checkFields(kind Kind, params *command.NamedParameterMap, fields ...field) (map[string]string, map[string]time.Time, error) {
	values := make(map[string]string, len(fields))
	dates := make(map[string]time.Time)
	var missing, empty, notDate []string

	for _, f := range fields {
		raw, ok := params.Get(f.name)
		if !ok {
			missing = append(missing, f.name, "")
			continue
		}
		value := strings.TrimSpace(raw)
		if value == "" {
			empty = append(empty, f.name, raw)
			continue
		}
		if f.isDate {
			d, err := ParseDate(value)
			if err != nil {
				notDate = append(notDate, f.name, raw)
				continue
			}
			dates[f.name] = d
		}
		values[f.name] = value
	}

	var failures []ArgumentFailure
	if len(missing) > 0 {
		failures = append(failures, ArgumentFailure{State: ParameterMissing, Params: command.NewNamedParameterMap(missing...)})
	}
	if len(empty) > 0 {
		failures = append(failures, ArgumentFailure{State: ParameterEmpty, Params: command.NewNamedParameterMap(empty...)})
	}
	if len(notDate) > 0 {
		failures = append(failures, ArgumentFailure{State: NotADate, Params: command.NewNamedParameterMap(notDate...)})
	}
	if len(failures) > 0 {
		return nil, nil, &ArgumentError{Kind: kind, Failures: failures}
	}
	return values, dates, nil
}

// NewTodo requires a description.
func NewTodo(params *command.NamedParameterMap) (Task, error) {
	values, _, err := checkFields(KindTodo, params, field{name: command.DescriptionParam})
	if err != nil {
		return Task{}, err
	}
	return newTask(KindTodo, values[command.DescriptionParam]), nil
}

// NewDeadline requires a description and a /by date.
func NewDeadline(params *command.NamedParameterMap) (Task, error) {
	values, dates, err := checkFields(KindDeadline, params,
		field{name: command.DescriptionParam},
		field{name: "by", isDate: true},
	)
	if err != nil {
		return Task{}, err
	}
	t := newTask(KindDeadline, values[command.DescriptionParam])
	t.By = dates["by"]
	return t, nil
}

// NewEvent requires a description and /from and /to dates.
func NewEvent(params *command.NamedParameterMap) (Task, error) {
	values, dates, err := checkFields(KindEvent, params,
		field{name: command.DescriptionParam},
		field{name: "from", isDate: true},
		field{name: "to", isDate: true},
	)
	if err != nil {
		return Task{}, err
	}
	t := newTask(KindEvent, values[command.DescriptionParam])
	t.From = dates["from"]
	t.To = dates["to"]
	return t, nil
}
