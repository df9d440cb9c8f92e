package task

import (
	"errors"
	"strings"
	"time"
)

// DisplayLayout is the default layout for rendering task dates.
const DisplayLayout = "Jan 2 2006"

// StorageLayout is the layout task dates are persisted with.
const StorageLayout = time.RFC3339

// ErrNotADate indicates a value that matches none of the accepted date layouts.
var ErrNotADate = errors.New("not a date")

// inputLayouts are tried in order when parsing user-supplied dates.
var inputLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

// ParseDate parses a user-supplied date in local time.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range inputLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrNotADate
}

// FormatDate renders t with layout, adding the time of day when it is not
// midnight.
func FormatDate(t time.Time, layout string) string {
	if layout == "" {
		layout = DisplayLayout
	}
	s := t.Format(layout)
	if t.Hour() != 0 || t.Minute() != 0 {
		s += " " + t.Format("15:04")
	}
	return s
}
