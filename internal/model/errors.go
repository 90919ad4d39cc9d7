package model

import (
	"errors"
	"fmt"
)

// ErrMalformedInput is returned when a required mapping or field is absent or
// of the wrong type. Empty input is not malformed.
var ErrMalformedInput = errors.New("malformed input")

// MissingDataPointError reports a date on the chart axis that has no value
// for the requested metric.
type MissingDataPointError struct {
	Metric Metric
	Date   string
}

func (e *MissingDataPointError) Error() string {
	return fmt.Sprintf("missing %s value for %q", e.Metric, e.Date)
}

// Unwrap lets errors.Is(err, ErrMalformedInput) match.
func (e *MissingDataPointError) Unwrap() error {
	return ErrMalformedInput
}
