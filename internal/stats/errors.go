package stats

import "errors"

// ErrEmptyInput is returned by statistics that need at least one day record.
// Renderers show it as "not enough data".
var ErrEmptyInput = errors.New("not enough data")

// ErrMalformedDate is returned when a day record's date is not YYYY-MM-DD.
var ErrMalformedDate = errors.New("malformed date")

// ErrMalformedTime is returned when a ride time is not HH:MM:SS.
var ErrMalformedTime = errors.New("malformed time")
