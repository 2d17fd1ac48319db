package provider

import "errors"

// ErrRetriesExhausted is returned by Next (and raised by Pop) when every draw
// allowed by WithMaxRetries collided with an issued identifier.
var ErrRetriesExhausted = errors.New("provider: retries exhausted")
