package service

import "errors"

// Error taxonomy shared across services. Handlers map these to HTTP
// statuses; everything else surfaces as a server fault.
var (
	// ErrValidation marks client-input faults caught before any
	// downstream call (empty requirement, empty query, empty id list)
	ErrValidation = errors.New("invalid request")

	// ErrNotFound marks singleton lookups with no backing row
	ErrNotFound = errors.New("not found")

	// ErrOracleUnavailable marks transport-level oracle failures
	// (unreachable, non-2xx, timeout)
	ErrOracleUnavailable = errors.New("oracle unavailable")

	// ErrMalformedResponse marks oracle replies with no parseable JSON
	// object in them
	ErrMalformedResponse = errors.New("malformed oracle response")
)
