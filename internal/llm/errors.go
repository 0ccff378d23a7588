package llm

import "errors"

var (
	// ErrProviderUnavailable means a client could not be constructed, usually
	// because its credentials are missing. The family is left out of the registry.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrProviderRequestFailed covers any transport or API failure of a single call.
	ErrProviderRequestFailed = errors.New("provider request failed")

	// ErrMalformedResponse means structured output could not be parsed.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrExhaustedFallback means every backend configured for a call failed.
	ErrExhaustedFallback = errors.New("all providers failed")
)
