package omdb

import "errors"

// RateLimitMarker is the text OMDb puts in "Error" once the key's daily quota is spent.
const RateLimitMarker = "Request limit reached!"

var (
	// ErrRateLimitExceeded is returned when the upstream quota is exhausted.
	ErrRateLimitExceeded = errors.New("API request limit for this server's API key has been reached")

	// ErrMalformedResponse is returned when a payload is not valid JSON.
	ErrMalformedResponse = errors.New("malformed omdb response")

	// ErrDetailUnavailable is returned when a detail lookup answers Response=False.
	ErrDetailUnavailable = errors.New("movie detail unavailable")
)
