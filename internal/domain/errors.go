package domain

import "errors"

var (
	// ErrProductNotFound is returned when no stored listings match a product query
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidPeriod is returned when a comparison period is not one of the known values
	ErrInvalidPeriod = errors.New("invalid comparison period")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrInvalidInputFile is returned when a daily input file is missing or malformed
	ErrInvalidInputFile = errors.New("invalid daily input file")

	// ErrLLMUnavailable is returned when no completion service is configured
	ErrLLMUnavailable = errors.New("completion service unavailable")

	// ErrEmptyCompletion is returned when the completion service returns no content
	ErrEmptyCompletion = errors.New("completion contained no content")

	// ErrMalformedCompletion is returned when a completion cannot be parsed into the expected structure
	ErrMalformedCompletion = errors.New("malformed completion")

	// ErrRateLimited is returned when the completion rate limit cannot be awaited
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")
)
