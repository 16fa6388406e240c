package domain

import "errors"

var (
	// ErrValidation signals a request payload outside the configured bounds.
	ErrValidation = errors.New("invalid request")
	// ErrInvalidQuery signals a full-text query the index engine cannot parse.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrStorageFailure signals that the storage engine could not complete a read or write.
	ErrStorageFailure = errors.New("storage failure")
	// ErrUnauthorized signals a missing or unknown API key.
	ErrUnauthorized = errors.New("invalid api key")
	// ErrForbidden signals an API key that is not allowed to act for the tenant.
	ErrForbidden = errors.New("tenant not authorized")
)
