package knwl

import "github.com/yujingwu/knwl-platform/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrValidation     = domain.ErrValidation
	ErrInvalidQuery   = domain.ErrInvalidQuery
	ErrStorageFailure = domain.ErrStorageFailure
)
