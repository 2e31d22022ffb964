package cohesion

import "github.com/kailas-cloud/cohesion/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrEmptyInput     = domain.ErrEmptyInput
	ErrBinOutOfRange  = domain.ErrBinOutOfRange
	ErrInvariant      = domain.ErrInvariant
	ErrInvalidRequest = domain.ErrInvalidRequest
)
