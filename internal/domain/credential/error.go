package credential

import "errors"

var (
	ErrNotFound       = errors.New("credential not found")
	ErrClientNotFound = errors.New("client not found")
	ErrValidation     = errors.New("validation failed")
	ErrForbidden      = errors.New("operation not permitted")
	ErrInvalidType    = errors.New("unsupported service type")
)
