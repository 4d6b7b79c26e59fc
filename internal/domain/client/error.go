package client

import "errors"

var (
	ErrNotFound   = errors.New("client not found")
	ErrDuplicate  = errors.New("client name already in use")
	ErrValidation = errors.New("validation failed")
)
