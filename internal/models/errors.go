package models

import (
	"errors"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")

	ErrFetchFailed  = errors.New("catalog fetch failed")
	ErrUnauthorized = errors.New("catalog rejected credentials")
)
