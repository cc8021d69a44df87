package apperrors

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("not found")
	ErrNoData        = errors.New("no observation data")
	ErrInvalidConfig = errors.New("invalid config")
)
