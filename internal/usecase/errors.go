package usecase

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrSourcesUnavailable = errors.New("job sources unavailable")
)
