package domain

import "errors"

// Domain errors
var (
	ErrStudySetNotFound = errors.New("study set not found")
	ErrInvalidToken     = errors.New("invalid token")
)
