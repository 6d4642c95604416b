package services

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrForbidden         = errors.New("forbidden")
	ErrCounselorNotFound = errors.New("counselor not found")
	ErrInvalidAction     = errors.New("invalid action")
	ErrInvalidDatetime   = errors.New("invalid datetime")
)
