package internal

import "errors"

var (
	ErrInvalidProfile = errors.New("invalid profile")
	ErrNotFound       = errors.New("not found")
)

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func NewAppError(code int, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}
