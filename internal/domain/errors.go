package domain

import "fmt"

type ErrCode string

const (
	CodeValidation    ErrCode = "validation_error"
	CodeInvalidAction ErrCode = "invalid_action"
	CodeNotFound      ErrCode = "not_found"
	CodeUnavailable   ErrCode = "unavailable"
	CodeProvider      ErrCode = "provider_error"
)

type AppError struct {
	Code    ErrCode
	Message string
	Meta    map[string]string
	Err     error
}

func (e *AppError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	case len(e.Meta) > 0:
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Meta)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

func (e *AppError) Unwrap() error { return e.Err }

func ErrValidation(msg string) error { return &AppError{Code: CodeValidation, Message: msg} }
func ErrValidationMeta(msg string, meta map[string]string) error {
	return &AppError{Code: CodeValidation, Message: msg, Meta: meta}
}
func ErrInvalidAction(raw string) error {
	return &AppError{Code: CodeInvalidAction, Message: "unknown action", Meta: map[string]string{"action": raw}}
}
func ErrNotFound(msg string) error    { return &AppError{Code: CodeNotFound, Message: msg} }
func ErrUnavailable(msg string) error { return &AppError{Code: CodeUnavailable, Message: msg} }
func ErrProvider(msg string, cause error) error {
	return &AppError{Code: CodeProvider, Message: msg, Err: cause}
}
