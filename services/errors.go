package services

import "errors"

// ErrorKind classifies a failure so controllers can map it to an HTTP status
// without inspecting message text.
type ErrorKind int

const (
	KindNotFound ErrorKind = iota + 1
	KindConflict
	KindUnauthorized
	KindInvalidRequest
	KindInvalidState
	KindTransient
)

type ServiceError struct {
	Kind    ErrorKind
	Message string
}

func (e *ServiceError) Error() string { return e.Message }

func notFound(message string) error       { return &ServiceError{Kind: KindNotFound, Message: message} }
func conflict(message string) error       { return &ServiceError{Kind: KindConflict, Message: message} }
func unauthorized(message string) error   { return &ServiceError{Kind: KindUnauthorized, Message: message} }
func invalidRequest(message string) error { return &ServiceError{Kind: KindInvalidRequest, Message: message} }
func invalidState(message string) error   { return &ServiceError{Kind: KindInvalidState, Message: message} }
func transient(message string) error      { return &ServiceError{Kind: KindTransient, Message: message} }

// KindOf returns the classification of err, or zero when err is not a
// ServiceError (callers treat that as internal).
func KindOf(err error) ErrorKind {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}
