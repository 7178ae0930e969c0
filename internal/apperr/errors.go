package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rhyrak/go-timetable/internal/scheduler"
)

// Error is a planner error that knows its HTTP status.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches code, status and message to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

var (
	ErrValidation  = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrNoCourses   = New("NO_COURSES", http.StatusBadRequest, "at least one course code is required")
	ErrInvalidFile = New("INVALID_FILE", http.StatusBadRequest, "course file could not be parsed")
	ErrNotFound    = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrCanceled    = New("CANCELED", 499, "request canceled")
	ErrInternal    = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
)

// FromError normalises any error into an *Error. Planner sentinels map to
// their client errors, everything else becomes ErrInternal.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	switch {
	case errors.Is(err, scheduler.ErrNoCourses):
		return Wrap(err, ErrNoCourses.Code, ErrNoCourses.Status, ErrNoCourses.Message)
	case errors.Is(err, context.Canceled):
		return Wrap(err, ErrCanceled.Code, ErrCanceled.Status, ErrCanceled.Message)
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of err with message replaced when not empty.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
