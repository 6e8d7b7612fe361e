package gateway

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindNotFound
	KindStore
	KindUnavailable
)

func (k ErrorKind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error is what handlers hand to fail. Message is the text sent to the
// client; Err, when set, is the underlying cause.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Kind.Status())
}

func (e *Error) Unwrap() error {
	return e.Err
}

func validationError(err error) *Error {
	return &Error{Kind: KindValidation, Message: err.Error(), Err: err}
}

func notFoundError(message string, err error) *Error {
	return &Error{Kind: KindNotFound, Message: message, Err: err}
}

func storeError(err error) *Error {
	return &Error{Kind: KindStore, Err: err}
}

func unavailableError() *Error {
	return &Error{Kind: KindUnavailable, Message: "Database not initialized"}
}

// fail aborts the request with {"error": <message>} and the status of the
// error's kind. Errors that are not *Error are treated as store failures.
func fail(c *gin.Context, err error) {
	var gerr *Error
	if !errors.As(err, &gerr) {
		gerr = storeError(err)
	}

	_ = c.Error(gerr)
	c.AbortWithStatusJSON(gerr.Kind.Status(), gin.H{"error": gerr.Error()})
}
