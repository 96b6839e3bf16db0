package apperr

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const (
	CodeNotFound       = "NOT_FOUND"
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeInternalError  = "INTERNAL_ERROR"
	CodePlanNotReady   = "PLAN_NOT_READY"
)

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = New(fiber.StatusBadRequest, CodeNotFound, "resource not found with given parameters")

	// ErrInvalidReq is returned when a request is invalid.
	ErrInvalidReq = New(fiber.StatusBadRequest, CodeInvalidRequest, "invalid request: some or all request parameters are invalid")

	// ErrInternalError is returned when an internal error occurs.
	ErrInternalError = New(fiber.StatusInternalServerError, CodeInternalError, "internal server error occurred")

	// ErrPlanNotReady is returned when no committed plan has been computed yet
	// and the on-demand computation could not run.
	ErrPlanNotReady = New(fiber.StatusServiceUnavailable, CodePlanNotReady, "no production plan has been computed yet")
)

type Extras map[string]interface{}

type PlannerError struct {
	StatusCode int    `example:"400"`
	ErrorCode  string `example:"INVALID_REQUEST"`
	Message    string `example:"invalid request: some or all request parameters are invalid"`
	Extras     *Extras
}

func New(statusCode int, errorCode string, message string) *PlannerError {
	return &PlannerError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

func (e PlannerError) Msg(format string, parts ...interface{}) *PlannerError {
	e.Message = fmt.Sprintf(format, parts...)
	return &e
}

func (e PlannerError) WithExtras(extras Extras) *PlannerError {
	e.Extras = &extras
	return &e
}

func NewInvalidViolations(violations interface{}) *PlannerError {
	// copy ErrInvalidReq as e
	e := *ErrInvalidReq
	e.Extras = &Extras{
		"violations": violations,
	}
	return &e
}

func (e *PlannerError) Error() string {
	return fmt.Sprintf("%s: %s", e.ErrorCode, e.Message)
}
