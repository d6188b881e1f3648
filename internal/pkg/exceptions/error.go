package exceptions

import (
	"errors"
	"fmt"
	"mrchemist-admin-service/internal/pkg/constvars"
	"runtime"
)

type CustomError struct {
	StatusCode    int          `json:"status_code"`
	Success       bool         `json:"success"`
	ClientMessage string       `json:"message"`
	DevMessage    string       `json:"dev_message,omitempty"`
	FieldErrors   []FieldError `json:"errors,omitempty"`
	Locations     []Location   `json:"locations,omitempty"`
	Err           error        `json:"-"`
}

// FieldError carries one validation failure keyed by the JSON path of the offending field,
// e.g. steps[0].questions[1].type.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Location struct {
	File         string `json:"file"`
	Line         int    `json:"line"`
	FunctionName string `json:"function_name"`
}

func (e *CustomError) Error() string {
	if len(e.Locations) == 0 {
		return e.DevMessage
	}
	location := e.Locations[0]
	return fmt.Sprintf("%s (%s:%d %s)", e.DevMessage, location.File, location.Line, location.FunctionName)
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// BuildNewCustomError wraps err with an HTTP status and a pair of client/dev messages.
// When err is already a CustomError its locations are kept and the new caller is appended.
func BuildNewCustomError(err error, statusCode int, clientMessage, devMessage string) *CustomError {
	location := getLocation(3)

	var existing *CustomError
	if errors.As(err, &existing) {
		existing.Locations = append(existing.Locations, location)
		return existing
	}

	if err != nil {
		devMessage = fmt.Sprintf("%s: %s", devMessage, err.Error())
	}

	return &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Locations:     []Location{location},
		Err:           err,
	}
}

func WrapWithoutError(statusCode int, clientMessage, devMessage string) *CustomError {
	return &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Locations:     []Location{getLocation(2)},
	}
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         constvars.ResponseUnknown,
			Line:         0,
			FunctionName: constvars.ResponseUnknown,
		}
	}
	function := runtime.FuncForPC(pc).Name()
	return Location{
		File:         file,
		Line:         line,
		FunctionName: function,
	}
}
