package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound       = errors.New("object not found")
	ErrValueIsInvalid       = errors.New("value is invalid")
	ErrValueIsOutOfRange    = errors.New("value is out of range")
	ErrValueIsRequired      = errors.New("value is required")
	ErrActionIsNotAllowed   = errors.New("action is not allowed")
	errorWithCauseFormatter = "%s (cause: %s)"
)

// ObjectNotFoundError reports that an aggregate or entity with the given
// identifier does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, sanitize(e.ID), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a value that failed domain validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
	if e.Cause != nil {
		return fmt.Sprintf(errorWithCauseFormatter, msg, e.Cause)
	}
	return msg
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside of [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	if e.Cause != nil {
		return fmt.Sprintf(errorWithCauseFormatter, msg, e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
	if e.Cause != nil {
		return fmt.Sprintf(errorWithCauseFormatter, msg, e.Cause)
	}
	return msg
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ActionIsNotAllowedError reports that the caller may not perform an action,
// typically because of its role or because the target belongs to someone else.
type ActionIsNotAllowedError struct {
	Action string
	Cause  error
}

func NewActionIsNotAllowedError(action string) *ActionIsNotAllowedError {
	return &ActionIsNotAllowedError{Action: action}
}

func NewActionIsNotAllowedErrorWithCause(action string, cause error) *ActionIsNotAllowedError {
	return &ActionIsNotAllowedError{Action: action, Cause: cause}
}

func (e *ActionIsNotAllowedError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrActionIsNotAllowed, e.Action)
	if e.Cause != nil {
		return fmt.Sprintf(errorWithCauseFormatter, msg, e.Cause)
	}
	return msg
}

func (e *ActionIsNotAllowedError) Unwrap() error {
	return ErrActionIsNotAllowed
}

func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
