package errors

import (
	"errors"
	"fmt"
)

// Category classifies trading failures by how callers must react.
type Category string

const (
	// CategoryConnection means gateway init/login failed; the whole command aborts.
	CategoryConnection Category = "CONNECTION"
	// CategoryDataUnavailable means a position/tick/symbol-info query returned
	// nothing; the current batch or cycle aborts.
	CategoryDataUnavailable Category = "DATA_UNAVAILABLE"
	// CategoryValidation means an order failed pre-submission checks; nothing
	// reaches the gateway.
	CategoryValidation Category = "VALIDATION"
	// CategoryRejected means the broker returned a non-success return code.
	// Terminal for that attempt.
	CategoryRejected Category = "ORDER_REJECTED"
	// CategoryNoResponse means the broker call returned no response object at
	// all. Transient; indistinguishable from a network hiccup.
	CategoryNoResponse Category = "NO_RESPONSE"
)

// TradeError is a categorized trading failure with the context needed to
// surface it in logs and CLI results.
type TradeError struct {
	Category   Category
	Component  string
	Operation  string
	Message    string
	Ticket     int64
	RetCode    int
	Underlying error
}

func (e *TradeError) Error() string {
	msg := fmt.Sprintf("[%s:%s] %s", e.Category, e.Component, e.Operation)
	if e.Ticket != 0 {
		msg += fmt.Sprintf(" ticket=%d", e.Ticket)
	}
	if e.RetCode != 0 {
		msg += fmt.Sprintf(" retcode=%d", e.RetCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Underlying != nil {
		msg += ": " + e.Underlying.Error()
	}
	return msg
}

func (e *TradeError) Unwrap() error {
	return e.Underlying
}

// Retryable reports whether the failure is transient.
func (e *TradeError) Retryable() bool {
	return e.Category == CategoryNoResponse
}

// NewConnectionError reports a failed gateway init/login.
func NewConnectionError(component string, err error) *TradeError {
	return &TradeError{
		Category:   CategoryConnection,
		Component:  component,
		Operation:  "connect",
		Message:    "failed to connect to gateway",
		Underlying: err,
	}
}

// NewDataUnavailable reports a query that returned nothing to act on.
func NewDataUnavailable(component, operation string, err error) *TradeError {
	return &TradeError{
		Category:   CategoryDataUnavailable,
		Component:  component,
		Operation:  operation,
		Message:    "no data returned",
		Underlying: err,
	}
}

// NewValidationError reports an order rejected before submission.
func NewValidationError(component, message string) *TradeError {
	return &TradeError{
		Category:  CategoryValidation,
		Component: component,
		Operation: "validate",
		Message:   message,
	}
}

// NewOrderRejected reports a broker rejection with its return code and message.
func NewOrderRejected(component string, ticket int64, retcode int, message string) *TradeError {
	return &TradeError{
		Category:  CategoryRejected,
		Component: component,
		Operation: "order_send",
		Message:   message,
		Ticket:    ticket,
		RetCode:   retcode,
	}
}

// NewNoResponse reports a broker call that returned no response object.
func NewNoResponse(component string, ticket int64) *TradeError {
	return &TradeError{
		Category:  CategoryNoResponse,
		Component: component,
		Operation: "order_send",
		Message:   "no response from order send",
		Ticket:    ticket,
	}
}

// IsCategory reports whether err (or anything it wraps) is a TradeError of
// the given category.
func IsCategory(err error, category Category) bool {
	var te *TradeError
	if errors.As(err, &te) {
		return te.Category == category
	}
	return false
}

func IsConnection(err error) bool      { return IsCategory(err, CategoryConnection) }
func IsDataUnavailable(err error) bool { return IsCategory(err, CategoryDataUnavailable) }
func IsValidation(err error) bool      { return IsCategory(err, CategoryValidation) }
func IsRejected(err error) bool        { return IsCategory(err, CategoryRejected) }
func IsNoResponse(err error) bool      { return IsCategory(err, CategoryNoResponse) }
