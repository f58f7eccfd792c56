package models

import (
	"errors"
	"fmt"
)

var (
	ErrConflictData       = errors.New("data conflicts with existing data")
	ErrDataNotFound       = errors.New("data not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("operation is not permitted")
	ErrCartEmpty          = errors.New("cart is empty")
	ErrInvalidOrderStatus = errors.New("invalid order status")
	ErrInvalidSortOption  = errors.New("invalid sort option")
	ErrEmptyReturnURL     = errors.New("return url is empty")
	ErrInternalError      = errors.New("internal error")
)

// PaymentProviderError is returned when the payment gateway rejects a request
// or answers with something we cannot use.
type PaymentProviderError struct {
	Code    int
	Message string
}

func (e PaymentProviderError) Error() string {
	return fmt.Sprintf("payment provider error: code=%d message=%s", e.Code, e.Message)
}

// NewPaymentProviderError creates provider error with result code and message
func NewPaymentProviderError(code int, message string) PaymentProviderError {
	return PaymentProviderError{Code: code, Message: message}
}
