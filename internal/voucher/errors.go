package voucher

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest is returned for requests the caller must fix.
	ErrInvalidRequest = errors.New("voucher: invalid request")
	// ErrNotConfigured is returned when no sending credential is set.
	// No delivery is attempted.
	ErrNotConfigured = errors.New("voucher: sending credential not configured")
	// ErrDelivery matches any failure of the provider call.
	ErrDelivery = errors.New("voucher: delivery failed")
)

// DeliveryError reports a failed send. It matches ErrDelivery and unwraps to
// the underlying cause.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDelivery.Error(), e.Err.Error())
}

// Reason is the cause's message, suitable for showing to the caller.
func (e *DeliveryError) Reason() string {
	return e.Err.Error()
}

func (e *DeliveryError) Unwrap() []error {
	return []error{ErrDelivery, e.Err}
}
