package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/seal-bridge/internal/config"
)

var (
	ErrInvalidSubscriptionID   = errors.New("Invalid subscription_id in URL")
	ErrInvalidBillingAttemptID = errors.New("Invalid billing_attempt_id in URL")
	ErrMissingIDOrAction       = errors.New("Missing id or action")
	ErrInvalidAction           = errors.New("Invalid action. Must be: pause, resume, cancel, or reactivate")
)

// TransportError wraps a failure to reach Seal at all (DNS, refused
// connection, timeout). HTTP error statuses are not transport errors.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("seal transport: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UpstreamError is a non-2xx answer from Seal.
type UpstreamError struct {
	Status   int
	Body     json.RawMessage
	Endpoint string
	Payload  any
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("seal upstream error: status=%d endpoint=%s body=%s", e.Status, e.Endpoint, string(e.Body))
}

func newUpstreamError(resp *Response, endpoint string, payload any) *UpstreamError {
	return &UpstreamError{
		Status:   resp.Status,
		Body:     resp.Body,
		Endpoint: endpoint,
		Payload:  payload,
	}
}

// IsConfigurationError reports whether err stems from missing operator configuration.
func IsConfigurationError(err error) bool {
	var cfgErr *config.ConfigurationError
	return errors.As(err, &cfgErr)
}

func IsTransportError(err error) bool {
	var tErr *TransportError
	return errors.As(err, &tErr)
}
