package dto

import "encoding/json"

const (
	ReasonMissingEmail    = "missing_email"
	ReasonUpstreamError   = "upstream_error"
	ReasonBridgeException = "bridge_exception"
)

// ProxyError is the business-level error object returned with HTTP 200 by
// the proxy API.
type ProxyError struct {
	Reason            string          `json:"reason"`
	Status            int             `json:"status,omitempty"`
	Body              json.RawMessage `json:"body,omitempty"`
	Message           string          `json:"message,omitempty"`
	AttemptedEndpoint string          `json:"attempted_endpoint,omitempty"`
	RequestPayload    any             `json:"request_payload,omitempty"`
}

type ProxyErrorEnvelope struct {
	Error *ProxyError `json:"error"`
}

// MessageError is the flat {"error": "..."} body used for 400 and 401.
type MessageError struct {
	Error string `json:"error"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	OK                  bool   `json:"ok"`
	Status              string `json:"status"`
	Service             string `json:"service"`
	Timestamp           string `json:"timestamp"`
	SealTokenConfigured bool   `json:"seal_token_configured"`
}
