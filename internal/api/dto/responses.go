// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// WidgetQueryResponse represents the success body of a widget query.
type WidgetQueryResponse struct {
	Answer    string `json:"answer"`
	SessionID string `json:"session_id"`
	SourceID  string `json:"source_id,omitempty"`
}

// ErrorResponse represents an error response. The detail field is the
// machine-readable reason the widget extracts best-effort.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}
