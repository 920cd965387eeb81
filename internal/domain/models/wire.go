// Package models contains domain models for the widget runtime.
package models

// QueryRequest is the body of a widget query to the answering service.
type QueryRequest struct {
	Question  string   `json:"question"`
	SourceID  string   `json:"source_id,omitempty"`
	SessionID string   `json:"session_id,omitempty"`
	Metadata  Metadata `json:"metadata"`
}

// QueryResponse is the success body returned by the answering service.
type QueryResponse struct {
	Answer    string `json:"answer"`
	SessionID string `json:"session_id,omitempty"`
	SourceID  string `json:"source_id,omitempty"`
}

// ErrorBody is the best-effort error body returned by the answering service.
type ErrorBody struct {
	Detail string `json:"detail,omitempty"`
}
