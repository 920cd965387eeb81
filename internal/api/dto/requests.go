// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// WidgetQueryRequest represents the body of a widget query.
type WidgetQueryRequest struct {
	Question  string                 `json:"question" binding:"required,min=1,max=4000"`
	SourceID  string                 `json:"source_id"`
	SessionID string                 `json:"session_id"`
	Metadata  map[string]interface{} `json:"metadata"`
}
