// Package models contains domain models for the widget runtime.
package models

// Metadata holds arbitrary JSON-serializable context sent with each query.
// Runtime-collected fields (page URL, title, user agent, locale, viewport)
// are merged with caller-supplied overrides, caller keys winning on conflict.
type Metadata map[string]interface{}

// Clone returns a shallow copy of the metadata map.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return Metadata{}
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Merge overlays the given metadata on top of the receiver, key by key,
// and returns the result. Neither input is modified.
func (m Metadata) Merge(overlay Metadata) Metadata {
	out := m.Clone()
	for k, v := range overlay {
		out[k] = v
	}
	return out
}

// WidgetConfig is the effective runtime configuration of one widget instance.
type WidgetConfig struct {
	// Endpoint is the answering service URL, absolute or relative.
	Endpoint string `json:"endpoint"`
	// APIKey authenticates the widget against the answering service.
	// Empty means unauthenticated: a valid state that blocks sending.
	APIKey string `json:"apiKey"`
	// SourceID identifies the tenant whose indexed content is queried.
	// Empty selects the default tenant.
	SourceID string `json:"sourceId"`
	// SessionID identifies a continuing conversation. Non-empty once resolved.
	SessionID string `json:"sessionId"`
	// Greeting is the synthesized assistant message shown on first mount.
	Greeting string `json:"greeting"`
	// Theme is passed through to the host element untouched.
	Theme string `json:"theme,omitempty"`
	// Metadata is the merged runtime context plus caller overrides.
	Metadata Metadata `json:"metadata"`
}
