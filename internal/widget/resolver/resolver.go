// Package resolver computes the effective runtime configuration of one
// widget instance from explicit options, element attributes, build-time
// defaults and hard-coded fallbacks.
package resolver

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/pfcsearch/widget-runtime/internal/domain/models"
	"github.com/pfcsearch/widget-runtime/internal/host"
	"github.com/pfcsearch/widget-runtime/internal/pkg/logging"
	"github.com/pfcsearch/widget-runtime/internal/widget/session"
)

// FallbackEndpoint is the hard-coded endpoint used when nothing else
// supplies one.
const FallbackEndpoint = "/api/widget/query"

// FallbackGreeting is the hard-coded greeting used when nothing else
// supplies one.
const FallbackGreeting = "Hi! Ask me anything about this site."

// Options is an explicit, host-initiated option bundle. Empty strings mean
// "not supplied"; Metadata is overlaid on top of everything else.
type Options struct {
	Endpoint  string
	APIKey    string
	SourceID  string
	SessionID string
	Greeting  string
	Theme     string
	Metadata  models.Metadata
}

// merge overlays non-empty fields of other on top of the receiver. Later
// Configure calls refine earlier ones rather than resetting them.
func (o *Options) merge(other *Options) {
	if other == nil {
		return
	}
	if other.Endpoint != "" {
		o.Endpoint = other.Endpoint
	}
	if other.APIKey != "" {
		o.APIKey = other.APIKey
	}
	if other.SourceID != "" {
		o.SourceID = other.SourceID
	}
	if other.SessionID != "" {
		o.SessionID = other.SessionID
	}
	if other.Greeting != "" {
		o.Greeting = other.Greeting
	}
	if other.Theme != "" {
		o.Theme = other.Theme
	}
	if other.Metadata != nil {
		o.Metadata = o.Metadata.Merge(other.Metadata)
	}
}

// Merged returns a copy of the receiver refined by other.
func (o Options) Merged(other *Options) Options {
	out := o
	out.Metadata = o.Metadata.Clone()
	out.merge(other)
	return out
}

// Defaults holds the build-time defaults compiled into the widget.
type Defaults struct {
	Endpoint string
	Greeting string
}

// ObservedAttrs lists the configuration attributes the widget element reacts
// to, canonical names first. For every canonical name the data-prefixed
// legacy alias is accepted too, canonical winning when both are present.
var ObservedAttrs = []string{
	"endpoint", "api-key", "source-id", "session-id", "metadata", "greeting", "theme",
}

// Observed reports whether the attribute name (canonical or data-alias)
// belongs to the reactivity contract.
func Observed(name string) bool {
	for _, attr := range ObservedAttrs {
		if name == attr || name == "data-"+attr {
			return true
		}
	}
	return false
}

// Resolver computes WidgetConfig values. Resolution is cheap and
// side-effect-free except for one-time session creation.
type Resolver struct {
	sessions *session.Service
	defaults Defaults
	logger   zerolog.Logger
}

// New creates a resolver over the given session service and defaults.
func New(sessions *session.Service, defaults Defaults) *Resolver {
	return &Resolver{
		sessions: sessions,
		defaults: defaults,
		logger:   logging.Component("resolver"),
	}
}

// Resolve produces the effective configuration for the element. Precedence
// per field, highest first: explicit options, element attributes (canonical
// over data-alias), build-time defaults, hard-coded fallbacks. Metadata is a
// merge instead: runtime-collected context, then attribute metadata, then
// option metadata, field by field.
func (r *Resolver) Resolve(ctx context.Context, el *host.Element, opts *Options) models.WidgetConfig {
	o := Options{}
	if opts != nil {
		o = *opts
	}

	cfg := models.WidgetConfig{
		Endpoint: resolveField(el, "endpoint", o.Endpoint, r.defaults.Endpoint, FallbackEndpoint),
		APIKey:   resolveField(el, "api-key", o.APIKey, "", ""),
		SourceID: resolveField(el, "source-id", o.SourceID, "", ""),
		Greeting: resolveField(el, "greeting", o.Greeting, r.defaults.Greeting, FallbackGreeting),
		Theme:    resolveField(el, "theme", o.Theme, "", ""),
	}

	cfg.SessionID = resolveField(el, "session-id", o.SessionID, "", "")
	if cfg.SessionID == "" && r.sessions != nil {
		cfg.SessionID = r.sessions.GetOrCreate(ctx, cfg.SourceID)
	}

	cfg.Metadata = r.collectContext(el)
	cfg.Metadata = cfg.Metadata.Merge(r.attrMetadata(el))
	if opts != nil {
		cfg.Metadata = cfg.Metadata.Merge(opts.Metadata)
	}

	return cfg
}

// resolveField applies the per-field precedence chain.
func resolveField(el *host.Element, attr, optValue, defaultValue, fallback string) string {
	if optValue != "" {
		return optValue
	}
	if el != nil {
		if el.HasAttr(attr) {
			return el.Attr(attr)
		}
		if el.HasAttr("data-" + attr) {
			return el.Attr("data-" + attr)
		}
	}
	if defaultValue != "" {
		return defaultValue
	}
	return fallback
}

// collectContext gathers the runtime context fields that are always present
// in resolved metadata.
func (r *Resolver) collectContext(el *host.Element) models.Metadata {
	meta := models.Metadata{
		"resolved_at": time.Now().UTC().Format(time.RFC3339),
	}

	if el == nil || el.Document() == nil {
		return meta
	}

	page := el.Document().PageInfo()
	meta["page_url"] = page.URL
	meta["page_path"] = page.Path
	meta["page_title"] = page.Title
	meta["user_agent"] = page.UserAgent
	meta["locale"] = page.Language
	if page.ViewportWidth > 0 || page.ViewportHeight > 0 {
		meta["viewport"] = map[string]interface{}{
			"width":  page.ViewportWidth,
			"height": page.ViewportHeight,
		}
	}
	return meta
}

// attrMetadata decodes the metadata attribute. Malformed JSON is a
// recoverable condition: it resolves to an empty mapping, never an error.
func (r *Resolver) attrMetadata(el *host.Element) models.Metadata {
	if el == nil {
		return models.Metadata{}
	}

	raw := el.Attr("metadata")
	if raw == "" {
		raw = el.Attr("data-metadata")
	}
	return ParseMetadata(raw, r.logger)
}

// ParseMetadata decodes a JSON metadata string, resolving malformed input to
// an empty mapping.
func ParseMetadata(raw string, logger zerolog.Logger) models.Metadata {
	if raw == "" {
		return models.Metadata{}
	}

	var meta models.Metadata
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		logger.Debug().Err(err).Msg("ignoring malformed metadata JSON")
		return models.Metadata{}
	}
	if meta == nil {
		meta = models.Metadata{}
	}
	return meta
}
