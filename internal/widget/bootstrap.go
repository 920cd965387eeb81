package widget

import (
	"github.com/pfcsearch/widget-runtime/internal/host"
	"github.com/pfcsearch/widget-runtime/internal/widget/resolver"
)

// AutoInit performs the one-time script-tag bootstrap: when the document
// reaches ready state, the embedding script element's data attributes are
// read once and the widget is attached idempotently. A malformed
// data-metadata value is ignored rather than failing attachment, and
// data-initial-question submits one question right after attach.
func (r *Runtime) AutoInit(doc *host.Document) {
	doc.OnReady(func() {
		opts, initialQuestion := r.scriptOptions(doc.CurrentScript())

		ctrl, err := r.Init(doc, opts)
		if err != nil {
			r.logger.Warn().Err(err).Msg("widget auto-init skipped")
			return
		}

		if initialQuestion != "" {
			ctrl.Ask(initialQuestion)
		}
	})
}

// scriptOptions reads the embedding script element's configuration. The
// legacy data-project-id alias is accepted for the source id, the canonical
// data-source-id winning when both are present.
func (r *Runtime) scriptOptions(script *host.Element) (*Options, string) {
	if script == nil {
		return nil, ""
	}

	sourceID := script.Attr("data-source-id")
	if sourceID == "" {
		sourceID = script.Attr("data-project-id")
	}

	opts := &Options{
		Endpoint:  script.Attr("data-endpoint"),
		APIKey:    script.Attr("data-api-key"),
		SourceID:  sourceID,
		SessionID: script.Attr("data-session-id"),
		Greeting:  script.Attr("data-greeting"),
		Theme:     script.Attr("data-theme"),
		Metadata:  resolver.ParseMetadata(script.Attr("data-metadata"), r.logger),
	}

	return opts, script.Attr("data-initial-question")
}
