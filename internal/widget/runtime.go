// Package widget exposes the host-facing control surface of the widget
// runtime: a per-document singleton registry with init, open, close,
// configure and ask operations, plus the script-tag bootstrap.
package widget

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/pfcsearch/widget-runtime/internal/core/storage"
	"github.com/pfcsearch/widget-runtime/internal/host"
	"github.com/pfcsearch/widget-runtime/internal/pkg/logging"
	"github.com/pfcsearch/widget-runtime/internal/widget/client"
	"github.com/pfcsearch/widget-runtime/internal/widget/controller"
	"github.com/pfcsearch/widget-runtime/internal/widget/resolver"
	"github.com/pfcsearch/widget-runtime/internal/widget/session"
)

// Options is the explicit option bundle accepted by Init and Configure.
type Options = resolver.Options

// Config holds the dependencies for a widget runtime.
type Config struct {
	// Store persists session identities. Nil degrades to ephemeral ids.
	Store storage.Store
	// Defaults are the build-time widget defaults.
	Defaults resolver.Defaults
	// Sender overrides the messaging client, mainly for tests.
	Sender controller.Sender
	// Client configures the default messaging client when Sender is nil.
	Client *client.Config
}

// Runtime is the process-wide registry mapping each document to its single
// attached widget instance. It is the Go counterpart of the global control
// object a host page sees.
type Runtime struct {
	mu        sync.Mutex
	instances map[*host.Document]*controller.Controller

	sessions *session.Service
	resolver *resolver.Resolver
	sender   controller.Sender
	logger   zerolog.Logger
}

// NewRuntime creates a widget runtime.
func NewRuntime(cfg *Config) *Runtime {
	if cfg == nil {
		cfg = &Config{}
	}

	sessions := session.NewService(cfg.Store)
	sender := cfg.Sender
	if sender == nil {
		sender = client.NewClient(cfg.Client)
	}

	return &Runtime{
		instances: make(map[*host.Document]*controller.Controller),
		sessions:  sessions,
		resolver:  resolver.New(sessions, cfg.Defaults),
		sender:    sender,
		logger:    logging.Component("widget"),
	}
}

// Sessions returns the shared session identity service.
func (r *Runtime) Sessions() *session.Service {
	return r.sessions
}

// Init attaches the singleton widget element to the document, or, when the
// document already hosts one, reconfigures the existing instance instead of
// attaching a second. It returns the instance's controller.
func (r *Runtime) Init(doc *host.Document, opts *Options) (*controller.Controller, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.instances[doc]; ok {
		existing.Configure(opts)
		return existing, nil
	}

	// A document may host an element this runtime does not know about (for
	// example after a registry restart); never stack a second one on top.
	if el := doc.FindByTag(controller.ElementTag); el != nil {
		return nil, fmt.Errorf("document already hosts a %s element", controller.ElementTag)
	}

	ctrl, err := controller.New(&controller.Config{
		Resolver: r.resolver,
		Sessions: r.sessions,
		Sender:   r.sender,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create widget controller: %w", err)
	}

	if opts != nil {
		ctrl.Configure(opts)
	}

	ctrl.Element().OnDisconnect(func() {
		r.mu.Lock()
		delete(r.instances, doc)
		r.mu.Unlock()
	})

	ctrl.Attach(doc)
	r.instances[doc] = ctrl
	return ctrl, nil
}

// Get returns the controller attached to the document, or nil.
func (r *Runtime) Get(doc *host.Document) *controller.Controller {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.instances[doc]
}

// Open expands the document's widget, if one is attached.
func (r *Runtime) Open(doc *host.Document) {
	if ctrl := r.Get(doc); ctrl != nil {
		ctrl.Open()
	}
}

// Close collapses the document's widget, if one is attached.
func (r *Runtime) Close(doc *host.Document) {
	if ctrl := r.Get(doc); ctrl != nil {
		ctrl.Close()
	}
}

// Configure updates the configuration of the document's widget without
// changing its open/closed state.
func (r *Runtime) Configure(doc *host.Document, opts *Options) {
	if ctrl := r.Get(doc); ctrl != nil {
		ctrl.Configure(opts)
	}
}

// Ask opens the document's widget and submits the question as user input.
func (r *Runtime) Ask(doc *host.Document, question string) {
	if ctrl := r.Get(doc); ctrl != nil {
		ctrl.Ask(question)
	}
}
