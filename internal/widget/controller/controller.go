// Package controller owns the widget element: the collapsed/expanded state
// machine, the attribute-reactivity contract, outside-interaction dismissal
// and the wiring between resolver, session store, transcript and client.
package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pfcsearch/widget-runtime/internal/domain/models"
	"github.com/pfcsearch/widget-runtime/internal/host"
	"github.com/pfcsearch/widget-runtime/internal/pkg/logging"
	"github.com/pfcsearch/widget-runtime/internal/widget/client"
	"github.com/pfcsearch/widget-runtime/internal/widget/resolver"
	"github.com/pfcsearch/widget-runtime/internal/widget/session"
	"github.com/pfcsearch/widget-runtime/internal/widget/transcript"
)

// Element tags of the widget subtree.
const (
	ElementTag  = "pfc-widget"
	LauncherTag = "pfc-widget-launcher"
	PanelTag    = "pfc-widget-panel"
	InputTag    = "pfc-widget-input"
	CloseTag    = "pfc-widget-close"
	SendTag     = "pfc-widget-send"
)

// State is the visual state of the widget element.
type State string

const (
	// StateCollapsed shows only the launcher affordance. Initial state.
	StateCollapsed State = "collapsed"
	// StateExpanded shows the chat panel.
	StateExpanded State = "expanded"
)

// Sender resolves one user turn into an assistant message.
type Sender interface {
	Send(text string, cfg models.WidgetConfig) client.Result
}

// Config holds the dependencies of a controller.
type Config struct {
	Resolver *resolver.Resolver
	Sessions *session.Service
	Sender   Sender
}

// Controller drives one widget instance.
type Controller struct {
	resolver *resolver.Resolver
	sessions *session.Service
	sender   Sender

	element  *host.Element
	launcher *host.Element
	panel    *host.Element
	input    *host.Element

	transcript *transcript.Transcript
	state      State
	opts       resolver.Options
	cfg        models.WidgetConfig

	removeOutside func()
	logger        zerolog.Logger
}

// New creates a controller and its detached widget element. The element is
// not part of any document until Attach.
func New(cfg *Config) (*Controller, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.Resolver == nil {
		return nil, fmt.Errorf("resolver is required")
	}
	if cfg.Sessions == nil {
		return nil, fmt.Errorf("session service is required")
	}
	if cfg.Sender == nil {
		return nil, fmt.Errorf("sender is required")
	}

	c := &Controller{
		resolver: cfg.Resolver,
		sessions: cfg.Sessions,
		sender:   cfg.Sender,
		state:    StateCollapsed,
		logger:   logging.Component("controller"),
	}

	c.element = host.NewElement(ElementTag)
	c.launcher = host.NewElement(LauncherTag)
	c.launcher.OnClick(c.Open)
	c.element.AppendChild(c.launcher)

	c.element.OnConnect(c.onConnect)
	c.element.OnDisconnect(c.onDisconnect)
	c.element.ObserveAttrs(c.onAttrChanged)

	return c, nil
}

// Element returns the widget's host element.
func (c *Controller) Element() *host.Element {
	return c.element
}

// State returns the current visual state.
func (c *Controller) State() State {
	return c.state
}

// Config returns the last resolved configuration.
func (c *Controller) Config() models.WidgetConfig {
	return c.cfg
}

// Transcript returns the mounted transcript, or nil before first expand.
func (c *Controller) Transcript() *transcript.Transcript {
	return c.transcript
}

// Attach appends the widget element to the document body.
func (c *Controller) Attach(doc *host.Document) {
	doc.Body().AppendChild(c.element)
}

// Open transitions to Expanded. The configuration is re-resolved on every
// open to pick up attribute changes; the chat panel is constructed on the
// first open ever and refreshed in place on later ones. Opening an already
// expanded widget is a no-op reopen.
func (c *Controller) Open() {
	c.cfg = c.resolve()

	if c.panel == nil {
		c.mountPanel()
	} else {
		c.refreshPanel()
	}

	if c.state == StateExpanded {
		return
	}
	c.state = StateExpanded
	c.element.SetAttr("open", "")
	c.launcher.SetAttr("hidden", "")
	c.panel.RemoveAttr("hidden")
}

// Close transitions to Collapsed. Collapsing is non-destructive: the panel
// and its transcript survive, so reopening resumes the same conversation.
func (c *Controller) Close() {
	if c.state == StateCollapsed {
		return
	}
	c.state = StateCollapsed
	c.element.RemoveAttr("open")
	c.launcher.RemoveAttr("hidden")
	if c.panel != nil {
		c.panel.SetAttr("hidden", "")
	}
}

// Configure refines the explicit option bundle and re-resolves without
// changing the open/closed state. A mounted panel is updated in place.
func (c *Controller) Configure(opts *resolver.Options) {
	c.opts = c.opts.Merged(opts)
	c.cfg = c.resolve()
	if c.panel != nil {
		c.refreshPanel()
	}
}

// Ask opens the widget if needed and submits the question as if typed by the
// user, deferred by one rendering pass so the input control exists before it
// is driven.
func (c *Controller) Ask(question string) {
	c.Open()

	doc := c.element.Document()
	if doc == nil {
		c.logger.Debug().Msg("ask on detached widget ignored")
		return
	}
	doc.RequestFrame(func() {
		if c.input == nil {
			return
		}
		c.input.SetAttr("value", question)
		c.SubmitInput()
	})
}

// SubmitInput submits and clears the input control's current value.
func (c *Controller) SubmitInput() {
	if c.input == nil {
		return
	}
	raw := c.input.Attr("value")
	c.input.SetAttr("value", "")
	c.Submit(raw)
}

// Submit sends one user turn. Empty (after trimming) input and submissions
// while a send is outstanding are rejected as no-ops. Every accepted send
// appends the user turn, resolves to exactly one assistant message, and
// clears the pending flag exactly once.
func (c *Controller) Submit(raw string) {
	text := strings.TrimSpace(raw)
	if text == "" || c.transcript == nil {
		return
	}
	if !c.transcript.BeginSend() {
		return
	}
	defer c.transcript.EndSend()

	c.transcript.AppendUser(text)

	res := c.sender.Send(text, c.cfg)
	if res.SessionID != "" && res.SessionID != c.cfg.SessionID {
		c.sessions.Adopt(c.cfg.SourceID, res.SessionID)
		c.cfg.SessionID = res.SessionID
	}
	c.transcript.AppendAssistant(res.Message.Text)
}

// onConnect installs the outside-dismissal listener and performs the first
// configuration resolution (which lazily creates the session identity).
func (c *Controller) onConnect(doc *host.Document) {
	c.cfg = c.resolve()
	c.removeOutside = doc.AddPointerListener(c.onPointer)
}

// onDisconnect removes the document-level listener and releases the mounted
// UI. Element removal is the only destructive transition.
func (c *Controller) onDisconnect() {
	if c.removeOutside != nil {
		c.removeOutside()
		c.removeOutside = nil
	}
	if c.panel != nil {
		c.panel.Remove()
		c.panel = nil
		c.input = nil
	}
	c.transcript = nil
	c.state = StateCollapsed
	c.element.RemoveAttr("open")
	c.launcher.RemoveAttr("hidden")
}

// onPointer collapses the widget on pointer interaction outside its subtree.
func (c *Controller) onPointer(ev host.PointerEvent) {
	if c.state != StateExpanded {
		return
	}
	if ev.Target != nil && c.element.Contains(ev.Target) {
		return
	}
	c.Close()
}

// onAttrChanged re-resolves when an observed attribute changes on a
// connected element and updates the mounted panel in place without touching
// the transcript.
func (c *Controller) onAttrChanged(name, _, _ string) {
	if !c.element.IsConnected() || !resolver.Observed(name) {
		return
	}
	c.cfg = c.resolve()
	if c.panel != nil {
		c.refreshPanel()
	}
}

func (c *Controller) resolve() models.WidgetConfig {
	return c.resolver.Resolve(context.Background(), c.element, &c.opts)
}

// mountPanel constructs the chat panel once and binds its controls. The
// transcript opens with the resolved greeting.
func (c *Controller) mountPanel() {
	c.panel = host.NewElement(PanelTag)

	closeBtn := host.NewElement(CloseTag)
	closeBtn.OnClick(c.Close)
	c.panel.AppendChild(closeBtn)

	c.input = host.NewElement(InputTag)
	c.panel.AppendChild(c.input)

	sendBtn := host.NewElement(SendTag)
	sendBtn.OnClick(c.SubmitInput)
	c.panel.AppendChild(sendBtn)

	c.element.AppendChild(c.panel)
	c.transcript = transcript.New(c.cfg.Greeting)
	c.refreshPanel()
}

// refreshPanel applies configuration to the mounted UI in place.
func (c *Controller) refreshPanel() {
	if c.cfg.Theme != "" {
		c.element.SetAttr("theme", c.cfg.Theme)
	}
}
