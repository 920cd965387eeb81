// Package host models the embedding page's document: an element tree with
// attributes, pointer events, lifecycle callbacks and a deferred-paint frame
// queue. It is the attachment point the widget mounts into; there is no HTML
// parsing or rendering. The model is single-threaded and event-driven, like
// script execution in a document, and is not safe for concurrent use.
package host

// PageInfo describes the host page the document belongs to.
type PageInfo struct {
	URL            string
	Path           string
	Title          string
	UserAgent      string
	Language       string
	ViewportWidth  int
	ViewportHeight int
}

// Document represents one host page document.
type Document struct {
	page          PageInfo
	body          *Element
	currentScript *Element

	pointerListeners map[int]PointerListener
	nextListenerID   int

	frameQueue []func()

	ready          bool
	readyCallbacks []func()
}

// PointerListener receives document-level pointer events.
type PointerListener func(ev PointerEvent)

// PointerEvent represents a pointer interaction somewhere in the document.
type PointerEvent struct {
	// Target is the innermost element the interaction happened on.
	Target *Element
}

// NewDocument creates an empty document with a body element.
func NewDocument() *Document {
	d := &Document{
		pointerListeners: make(map[int]PointerListener),
	}
	d.body = NewElement("body")
	d.body.doc = d
	d.body.connected = true
	return d
}

// Body returns the document body.
func (d *Document) Body() *Element {
	return d.body
}

// SetPageInfo records the host page context.
func (d *Document) SetPageInfo(page PageInfo) {
	d.page = page
}

// PageInfo returns the host page context.
func (d *Document) PageInfo() PageInfo {
	return d.page
}

// SetCurrentScript records the script element that is currently executing,
// the way document.currentScript does during an embed script run.
func (d *Document) SetCurrentScript(el *Element) {
	d.currentScript = el
}

// CurrentScript returns the currently executing script element, or nil.
func (d *Document) CurrentScript() *Element {
	return d.currentScript
}

// AddPointerListener installs a document-level pointer listener and returns
// a function that removes it. Removal is idempotent.
func (d *Document) AddPointerListener(fn PointerListener) (remove func()) {
	id := d.nextListenerID
	d.nextListenerID++
	d.pointerListeners[id] = fn

	return func() {
		delete(d.pointerListeners, id)
	}
}

// PointerListenerCount reports how many document-level listeners are installed.
func (d *Document) PointerListenerCount() int {
	return len(d.pointerListeners)
}

// DispatchPointer delivers a pointer event on the given target to all
// document-level listeners.
func (d *Document) DispatchPointer(target *Element) {
	ev := PointerEvent{Target: target}
	for _, fn := range d.pointerListeners {
		fn(ev)
	}
}

// RequestFrame queues a callback to run on the next rendering pass.
func (d *Document) RequestFrame(fn func()) {
	d.frameQueue = append(d.frameQueue, fn)
}

// Flush runs one rendering pass: every callback queued before the pass runs
// once; callbacks queued during the pass wait for the next one.
func (d *Document) Flush() {
	queued := d.frameQueue
	d.frameQueue = nil
	for _, fn := range queued {
		fn()
	}
}

// FlushAll runs rendering passes until the frame queue is empty.
func (d *Document) FlushAll() {
	for len(d.frameQueue) > 0 {
		d.Flush()
	}
}

// OnReady registers a callback for document-ready. If the document is already
// ready the callback runs immediately.
func (d *Document) OnReady(fn func()) {
	if d.ready {
		fn()
		return
	}
	d.readyCallbacks = append(d.readyCallbacks, fn)
}

// Ready marks the document ready and runs pending ready callbacks.
func (d *Document) Ready() {
	if d.ready {
		return
	}
	d.ready = true

	callbacks := d.readyCallbacks
	d.readyCallbacks = nil
	for _, fn := range callbacks {
		fn()
	}
}

// IsReady reports whether the document has reached ready state.
func (d *Document) IsReady() bool {
	return d.ready
}

// FindByTag returns the first element with the given tag, or nil.
func (d *Document) FindByTag(tag string) *Element {
	return d.body.FindByTag(tag)
}
