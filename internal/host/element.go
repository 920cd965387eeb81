package host

// Element represents one element in a host document.
type Element struct {
	tag       string
	doc       *Document
	parent    *Element
	children  []*Element
	attrs     map[string]string
	connected bool

	attrObservers       []AttributeObserver
	clickHandlers       []func()
	connectCallbacks    []func(doc *Document)
	disconnectCallbacks []func()
}

// AttributeObserver is notified when an attribute value changes.
type AttributeObserver func(name, oldValue, newValue string)

// NewElement creates a detached element with the given tag.
func NewElement(tag string) *Element {
	return &Element{
		tag:   tag,
		attrs: make(map[string]string),
	}
}

// Tag returns the element tag.
func (e *Element) Tag() string {
	return e.tag
}

// Document returns the owning document while the element is connected.
func (e *Element) Document() *Document {
	return e.doc
}

// IsConnected reports whether the element is attached to a document.
func (e *Element) IsConnected() bool {
	return e.connected
}

// Attr returns the attribute value, or "" when absent.
func (e *Element) Attr(name string) string {
	return e.attrs[name]
}

// HasAttr reports whether the attribute is present.
func (e *Element) HasAttr(name string) bool {
	_, ok := e.attrs[name]
	return ok
}

// Attrs returns a copy of the element's attributes.
func (e *Element) Attrs() map[string]string {
	out := make(map[string]string, len(e.attrs))
	for k, v := range e.attrs {
		out[k] = v
	}
	return out
}

// SetAttr sets an attribute and notifies observers when the value changed.
func (e *Element) SetAttr(name, value string) {
	old, had := e.attrs[name]
	if had && old == value {
		return
	}
	e.attrs[name] = value
	e.notifyAttr(name, old, value)
}

// RemoveAttr removes an attribute and notifies observers if it was present.
func (e *Element) RemoveAttr(name string) {
	old, had := e.attrs[name]
	if !had {
		return
	}
	delete(e.attrs, name)
	e.notifyAttr(name, old, "")
}

// ObserveAttrs registers an observer for attribute changes.
func (e *Element) ObserveAttrs(fn AttributeObserver) {
	e.attrObservers = append(e.attrObservers, fn)
}

func (e *Element) notifyAttr(name, oldValue, newValue string) {
	for _, fn := range e.attrObservers {
		fn(name, oldValue, newValue)
	}
}

// OnConnect registers a callback fired when the element joins a document.
func (e *Element) OnConnect(fn func(doc *Document)) {
	e.connectCallbacks = append(e.connectCallbacks, fn)
}

// OnDisconnect registers a callback fired when the element leaves a document.
func (e *Element) OnDisconnect(fn func()) {
	e.disconnectCallbacks = append(e.disconnectCallbacks, fn)
}

// OnClick registers a handler invoked when the element is clicked.
func (e *Element) OnClick(fn func()) {
	e.clickHandlers = append(e.clickHandlers, fn)
}

// Click simulates a pointer interaction on this element: element handlers run
// first, then the event reaches the document-level pointer listeners.
func (e *Element) Click() {
	for _, fn := range e.clickHandlers {
		fn()
	}
	if e.doc != nil {
		e.doc.DispatchPointer(e)
	}
}

// AppendChild attaches a child element. If the receiver is connected, the
// child subtree connects and its connect callbacks fire.
func (e *Element) AppendChild(child *Element) {
	if child.parent != nil {
		child.Remove()
	}
	child.parent = e
	e.children = append(e.children, child)

	if e.connected {
		child.connect(e.doc)
	}
}

// Remove detaches the element from its parent. A connected subtree
// disconnects and its disconnect callbacks fire.
func (e *Element) Remove() {
	parent := e.parent
	if parent == nil {
		return
	}
	for i, c := range parent.children {
		if c == e {
			parent.children = append(parent.children[:i], parent.children[i+1:]...)
			break
		}
	}
	e.parent = nil

	if e.connected {
		e.disconnect()
	}
}

// Children returns the element's children.
func (e *Element) Children() []*Element {
	return e.children
}

// Contains reports whether target is the element itself or a descendant.
func (e *Element) Contains(target *Element) bool {
	for el := target; el != nil; el = el.parent {
		if el == e {
			return true
		}
	}
	return false
}

// FindByTag returns the first descendant (or the element itself) with the
// given tag, depth first, or nil.
func (e *Element) FindByTag(tag string) *Element {
	if e.tag == tag {
		return e
	}
	for _, c := range e.children {
		if found := c.FindByTag(tag); found != nil {
			return found
		}
	}
	return nil
}

func (e *Element) connect(doc *Document) {
	e.doc = doc
	e.connected = true
	for _, fn := range e.connectCallbacks {
		fn(doc)
	}
	for _, c := range e.children {
		c.connect(doc)
	}
}

func (e *Element) disconnect() {
	for _, c := range e.children {
		if c.connected {
			c.disconnect()
		}
	}
	for _, fn := range e.disconnectCallbacks {
		fn()
	}
	e.connected = false
	e.doc = nil
}
