package host_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfcsearch/widget-runtime/internal/host"
)

func TestElement_ConnectAndDisconnectCallbacks(t *testing.T) {
	// Arrange
	doc := host.NewDocument()
	el := host.NewElement("pfc-widget")

	var connects, disconnects int
	el.OnConnect(func(d *host.Document) {
		connects++
		assert.Same(t, doc, d)
	})
	el.OnDisconnect(func() { disconnects++ })

	// Act
	doc.Body().AppendChild(el)
	el.Remove()

	// Assert
	assert.Equal(t, 1, connects)
	assert.Equal(t, 1, disconnects)
	assert.False(t, el.IsConnected())
	assert.Nil(t, el.Document())
}

func TestElement_SubtreeConnectsWithParent(t *testing.T) {
	// Arrange
	doc := host.NewDocument()
	parent := host.NewElement("div")
	child := host.NewElement("span")
	parent.AppendChild(child)

	var childConnected bool
	child.OnConnect(func(*host.Document) { childConnected = true })

	// Act
	doc.Body().AppendChild(parent)

	// Assert
	assert.True(t, childConnected)
	assert.True(t, child.IsConnected())
}

func TestElement_AttrObserversFireOnChange(t *testing.T) {
	// Arrange
	el := host.NewElement("pfc-widget")

	type change struct{ name, old, new string }
	var changes []change
	el.ObserveAttrs(func(name, oldValue, newValue string) {
		changes = append(changes, change{name, oldValue, newValue})
	})

	// Act
	el.SetAttr("api-key", "pfc_sk_1")
	el.SetAttr("api-key", "pfc_sk_1") // unchanged value, no notification
	el.SetAttr("api-key", "pfc_sk_2")
	el.RemoveAttr("api-key")
	el.RemoveAttr("api-key") // already gone, no notification

	// Assert
	require.Len(t, changes, 3)
	assert.Equal(t, change{"api-key", "", "pfc_sk_1"}, changes[0])
	assert.Equal(t, change{"api-key", "pfc_sk_1", "pfc_sk_2"}, changes[1])
	assert.Equal(t, change{"api-key", "pfc_sk_2", ""}, changes[2])
}

func TestElement_Contains(t *testing.T) {
	// Arrange
	root := host.NewElement("pfc-widget")
	inner := host.NewElement("pfc-widget-panel")
	root.AppendChild(inner)
	outside := host.NewElement("div")

	// Assert
	assert.True(t, root.Contains(root))
	assert.True(t, root.Contains(inner))
	assert.False(t, root.Contains(outside))
}

func TestDocument_PointerListenerRemoval(t *testing.T) {
	// Arrange
	doc := host.NewDocument()
	var events int
	remove := doc.AddPointerListener(func(host.PointerEvent) { events++ })
	require.Equal(t, 1, doc.PointerListenerCount())

	// Act
	doc.DispatchPointer(doc.Body())
	remove()
	remove() // idempotent
	doc.DispatchPointer(doc.Body())

	// Assert
	assert.Equal(t, 1, events)
	assert.Equal(t, 0, doc.PointerListenerCount())
}

func TestElement_ClickReachesDocumentListeners(t *testing.T) {
	// Arrange
	doc := host.NewDocument()
	el := host.NewElement("pfc-widget-launcher")
	doc.Body().AppendChild(el)

	var clicked bool
	var target *host.Element
	el.OnClick(func() { clicked = true })
	doc.AddPointerListener(func(ev host.PointerEvent) { target = ev.Target })

	// Act
	el.Click()

	// Assert
	assert.True(t, clicked)
	assert.Same(t, el, target)
}

func TestDocument_FrameQueue(t *testing.T) {
	// Arrange
	doc := host.NewDocument()
	var order []string

	doc.RequestFrame(func() {
		order = append(order, "first")
		doc.RequestFrame(func() { order = append(order, "nested") })
	})
	doc.RequestFrame(func() { order = append(order, "second") })

	// Act: one pass runs only what was queued before it
	doc.Flush()
	assert.Equal(t, []string{"first", "second"}, order)

	doc.FlushAll()

	// Assert
	assert.Equal(t, []string{"first", "second", "nested"}, order)
}

func TestDocument_Ready(t *testing.T) {
	// Arrange
	doc := host.NewDocument()
	var calls []string
	doc.OnReady(func() { calls = append(calls, "queued") })

	// Act
	doc.Ready()
	doc.Ready() // second ready is a no-op
	doc.OnReady(func() { calls = append(calls, "immediate") })

	// Assert
	assert.True(t, doc.IsReady())
	assert.Equal(t, []string{"queued", "immediate"}, calls)
}

func TestDocument_FindByTag(t *testing.T) {
	// Arrange
	doc := host.NewDocument()
	el := host.NewElement("pfc-widget")
	doc.Body().AppendChild(el)

	// Assert
	assert.Same(t, el, doc.FindByTag("pfc-widget"))
	assert.Nil(t, doc.FindByTag("missing"))
}
