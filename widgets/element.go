package widgets

import (
	"sync"

	"github.com/odvcencio/unstable-ui/plugin"
	"github.com/odvcencio/unstable-ui/runtime"
)

// element is the plugin.Element state shared by Field and Passage.
// Plugins may write it from their completion scheduler, so fields are
// guarded and handlers run outside the lock.
type element struct {
	mu       sync.Mutex
	name     string
	value    string
	content  string
	version  uint64
	handlers map[string][]handler
	nextID   int
	parent   *Column
	self     runtime.Widget
	changed  func()
}

type handler struct {
	id int
	fn func()
}

func (e *element) init(self runtime.Widget, name string, changed func()) {
	e.self = self
	e.name = name
	e.changed = changed
}

// Name returns the element name.
func (e *element) Name() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.name
}

// Value returns the element value.
func (e *element) Value() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.value
}

// SetValue replaces the value without triggering events.
func (e *element) SetValue(value string) {
	e.mu.Lock()
	if e.value == value {
		e.mu.Unlock()
		return
	}
	e.value = value
	e.version++
	e.mu.Unlock()
	e.notify()
}

// Content returns the element content.
func (e *element) Content() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.content
}

// SetContent replaces the content.
func (e *element) SetContent(content string) {
	e.mu.Lock()
	if e.content == content {
		e.mu.Unlock()
		return
	}
	e.content = content
	e.version++
	e.mu.Unlock()
	e.notify()
}

// InsertAfter creates a read-only Field named name and places it after this
// element in its column. Without a column the field is returned detached.
func (e *element) InsertAfter(name string) plugin.Element {
	display := NewField(name, "")
	display.SetReadOnly(true)
	e.mu.Lock()
	parent, self := e.parent, e.self
	e.mu.Unlock()
	if parent != nil {
		parent.insertAfter(self, display)
	}
	return display
}

// On subscribes fn to event.
func (e *element) On(event string, fn func()) func() {
	if fn == nil {
		return func() {}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.handlers == nil {
		e.handlers = make(map[string][]handler)
	}
	e.nextID++
	id := e.nextID
	e.handlers[event] = append(e.handlers[event], handler{id: id, fn: fn})
	var once sync.Once
	return func() {
		once.Do(func() { e.off(event, id) })
	}
}

// Trigger runs the handlers of event in subscription order.
func (e *element) Trigger(event string) {
	e.mu.Lock()
	list := append([]handler(nil), e.handlers[event]...)
	e.mu.Unlock()
	for _, h := range list {
		h.fn()
	}
}

// Handlers returns the number of handlers subscribed to event.
func (e *element) Handlers(event string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.handlers[event])
}

func (e *element) off(event string, id int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	list := e.handlers[event]
	for i, h := range list {
		if h.id == id {
			e.handlers[event] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

func (e *element) setParent(parent *Column) {
	e.mu.Lock()
	e.parent = parent
	e.mu.Unlock()
}

func (e *element) snapshot() (value, content string, version uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.value, e.content, e.version
}

func (e *element) notify() {
	if e.changed != nil {
		e.changed()
	}
}

// columnChild is implemented by widgets that need to know their column.
type columnChild interface {
	setParent(parent *Column)
}
