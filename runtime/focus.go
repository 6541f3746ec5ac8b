package runtime

// FocusScope tracks the focusable widgets of one layer in tree order.
type FocusScope struct {
	items    []Focusable
	current  int
	onChange func(prev, next Focusable)
}

// NewFocusScope creates an empty scope.
func NewFocusScope() *FocusScope {
	return &FocusScope{current: -1}
}

// SetOnChange registers a callback for focus moves.
func (f *FocusScope) SetOnChange(fn func(prev, next Focusable)) {
	if f == nil {
		return
	}
	f.onChange = fn
}

// Register appends w if it can take focus.
// The first registered widget receives focus.
func (f *FocusScope) Register(w Focusable) {
	if f == nil || w == nil || !w.CanFocus() {
		return
	}
	for _, item := range f.items {
		if item == w {
			return
		}
	}
	f.items = append(f.items, w)
	if f.current < 0 {
		f.setCurrent(len(f.items) - 1)
	}
}

// Reset forgets every registered widget.
func (f *FocusScope) Reset() {
	if f == nil {
		return
	}
	f.items = nil
	f.current = -1
}

// Len returns the number of registered widgets.
func (f *FocusScope) Len() int {
	if f == nil {
		return 0
	}
	return len(f.items)
}

// Current returns the focused widget.
func (f *FocusScope) Current() Focusable {
	if f == nil || f.current < 0 || f.current >= len(f.items) {
		return nil
	}
	return f.items[f.current]
}

// SetFocus focuses w if it is registered.
func (f *FocusScope) SetFocus(w Focusable) bool {
	if f == nil {
		return false
	}
	for i, item := range f.items {
		if item == w {
			f.setCurrent(i)
			return true
		}
	}
	return false
}

// FocusNext moves focus forward, wrapping at the end.
func (f *FocusScope) FocusNext() {
	f.step(1)
}

// FocusPrev moves focus backward, wrapping at the start.
func (f *FocusScope) FocusPrev() {
	f.step(-1)
}

// Sync replaces the registered widgets with items, keeping the current
// focus when it is still present.
func (f *FocusScope) Sync(items []Focusable) {
	if f == nil {
		return
	}
	current := f.Current()
	f.items = items
	f.current = -1
	for i, item := range items {
		if item == current {
			f.current = i
			return
		}
	}
	if current != nil {
		current.Blur()
	}
	if len(items) > 0 {
		f.setCurrent(0)
	}
}

func (f *FocusScope) step(delta int) {
	if f == nil || len(f.items) == 0 {
		return
	}
	next := f.current + delta
	if f.current < 0 {
		next = 0
	}
	next = (next%len(f.items) + len(f.items)) % len(f.items)
	f.setCurrent(next)
}

func (f *FocusScope) setCurrent(i int) {
	prev := f.Current()
	next := f.items[i]
	if prev == next {
		f.current = i
		if !next.IsFocused() {
			next.Focus()
		}
		return
	}
	if prev != nil {
		prev.Blur()
	}
	f.current = i
	next.Focus()
	if f.onChange != nil {
		f.onChange(prev, next)
	}
}

// CollectFocusables returns the focusable widgets under root in tree order.
func CollectFocusables(root Widget) []Focusable {
	var out []Focusable
	var walk func(w Widget)
	walk = func(w Widget) {
		if w == nil {
			return
		}
		if f, ok := w.(Focusable); ok && f.CanFocus() {
			out = append(out, f)
		}
		if children, ok := w.(ChildProvider); ok {
			for _, child := range children.ChildWidgets() {
				walk(child)
			}
		}
	}
	walk(root)
	return out
}

// RegisterFocusables registers every focusable widget under root.
func RegisterFocusables(scope *FocusScope, root Widget) {
	for _, f := range CollectFocusables(root) {
		scope.Register(f)
	}
}
