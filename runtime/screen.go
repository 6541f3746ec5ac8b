package runtime

import (
	"github.com/odvcencio/unstable-ui/backend"
	"github.com/odvcencio/unstable-ui/terminal"
)

// Layer is one entry of the overlay stack with its own focus scope.
type Layer struct {
	Root       Widget
	FocusScope *FocusScope
	// Modal layers keep input from reaching the layers below.
	Modal bool
}

// Screen owns the layer stack, the render buffer and focus.
type Screen struct {
	width, height int
	layers        []*Layer
	buffer        *Buffer
	services      Services
}

// NewScreen creates a w×h screen.
func NewScreen(w, h int) *Screen {
	return &Screen{
		width:  w,
		height: h,
		buffer: NewBuffer(w, h),
	}
}

// SetServices configures the services handed to bindable widgets.
func (s *Screen) SetServices(services Services) {
	s.services = services
}

// Size returns the screen dimensions.
func (s *Screen) Size() (w, h int) {
	return s.width, s.height
}

// Resize changes the dimensions and lays every layer out again.
func (s *Screen) Resize(w, h int) {
	s.width = w
	s.height = h
	s.buffer.Resize(w, h)
	for _, layer := range s.layers {
		s.layout(layer)
	}
}

// Buffer returns the render buffer.
func (s *Screen) Buffer() *Buffer {
	return s.buffer
}

// SetRoot replaces the root of the base layer.
// The previous root is unmounted and unbound.
func (s *Screen) SetRoot(root Widget) {
	if len(s.layers) == 0 {
		s.layers = append(s.layers, &Layer{FocusScope: NewFocusScope()})
	}
	base := s.layers[0]
	if old := base.Root; old != nil {
		UnmountTree(old)
		UnbindTree(old)
	}
	base.Root = root
	base.FocusScope.Reset()
	s.attach(base)
}

// Root returns the base layer root.
func (s *Screen) Root() Widget {
	if len(s.layers) == 0 {
		return nil
	}
	return s.layers[0].Root
}

// PushLayer adds root as a new top layer.
func (s *Screen) PushLayer(root Widget, modal bool) {
	if root == nil {
		return
	}
	layer := &Layer{Root: root, FocusScope: NewFocusScope(), Modal: modal}
	s.layers = append(s.layers, layer)
	s.attach(layer)
	s.buffer.MarkAllDirty()
}

// PopLayer removes the top layer. The base layer cannot be popped.
func (s *Screen) PopLayer() bool {
	if len(s.layers) <= 1 {
		return false
	}
	top := s.layers[len(s.layers)-1]
	s.layers = s.layers[:len(s.layers)-1]
	UnmountTree(top.Root)
	UnbindTree(top.Root)
	s.buffer.Clear()
	s.buffer.MarkAllDirty()
	return true
}

// TopLayer returns the top of the stack.
func (s *Screen) TopLayer() *Layer {
	if len(s.layers) == 0 {
		return nil
	}
	return s.layers[len(s.layers)-1]
}

// LayerCount returns the stack depth.
func (s *Screen) LayerCount() int {
	return len(s.layers)
}

// FocusScope returns the focus scope of the top layer.
func (s *Screen) FocusScope() *FocusScope {
	if top := s.TopLayer(); top != nil {
		return top.FocusScope
	}
	return nil
}

// Focused returns the focused widget of the top layer.
func (s *Screen) Focused() Focusable {
	return s.FocusScope().Current()
}

// Render lays out and draws every layer, bottom to top.
// Widgets may insert siblings at any time, so layout and the focus order are
// refreshed every frame.
func (s *Screen) Render() {
	for i, layer := range s.layers {
		if layer.Root == nil {
			continue
		}
		s.layout(layer)
		layer.FocusScope.Sync(CollectFocusables(layer.Root))
		layer.Root.Render(RenderContext{
			Buffer:  s.buffer,
			Focused: i == len(s.layers)-1,
			Bounds:  s.bounds(layer),
		})
	}
}

// HandleMessage offers msg to the layers from the top down, stopping at the
// first modal layer. Unhandled Tab keys move focus.
func (s *Screen) HandleMessage(msg Message) HandleResult {
	for i := len(s.layers) - 1; i >= 0; i-- {
		layer := s.layers[i]
		if layer.Root == nil {
			continue
		}
		result := layer.Root.HandleMessage(msg)
		for _, cmd := range result.Commands {
			s.handleCommand(cmd)
		}
		if result.Handled {
			return result
		}
		if layer.Modal {
			break
		}
	}
	if key, ok := msg.(KeyMsg); ok && key.Key == terminal.KeyTab {
		if key.Shift {
			s.handleCommand(FocusPrev{})
		} else {
			s.handleCommand(FocusNext{})
		}
		return Handled()
	}
	return Unhandled()
}

func (s *Screen) handleCommand(cmd Command) {
	switch c := cmd.(type) {
	case FocusNext:
		s.FocusScope().FocusNext()
	case FocusPrev:
		s.FocusScope().FocusPrev()
	case PushOverlay:
		s.PushLayer(c.Widget, c.Modal)
	case PopOverlay:
		s.PopLayer()
	}
}

func (s *Screen) attach(layer *Layer) {
	if layer.Root == nil {
		return
	}
	BindTree(layer.Root, s.services)
	s.layout(layer)
	MountTree(layer.Root)
	RegisterFocusables(layer.FocusScope, layer.Root)
}

// bounds centers overlays at their measured size; the base layer fills the
// screen.
func (s *Screen) bounds(layer *Layer) Rect {
	full := Rect{Width: s.width, Height: s.height}
	if len(s.layers) > 0 && layer == s.layers[0] {
		return full
	}
	size := layer.Root.Measure(Loose(Size{Width: s.width, Height: s.height}))
	return Rect{
		X:      (s.width - size.Width) / 2,
		Y:      (s.height - size.Height) / 2,
		Width:  size.Width,
		Height: size.Height,
	}
}

func (s *Screen) layout(layer *Layer) {
	if layer.Root != nil {
		layer.Root.Layout(s.bounds(layer))
	}
}

// RenderContext is passed to widgets while rendering.
type RenderContext struct {
	Buffer *Buffer
	// Focused is true for the top layer.
	Focused bool
	Bounds  Rect
}

// Sub returns a context for a child region.
func (ctx RenderContext) Sub(bounds Rect) RenderContext {
	return RenderContext{Buffer: ctx.Buffer, Focused: ctx.Focused, Bounds: bounds}
}

// Clear blanks the context bounds with style.
func (ctx RenderContext) Clear(style backend.Style) {
	if ctx.Buffer == nil {
		return
	}
	ctx.Buffer.Fill(ctx.Bounds, ' ', style)
}
