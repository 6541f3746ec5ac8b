// Package runtime runs a widget tree against a terminal backend: layout,
// rendering into a dirty-tracked buffer, focus, and an event loop whose state
// queue is where asynchronous plugin work lands.
package runtime

// Rect is a screen region.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersect returns the overlap of r and o.
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.X+r.Width, o.X+o.Width)
	y1 := min(r.Y+r.Height, o.Y+o.Height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Size is a width and height in cells.
type Size struct {
	Width, Height int
}

// Constraints bound the size a widget may take.
type Constraints struct {
	MinWidth, MaxWidth   int
	MinHeight, MaxHeight int
}

// Tight returns constraints that allow exactly size.
func Tight(size Size) Constraints {
	return Constraints{
		MinWidth: size.Width, MaxWidth: size.Width,
		MinHeight: size.Height, MaxHeight: size.Height,
	}
}

// Loose returns constraints from zero up to size.
func Loose(size Size) Constraints {
	return Constraints{MaxWidth: size.Width, MaxHeight: size.Height}
}

// Constrain clamps size into c.
func (c Constraints) Constrain(size Size) Size {
	size.Width = clamp(size.Width, c.MinWidth, c.MaxWidth)
	size.Height = clamp(size.Height, c.MinHeight, c.MaxHeight)
	return size
}

func clamp(v, lo, hi int) int {
	if v < lo {
		v = lo
	}
	if hi > 0 && v > hi {
		v = hi
	}
	return v
}

// Widget is a node of the UI tree.
type Widget interface {
	// Measure returns the preferred size within constraints.
	Measure(constraints Constraints) Size
	// Layout assigns the widget its bounds.
	Layout(bounds Rect)
	// Render draws the widget into ctx.Buffer.
	Render(ctx RenderContext)
	// HandleMessage reacts to input and may emit commands.
	HandleMessage(msg Message) HandleResult
}

// ChildProvider is implemented by containers.
type ChildProvider interface {
	ChildWidgets() []Widget
}

// BoundsProvider exposes the bounds assigned by Layout.
type BoundsProvider interface {
	Bounds() Rect
}

// Focusable widgets can receive keyboard focus.
type Focusable interface {
	Widget
	CanFocus() bool
	Focus()
	Blur()
	IsFocused() bool
}

// HandleResult reports whether a message was consumed and which commands
// it produced.
type HandleResult struct {
	Handled  bool
	Commands []Command
}

// Handled returns a consumed result.
func Handled() HandleResult {
	return HandleResult{Handled: true}
}

// Unhandled returns a result that lets the message continue.
func Unhandled() HandleResult {
	return HandleResult{}
}

// WithCommand returns a consumed result carrying cmds.
func WithCommand(cmds ...Command) HandleResult {
	return HandleResult{Handled: true, Commands: cmds}
}
