package widgets

import (
	"github.com/odvcencio/unstable-ui/backend"
	"github.com/odvcencio/unstable-ui/runtime"
)

// Column stacks children vertically. One child may be marked flexible to
// take the height the others leave.
type Column struct {
	Base
	children []runtime.Widget
	flex     runtime.Widget
	gap      int
	services runtime.Services
	bound    bool
	mounted  bool
}

// NewColumn creates a column of children.
func NewColumn(children ...runtime.Widget) *Column {
	c := &Column{}
	for _, child := range children {
		c.Add(child)
	}
	return c
}

// Add appends child.
func (c *Column) Add(child runtime.Widget) {
	if c == nil || child == nil {
		return
	}
	c.insert(len(c.children), child)
}

// SetFlex marks child as the one that fills the remaining height.
func (c *Column) SetFlex(child runtime.Widget) {
	c.flex = child
}

// SetGap sets the blank rows between children.
func (c *Column) SetGap(gap int) {
	c.gap = max(gap, 0)
}

// ChildWidgets returns the children in order.
func (c *Column) ChildWidgets() []runtime.Widget {
	if c == nil {
		return nil
	}
	return c.children
}

// Bind keeps the services for children inserted later.
func (c *Column) Bind(services runtime.Services) {
	c.services = services
	c.bound = true
}

// Unbind forgets the services.
func (c *Column) Unbind() {
	c.services = runtime.Services{}
	c.bound = false
}

// Mount marks the column as mounted.
func (c *Column) Mount() {
	c.mounted = true
}

// Unmount marks the column as unmounted.
func (c *Column) Unmount() {
	c.mounted = false
}

// insertAfter places child right after anchor, or last when anchor is not a
// child. Children inserted into a live column are bound and mounted.
func (c *Column) insertAfter(anchor, child runtime.Widget) {
	index := len(c.children)
	for i, existing := range c.children {
		if existing == anchor {
			index = i + 1
			break
		}
	}
	c.insert(index, child)
	if c.bound {
		runtime.BindTree(child, c.services)
	}
	if c.mounted {
		runtime.MountTree(child)
	}
	if c.bound {
		c.services.Invalidate()
	}
}

func (c *Column) insert(index int, child runtime.Widget) {
	c.children = append(c.children, nil)
	copy(c.children[index+1:], c.children[index:])
	c.children[index] = child
	if cc, ok := child.(columnChild); ok {
		cc.setParent(c)
	}
}

// Measure sums the children heights.
func (c *Column) Measure(constraints runtime.Constraints) runtime.Size {
	var size runtime.Size
	for i, child := range c.children {
		s := child.Measure(runtime.Constraints{MaxWidth: constraints.MaxWidth})
		size.Width = max(size.Width, s.Width)
		size.Height += s.Height
		if i > 0 {
			size.Height += c.gap
		}
	}
	return constraints.Constrain(size)
}

// Layout gives each child its measured height and the flexible child the
// remainder.
func (c *Column) Layout(bounds runtime.Rect) {
	c.Base.Layout(bounds)
	heights := make([]int, len(c.children))
	used := 0
	for i, child := range c.children {
		if i > 0 {
			used += c.gap
		}
		if child == c.flex {
			continue
		}
		heights[i] = child.Measure(runtime.Constraints{MaxWidth: bounds.Width}).Height
		used += heights[i]
	}
	for i, child := range c.children {
		if child == c.flex {
			heights[i] = max(bounds.Height-used, 0)
		}
	}
	y := bounds.Y
	for i, child := range c.children {
		if i > 0 {
			y += c.gap
		}
		h := max(min(heights[i], bounds.Y+bounds.Height-y), 0)
		child.Layout(runtime.Rect{X: bounds.X, Y: y, Width: bounds.Width, Height: h})
		y += h
	}
}

// Render draws the children and blanks the rows between them.
func (c *Column) Render(ctx runtime.RenderContext) {
	y := c.bounds.Y
	for _, child := range c.children {
		bounds := c.bounds
		if bp, ok := child.(runtime.BoundsProvider); ok {
			bounds = bp.Bounds()
		}
		if bounds.Empty() {
			continue
		}
		c.blank(ctx, y, bounds.Y)
		child.Render(ctx.Sub(bounds))
		y = bounds.Y + bounds.Height
	}
	c.blank(ctx, y, c.bounds.Y+c.bounds.Height)
}

func (c *Column) blank(ctx runtime.RenderContext, from, to int) {
	if to > from {
		ctx.Sub(runtime.Rect{X: c.bounds.X, Y: from, Width: c.bounds.Width, Height: to - from}).Clear(backend.DefaultStyle())
	}
}

// HandleMessage offers msg to the children in order.
func (c *Column) HandleMessage(msg runtime.Message) runtime.HandleResult {
	for _, child := range c.children {
		if result := child.HandleMessage(msg); result.Handled {
			return result
		}
	}
	return runtime.Unhandled()
}
