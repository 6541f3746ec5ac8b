package runtime

import "testing"

type treeTestWidget struct {
	children  []Widget
	order     *[]string
	name      string
	bound     int
	unbound   int
	mounted   int
	unmounted int
}

func (w *treeTestWidget) Measure(c Constraints) Size { return Size{} }
func (w *treeTestWidget) Layout(bounds Rect)         {}
func (w *treeTestWidget) Render(ctx RenderContext)   {}
func (w *treeTestWidget) HandleMessage(msg Message) HandleResult {
	return Unhandled()
}
func (w *treeTestWidget) ChildWidgets() []Widget { return w.children }
func (w *treeTestWidget) Bind(services Services) { w.bound++ }
func (w *treeTestWidget) Unbind()                { w.unbound++ }
func (w *treeTestWidget) Mount() {
	w.mounted++
	w.record("mount")
}
func (w *treeTestWidget) Unmount() {
	w.unmounted++
	w.record("unmount")
}

func (w *treeTestWidget) record(event string) {
	if w.order != nil {
		*w.order = append(*w.order, event+" "+w.name)
	}
}

func TestScreen_BindRoot(t *testing.T) {
	child := &treeTestWidget{}
	root := &treeTestWidget{children: []Widget{child}}
	screen := NewScreen(10, 5)
	app := NewApp(AppConfig{})
	screen.SetServices(app.Services())

	screen.SetRoot(root)
	if root.bound != 1 || child.bound != 1 {
		t.Fatalf("expected bind calls root=1 child=1, got root=%d child=%d", root.bound, child.bound)
	}

	screen.SetRoot(nil)
	if root.unbound != 1 || child.unbound != 1 {
		t.Fatalf("expected unbind calls root=1 child=1, got root=%d child=%d", root.unbound, child.unbound)
	}
}

func TestScreen_NoServicesSkipsBind(t *testing.T) {
	root := &treeTestWidget{}
	screen := NewScreen(10, 5)

	screen.SetRoot(root)
	if root.bound != 0 {
		t.Fatalf("expected no bind without services, got %d", root.bound)
	}
	if root.mounted != 1 {
		t.Fatalf("expected mount without services, got %d", root.mounted)
	}
}

func TestScreen_LifecycleOrder(t *testing.T) {
	var order []string
	child := &treeTestWidget{name: "field", order: &order}
	root := &treeTestWidget{name: "column", order: &order, children: []Widget{child}}
	screen := NewScreen(10, 5)

	screen.SetRoot(root)
	screen.SetRoot(nil)

	want := []string{"mount column", "mount field", "unmount field", "unmount column"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

func TestScreen_LayerLifecycle(t *testing.T) {
	root := &treeTestWidget{}
	overlay := &treeTestWidget{}
	screen := NewScreen(10, 5)
	app := NewApp(AppConfig{})
	screen.SetServices(app.Services())

	screen.SetRoot(root)
	screen.PushLayer(overlay, true)
	if overlay.bound != 1 || overlay.mounted != 1 {
		t.Fatalf("expected overlay bound and mounted once, got %d/%d", overlay.bound, overlay.mounted)
	}

	if !screen.PopLayer() {
		t.Fatalf("expected PopLayer to succeed")
	}
	if overlay.unbound != 1 || overlay.unmounted != 1 {
		t.Fatalf("expected overlay released once, got %d/%d", overlay.unbound, overlay.unmounted)
	}
	if root.unmounted != 0 || root.unbound != 0 {
		t.Fatalf("expected root to stay mounted")
	}
}
