package runtime

// Bindable widgets receive app services when they join a screen.
type Bindable interface {
	Bind(services Services)
}

// Unbindable widgets release app services when they leave a screen.
type Unbindable interface {
	Unbind()
}

// Lifecycle widgets are told when they are mounted and unmounted.
type Lifecycle interface {
	Mount()
	Unmount()
}

// Walk visits root and its descendants, parents first.
func Walk(root Widget, fn func(Widget)) {
	if root == nil {
		return
	}
	fn(root)
	if children, ok := root.(ChildProvider); ok {
		for _, child := range children.ChildWidgets() {
			Walk(child, fn)
		}
	}
}

// walkPost visits descendants before their parents.
func walkPost(root Widget, fn func(Widget)) {
	if root == nil {
		return
	}
	if children, ok := root.(ChildProvider); ok {
		for _, child := range children.ChildWidgets() {
			walkPost(child, fn)
		}
	}
	fn(root)
}

// BindTree binds every Bindable widget under root.
// Widgets inserted later are bound by their container.
func BindTree(root Widget, services Services) {
	if services.isZero() {
		return
	}
	Walk(root, func(w Widget) {
		if b, ok := w.(Bindable); ok {
			b.Bind(services)
		}
	})
}

// UnbindTree unbinds every Unbindable widget under root, children first.
func UnbindTree(root Widget) {
	walkPost(root, func(w Widget) {
		if u, ok := w.(Unbindable); ok {
			u.Unbind()
		}
	})
}

// MountTree mounts every Lifecycle widget under root, parents first.
func MountTree(root Widget) {
	Walk(root, func(w Widget) {
		if m, ok := w.(Lifecycle); ok {
			m.Mount()
		}
	})
}

// UnmountTree unmounts every Lifecycle widget under root, children first.
func UnmountTree(root Widget) {
	walkPost(root, func(w Widget) {
		if m, ok := w.(Lifecycle); ok {
			m.Unmount()
		}
	})
}
