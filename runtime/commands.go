package runtime

import "context"

// Command is an intent emitted by a widget and handled by the screen or app.
type Command interface {
	Command()
}

// PostFunc sends a message into the app.
// It returns false when the message queue is full.
type PostFunc func(Message) bool

// Quit stops the app.
type Quit struct{}

func (Quit) Command() {}

// Refresh forces a full redraw.
type Refresh struct{}

func (Refresh) Command() {}

// SendMsg posts Message into the app loop.
type SendMsg struct {
	Message Message
}

func (SendMsg) Command() {}

// Send wraps msg in a SendMsg command.
func Send(msg Message) Command {
	return SendMsg{Message: msg}
}

// Submit reports text entered by the user, such as a command line.
type Submit struct {
	Text string
}

func (Submit) Command() {}

// Cancel reports an abandoned edit.
type Cancel struct{}

func (Cancel) Command() {}

// Effect runs work in a background goroutine.
// Run must honor ctx and report back only through post.
type Effect struct {
	Run func(ctx context.Context, post PostFunc)
}

func (Effect) Command() {}

// FocusNext moves focus to the next focusable widget.
type FocusNext struct{}

func (FocusNext) Command() {}

// FocusPrev moves focus to the previous focusable widget.
type FocusPrev struct{}

func (FocusPrev) Command() {}

// PushOverlay pushes Widget as a new layer.
type PushOverlay struct {
	Widget Widget
	Modal  bool
}

func (PushOverlay) Command() {}

// PopOverlay dismisses the top layer.
type PopOverlay struct{}

func (PopOverlay) Command() {}
