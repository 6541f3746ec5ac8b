package runtime

import (
	"time"

	"github.com/odvcencio/unstable-ui/terminal"
)

// Message is an event flowing into the app loop from the terminal, timers
// or background work.
type Message interface {
	isMessage()
}

// KeyMsg is a key press.
type KeyMsg struct {
	Key   terminal.Key
	Rune  rune
	Alt   bool
	Ctrl  bool
	Shift bool
}

func (KeyMsg) isMessage() {}

// ResizeMsg reports a new terminal size.
type ResizeMsg struct {
	Width  int
	Height int
}

func (ResizeMsg) isMessage() {}

// PasteMsg carries bracketed-paste text.
type PasteMsg struct {
	Text string
}

func (PasteMsg) isMessage() {}

// TickMsg is sent at the configured tick rate.
type TickMsg struct {
	Time time.Time
}

func (TickMsg) isMessage() {}

// QueueFlushMsg asks the loop to flush the state queue.
type QueueFlushMsg struct{}

func (QueueFlushMsg) isMessage() {}

// InvalidateMsg asks for a render pass.
type InvalidateMsg struct{}

func (InvalidateMsg) isMessage() {}

// StatusMsg carries a line for the status bar, such as a plugin diagnostic.
type StatusMsg struct {
	Text string
}

func (StatusMsg) isMessage() {}

// CommandMsg runs Command on the loop, for background work that needs to
// push an overlay or quit.
type CommandMsg struct {
	Command Command
}

func (CommandMsg) isMessage() {}
