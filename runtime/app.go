package runtime

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/odvcencio/unstable-ui/backend"
	"github.com/odvcencio/unstable-ui/state"
	"github.com/odvcencio/unstable-ui/terminal"
)

// ErrNoBackend is returned by Run when no backend is configured.
var ErrNoBackend = errors.New("backend is required")

// UpdateFunc handles a message and returns true if a render is needed.
type UpdateFunc func(app *App, msg Message) bool

// CommandHandler handles commands the screen does not consume.
// Return true if the command requires a render.
type CommandHandler func(cmd Command) bool

// KeyHandler sees key presses before the widget tree.
type KeyHandler interface {
	HandleKey(app *App, msg KeyMsg, focused Widget) bool
}

// KeyHandlerFunc adapts a function into a KeyHandler.
type KeyHandlerFunc func(app *App, msg KeyMsg, focused Widget) bool

// HandleKey calls f.
func (f KeyHandlerFunc) HandleKey(app *App, msg KeyMsg, focused Widget) bool {
	return f(app, msg, focused)
}

// AppConfig configures an App.
type AppConfig struct {
	Backend        backend.Backend
	Root           Widget
	Update         UpdateFunc
	CommandHandler CommandHandler
	KeyHandler     KeyHandler
	MessageBuffer  int
	TickRate       time.Duration
	StateQueue     *state.Queue
	FlushPolicy    QueueFlushPolicy
}

// App runs a widget tree against a terminal backend.
// Widgets are only touched from the goroutine running Run; background work
// reaches them through StateScheduler or Post.
type App struct {
	backend        backend.Backend
	screen         *Screen
	root           Widget
	update         UpdateFunc
	commandHandler CommandHandler
	keyHandler     KeyHandler
	messages       chan Message
	tickRate       time.Duration
	stateQueue     *state.Queue
	queueScheduler *QueueScheduler
	flushPolicy    QueueFlushPolicy
	invalidator    *Invalidator

	taskCtx        context.Context
	taskCancel     context.CancelFunc
	pendingMu      sync.Mutex
	pendingEffects []Effect

	running bool
	dirty   bool
}

// NewApp creates an App from cfg.
func NewApp(cfg AppConfig) *App {
	bufferSize := cfg.MessageBuffer
	if bufferSize <= 0 {
		bufferSize = 128
	}
	queue := cfg.StateQueue
	if queue == nil {
		queue = state.NewQueue()
	}
	app := &App{
		backend:        cfg.Backend,
		root:           cfg.Root,
		update:         cfg.Update,
		commandHandler: cfg.CommandHandler,
		keyHandler:     cfg.KeyHandler,
		messages:       make(chan Message, bufferSize),
		tickRate:       cfg.TickRate,
		stateQueue:     queue,
		flushPolicy:    cfg.FlushPolicy,
	}
	app.queueScheduler = NewQueueScheduler(queue, app.tryPost)
	app.invalidator = NewInvalidator(app.tryPost)
	return app
}

// Screen returns the active screen, if Run has started.
func (a *App) Screen() *Screen {
	return a.screen
}

// StateQueue returns the queue flushed by the loop.
func (a *App) StateQueue() *state.Queue {
	if a == nil {
		return nil
	}
	return a.stateQueue
}

// StateScheduler returns a scheduler whose callbacks run on the app loop.
func (a *App) StateScheduler() state.Scheduler {
	if a == nil || a.queueScheduler == nil {
		return nil
	}
	return a.queueScheduler
}

// InvalidateScheduler returns a scheduler that runs callbacks inline and
// then requests a render.
func (a *App) InvalidateScheduler() state.Scheduler {
	if a == nil || a.invalidator == nil {
		return nil
	}
	return a.invalidator
}

// Invalidate requests a render pass.
func (a *App) Invalidate() {
	if a == nil || a.invalidator == nil {
		return
	}
	a.invalidator.Invalidate()
}

// Spawn starts an effect with the app task context.
// Effects spawned before Run wait until it starts.
func (a *App) Spawn(effect Effect) {
	if a == nil || effect.Run == nil {
		return
	}
	a.pendingMu.Lock()
	if a.taskCtx == nil {
		a.pendingEffects = append(a.pendingEffects, effect)
		a.pendingMu.Unlock()
		return
	}
	ctx := a.taskCtx
	a.pendingMu.Unlock()
	go effect.Run(ctx, a.tryPost)
}

// After posts msg after delay.
func (a *App) After(delay time.Duration, msg Message) {
	a.Spawn(After(delay, msg))
}

// Every posts fn's message on each interval.
func (a *App) Every(interval time.Duration, fn func(time.Time) Message) {
	a.Spawn(Every(interval, fn))
}

// SetRoot swaps the root widget.
func (a *App) SetRoot(root Widget) {
	a.root = root
	if a.screen != nil {
		a.screen.SetRoot(root)
		a.dirty = true
	}
}

// Post sends msg to the loop, dropping it when the queue is full.
func (a *App) Post(msg Message) {
	_ = a.tryPost(msg)
}

// TryPost sends msg to the loop without blocking.
func (a *App) TryPost(msg Message) bool {
	return a.tryPost(msg)
}

func (a *App) tryPost(msg Message) bool {
	if a == nil || a.messages == nil || msg == nil {
		return false
	}
	select {
	case a.messages <- msg:
		return true
	default:
		return false
	}
}

// Run drives the loop until Quit or ctx ends.
func (a *App) Run(ctx context.Context) error {
	if a.backend == nil {
		return ErrNoBackend
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := a.backend.Init(); err != nil {
		return fmt.Errorf("init backend: %w", err)
	}
	defer a.backend.Fini()

	a.backend.HideCursor()
	w, h := a.backend.Size()
	a.start(ctx, w, h)
	defer a.stop()

	go a.pollEvents()

	var ticks <-chan time.Time
	if a.tickRate > 0 {
		ticker := time.NewTicker(a.tickRate)
		defer ticker.Stop()
		ticks = ticker.C
	}

	for a.running {
		select {
		case <-ctx.Done():
			a.running = false
		case msg := <-a.messages:
			a.step(msg)
		case now := <-ticks:
			a.step(TickMsg{Time: now})
		}
		if a.running && a.dirty {
			a.render()
			a.dirty = false
		}
	}
	return ctx.Err()
}

func (a *App) start(ctx context.Context, w, h int) {
	a.pendingMu.Lock()
	a.taskCtx, a.taskCancel = context.WithCancel(ctx)
	effects := a.pendingEffects
	a.pendingEffects = nil
	a.pendingMu.Unlock()

	a.screen = NewScreen(w, h)
	a.screen.SetServices(a.Services())
	if a.root != nil {
		a.screen.SetRoot(a.root)
	}
	if a.update == nil {
		a.update = DefaultUpdate
	}
	a.running = true
	a.dirty = true
	for _, effect := range effects {
		go effect.Run(a.taskCtx, a.tryPost)
	}
}

func (a *App) stop() {
	a.pendingMu.Lock()
	cancel := a.taskCancel
	a.taskCtx, a.taskCancel = nil, nil
	a.pendingMu.Unlock()
	if cancel != nil {
		cancel()
	}
	a.running = false
}

// step runs one message through update and the state queue.
func (a *App) step(msg Message) {
	if a.update(a, msg) {
		a.dirty = true
	}
	if !a.running {
		return
	}
	if a.flushQueueIfNeeded(msg) {
		a.dirty = true
	}
	if _, ok := msg.(InvalidateMsg); ok {
		a.invalidator.resetPending()
	}
}

// DefaultUpdate routes input to the widget tree and handles resize.
// An unhandled Ctrl+C quits.
func DefaultUpdate(app *App, msg Message) bool {
	if app == nil || app.screen == nil {
		return false
	}
	switch m := msg.(type) {
	case ResizeMsg:
		app.screen.Resize(m.Width, m.Height)
		return true
	case KeyMsg:
		if app.keyHandler != nil && app.keyHandler.HandleKey(app, m, app.screen.Focused()) {
			return true
		}
		if app.dispatchMessage(msg) {
			return true
		}
		if m.Key == terminal.KeyCtrlC {
			app.handleCommand(Quit{})
		}
		return false
	case QueueFlushMsg, TickMsg:
		return app.dispatchMessage(msg)
	case InvalidateMsg:
		return true
	case CommandMsg:
		if m.Command == nil {
			return false
		}
		return app.ExecuteCommand(m.Command)
	default:
		return app.dispatchMessage(msg)
	}
}

func (a *App) dispatchMessage(msg Message) bool {
	if a == nil || a.screen == nil {
		return false
	}
	result := a.screen.HandleMessage(msg)
	dirty := result.Handled
	for _, cmd := range result.Commands {
		if a.handleCommand(cmd) {
			dirty = true
		}
	}
	return dirty
}

func (a *App) handleCommand(cmd Command) bool {
	switch c := cmd.(type) {
	case Quit:
		a.running = false
		return false
	case Refresh:
		if a.screen != nil {
			a.screen.Buffer().MarkAllDirty()
		}
		return true
	case SendMsg:
		if c.Message != nil {
			a.Post(c.Message)
		}
		return false
	case Effect:
		a.Spawn(c)
		return false
	case FocusNext, FocusPrev, PushOverlay, PopOverlay:
		return true
	default:
		if a.commandHandler != nil {
			return a.commandHandler(cmd)
		}
		return false
	}
}

// ExecuteCommand runs cmd as if a widget had emitted it.
func (a *App) ExecuteCommand(cmd Command) bool {
	if a == nil {
		return false
	}
	if a.screen != nil {
		a.screen.handleCommand(cmd)
	}
	return a.handleCommand(cmd)
}

// pollEvents forwards backend events until PollEvent returns nil after Fini.
func (a *App) pollEvents() {
	for {
		switch e := a.backend.PollEvent().(type) {
		case nil:
			return
		case terminal.KeyEvent:
			a.Post(KeyMsg{Key: e.Key, Rune: e.Rune, Alt: e.Alt, Ctrl: e.Ctrl, Shift: e.Shift})
		case terminal.ResizeEvent:
			a.Post(ResizeMsg{Width: e.Width, Height: e.Height})
		case terminal.PasteEvent:
			a.Post(PasteMsg{Text: e.Text})
		}
	}
}

// render draws the screen and flushes dirty spans to the backend.
func (a *App) render() {
	a.screen.Render()
	buf := a.screen.Buffer()
	if buf.IsDirty() {
		writer, rows := a.backend.(backend.RowWriter)
		buf.ForEachDirtySpan(func(y, startX, endX int) {
			cells := buf.Row(y)[startX:endX]
			if rows {
				writer.SetRow(y, startX, cells)
				return
			}
			for i, cell := range cells {
				if cell.Rune != 0 {
					a.backend.SetContent(startX+i, y, cell.Rune, nil, cell.Style)
				}
			}
		})
		buf.ClearDirty()
	}
	a.backend.Show()
}

func (a *App) flushQueueIfNeeded(msg Message) bool {
	if a.stateQueue == nil || !shouldFlushQueue(a.flushPolicy, msg) {
		return false
	}
	a.queueScheduler.resetPending()
	return a.stateQueue.Flush() > 0
}
