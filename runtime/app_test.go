package runtime

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/odvcencio/unstable-ui/backend"
	"github.com/odvcencio/unstable-ui/terminal"
)

type fakeBackend struct {
	mu     sync.Mutex
	width  int
	height int
	cells  map[[2]int]rune
	rows   int
	shows  int
	events chan terminal.Event
	done   chan struct{}
	once   sync.Once
}

func newFakeBackend(w, h int) *fakeBackend {
	return &fakeBackend{
		width:  w,
		height: h,
		cells:  make(map[[2]int]rune),
		events: make(chan terminal.Event, 8),
		done:   make(chan struct{}),
	}
}

func (b *fakeBackend) Init() error { return nil }
func (b *fakeBackend) Fini()       { b.once.Do(func() { close(b.done) }) }
func (b *fakeBackend) Size() (int, int) {
	return b.width, b.height
}
func (b *fakeBackend) HideCursor() {}
func (b *fakeBackend) Show() {
	b.mu.Lock()
	b.shows++
	b.mu.Unlock()
}

func (b *fakeBackend) SetContent(x, y int, mainc rune, combc []rune, style backend.Style) {
	b.mu.Lock()
	b.cells[[2]int{x, y}] = mainc
	b.mu.Unlock()
}

func (b *fakeBackend) SetRow(y int, startX int, cells []backend.Cell) {
	b.mu.Lock()
	b.rows++
	b.mu.Unlock()
	for i, cell := range cells {
		b.SetContent(startX+i, y, cell.Rune, nil, cell.Style)
	}
}

func (b *fakeBackend) PollEvent() terminal.Event {
	select {
	case ev := <-b.events:
		return ev
	case <-b.done:
		return nil
	}
}

func (b *fakeBackend) text(y, n int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]rune, 0, n)
	for x := 0; x < n; x++ {
		out = append(out, b.cells[[2]int{x, y}])
	}
	return string(out)
}

type textWidget struct {
	bounds Rect
	text   string
	keys   []rune
}

func (w *textWidget) Measure(c Constraints) Size { return c.Constrain(Size{Width: len(w.text), Height: 1}) }
func (w *textWidget) Layout(bounds Rect)         { w.bounds = bounds }
func (w *textWidget) Render(ctx RenderContext) {
	ctx.Buffer.SetString(w.bounds.X, w.bounds.Y, w.text, backend.DefaultStyle())
}

func (w *textWidget) HandleMessage(msg Message) HandleResult {
	key, ok := msg.(KeyMsg)
	if !ok || key.Key != terminal.KeyRune {
		return Unhandled()
	}
	w.keys = append(w.keys, key.Rune)
	if key.Rune == 'q' {
		return WithCommand(Quit{})
	}
	return Handled()
}

func TestApp_RunRendersAndQuits(t *testing.T) {
	be := newFakeBackend(8, 2)
	root := &textWidget{text: "ready"}
	app := NewApp(AppConfig{Backend: be, Root: root})

	scheduled := make(chan struct{})
	app.Spawn(Effect{Run: func(ctx context.Context, post PostFunc) {
		app.StateScheduler().Schedule(func() {
			root.text = "loaded"
			close(scheduled)
		})
	}})

	errc := make(chan error, 1)
	go func() { errc <- app.Run(context.Background()) }()

	select {
	case <-scheduled:
	case <-time.After(time.Second):
		t.Fatal("scheduled callback never ran on the loop")
	}
	be.events <- terminal.KeyEvent{Key: terminal.KeyRune, Rune: 'q'}

	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("expected clean exit, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("app did not quit")
	}
	if got := be.text(0, 6); got != "loaded" {
		t.Fatalf("expected rendered text loaded, got %q", got)
	}
	if be.rows == 0 {
		t.Fatalf("expected row writer to be used")
	}
}

func TestApp_RunRequiresBackend(t *testing.T) {
	if err := NewApp(AppConfig{}).Run(context.Background()); err != ErrNoBackend {
		t.Fatalf("expected ErrNoBackend, got %v", err)
	}
}

func TestApp_RunStopsOnContextCancel(t *testing.T) {
	be := newFakeBackend(4, 1)
	app := NewApp(AppConfig{Backend: be, Root: &textWidget{}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := app.Run(ctx); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestApp_HandleCommand_SendMsg(t *testing.T) {
	app := NewApp(AppConfig{})
	msg := ResizeMsg{Width: 10, Height: 5}

	if app.handleCommand(SendMsg{Message: msg}) {
		t.Fatalf("expected SendMsg to not force render")
	}
	select {
	case got := <-app.messages:
		if got != msg {
			t.Fatalf("unexpected message: %#v", got)
		}
	default:
		t.Fatal("expected message to be posted")
	}
}

func TestApp_SpawnWaitsForStart(t *testing.T) {
	app := NewApp(AppConfig{})
	ran := make(chan struct{}, 1)

	app.Spawn(Effect{Run: func(ctx context.Context, post PostFunc) {
		ran <- struct{}{}
	}})
	select {
	case <-ran:
		t.Fatal("expected pending effect to wait for start")
	default:
	}

	app.start(context.Background(), 1, 1)
	defer app.stop()
	select {
	case <-ran:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("expected pending effect to run")
	}
}

func TestApp_TryPostFull(t *testing.T) {
	app := NewApp(AppConfig{MessageBuffer: 1})
	if !app.TryPost(InvalidateMsg{}) {
		t.Fatalf("expected first post to fit")
	}
	if app.TryPost(InvalidateMsg{}) {
		t.Fatalf("expected second post to be dropped")
	}
	if app.TryPost(nil) {
		t.Fatalf("expected nil message to be rejected")
	}
}
