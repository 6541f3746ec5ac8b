package plugin

import (
	"context"
	"strconv"

	"github.com/odvcencio/unstable-ui/state"
)

// SquareName is the name of the square plugin and its display element.
const SquareName = "square"

// Square shows the square of the element value in a read-only display
// inserted after the element. The display is inserted once per instance.
type Square struct{}

// NewSquare creates a controller running the Square initializer.
func NewSquare(cfg Config) *Controller {
	if cfg.Name == "" {
		cfg.Name = SquareName
	}
	cfg.Initializer = Square{}
	return NewController(cfg)
}

// Initialize inserts the display if needed and writes the configured value.
func (Square) Initialize(ctx context.Context, inst *Instance, done Done) {
	inst.mu.Lock()
	if inst.display == nil {
		display := inst.element.InsertAfter(SquareName)
		square := state.NewComputed(func() int {
			v := inst.value.Get()
			return v * v
		}, inst.value)
		square.SetEqualFunc(state.EqualComparable[int])
		inst.display = display
		inst.square = square
		inst.subs.Add(square.Subscribe(func() {
			display.SetValue(strconv.Itoa(square.Get()))
		}))
		display.SetValue(strconv.Itoa(square.Get()))
	}
	inst.mu.Unlock()

	inst.write(inst.Options().Value)
	done(nil)
}
