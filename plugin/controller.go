package plugin

import (
	"context"
	"errors"
	"sync"

	"github.com/odvcencio/unstable-ui/state"
)

// ErrNotAttached is reported when an operation targets an element without an instance.
var ErrNotAttached = errors.New("element has no plugin instance")

// Done finishes one initialization.
// A non-nil fn runs on the controller scheduler before the ready or error
// callback; its error is reported through OnError. Only the first call counts.
type Done func(fn func() error)

// Initializer performs plugin-specific startup for an instance.
type Initializer interface {
	Initialize(ctx context.Context, inst *Instance, done Done)
}

// InitializerFunc adapts a function into an Initializer.
type InitializerFunc func(ctx context.Context, inst *Instance, done Done)

// Initialize calls f.
func (f InitializerFunc) Initialize(ctx context.Context, inst *Instance, done Done) {
	f(ctx, inst, done)
}

// Config configures a Controller.
type Config struct {
	// Name identifies the plugin in diagnostics and snapshots.
	Name        string
	Initializer Initializer
	// Scheduler runs completions of asynchronous initializers.
	// If nil, completions run in the goroutine that finished the work.
	Scheduler   state.Scheduler
	Diagnostics Diagnostics
	// Defaults are merged under the options passed to Configure.
	// Zero fields of the passed options mean unset, so an explicit Value of
	// 0 cannot override a non-zero default Value.
	Defaults Options
}

// Controller attaches instances to elements and dispatches operations.
type Controller struct {
	name      string
	registry  *Registry
	init      Initializer
	scheduler state.Scheduler
	diag      Diagnostics
	defaults  Options
}

// NewController creates a controller.
func NewController(cfg Config) *Controller {
	c := &Controller{
		name:      cfg.Name,
		registry:  NewRegistry(cfg.Name),
		init:      cfg.Initializer,
		scheduler: cfg.Scheduler,
		diag:      cfg.Diagnostics,
	}
	if c.diag == nil {
		c.diag = LogDiagnostics
	}
	c.defaults = Options{
		OnReady: func(inst *Instance) {
			c.diag("%s: default ready callback for %s", c.name, inst.ID)
		},
		OnError: func(inst *Instance, err error) {
			c.diag("%s: initialize %s failed: %v", c.name, inst.ID, err)
		},
	}.Merge(cfg.Defaults)
	return c
}

// Name returns the plugin name.
func (c *Controller) Name() string {
	if c == nil {
		return ""
	}
	return c.name
}

// Registry returns the instance registry.
func (c *Controller) Registry() *Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// SetScheduler replaces the completion scheduler.
func (c *Controller) SetScheduler(scheduler state.Scheduler) {
	if c == nil {
		return
	}
	c.scheduler = scheduler
}

// Attach returns the instance for el, creating it on first use.
func (c *Controller) Attach(el Element, opts Options) *Instance {
	if c == nil || el == nil {
		return nil
	}
	inst, _ := c.registry.Attach(el, c.defaults.Merge(opts))
	return inst
}

// Configure attaches el and initializes it.
// The returned instance is ready once OnReady runs.
func (c *Controller) Configure(ctx context.Context, el Element, opts Options) *Instance {
	inst := c.Attach(el, opts)
	if inst == nil {
		return nil
	}
	c.Initialize(ctx, inst)
	return inst
}

// Initialize runs the initializer for inst, then its ready callback once.
func (c *Controller) Initialize(ctx context.Context, inst *Instance) {
	if c == nil || inst == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	inst.mu.Lock()
	inst.inits++
	inst.mu.Unlock()

	var once sync.Once
	done := func(fn func() error) {
		once.Do(func() {
			if fn == nil {
				c.finish(inst, nil)
				return
			}
			c.schedule(func() {
				if !c.current(inst) {
					return
				}
				c.finish(inst, fn())
			})
		})
	}
	if c.init == nil {
		done(nil)
		return
	}
	c.init.Initialize(ctx, inst, done)
}

func (c *Controller) finish(inst *Instance, err error) {
	opts := inst.Options()
	if err != nil {
		if opts.OnError != nil {
			opts.OnError(inst, err)
		}
		return
	}
	if opts.OnReady != nil {
		opts.OnReady(inst)
	}
}

// current reports whether inst is still the instance attached to its
// element. Completions for detached instances are dropped.
func (c *Controller) current(inst *Instance) bool {
	attached, ok := c.registry.Lookup(inst.Element())
	return ok && attached == inst
}

func (c *Controller) schedule(fn func()) {
	if c.scheduler == nil {
		fn()
		return
	}
	c.scheduler.Schedule(fn)
}

// Invoke runs op on the instance attached to el.
// An unattached element yields an undefined result and a diagnostic.
func (c *Controller) Invoke(el Element, op Operation) Result {
	if c == nil || op == nil {
		return Result{}
	}
	inst, ok := c.registry.Lookup(el)
	if !ok {
		c.diag("%s: %s: %v", c.name, op.Name(), ErrNotAttached)
		return Result{}
	}
	return op.apply(inst)
}

// InvokeName parses name and args and invokes the operation.
// Unknown names yield an undefined result and a diagnostic.
func (c *Controller) InvokeName(el Element, name string, args ...string) Result {
	if c == nil {
		return Result{}
	}
	op, err := ParseOperation(name, args...)
	if err != nil {
		c.diag("%s: %v", c.name, err)
		return Result{}
	}
	return c.Invoke(el, op)
}

// Detach removes the instance for el.
func (c *Controller) Detach(el Element) bool {
	if c == nil {
		return false
	}
	return c.registry.Detach(el)
}

// Selection is an ordered group of elements handled together.
type Selection []Element

// ConfigureAll configures every element and returns the selection.
func (c *Controller) ConfigureAll(ctx context.Context, sel Selection, opts Options) Selection {
	for _, el := range sel {
		c.Configure(ctx, el, opts)
	}
	return sel
}

// InvokeAll invokes op on every element and returns the last defined result.
func (c *Controller) InvokeAll(sel Selection, op Operation) Result {
	var last Result
	for _, el := range sel {
		if res := c.Invoke(el, op); res.Defined {
			last = res
		}
	}
	return last
}
