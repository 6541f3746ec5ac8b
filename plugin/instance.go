package plugin

import (
	"sort"
	"strconv"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/odvcencio/unstable-ui/state"
)

// Options configures an instance. Zero fields fall back to the defaults.
type Options struct {
	Value    int
	OnReady  func(*Instance)
	OnError  func(*Instance, error)
	Wordlist string
}

// Merge returns o with every non-zero field of over applied. A zero field
// in over keeps the value of o.
func (o Options) Merge(over Options) Options {
	if over.Value != 0 {
		o.Value = over.Value
	}
	if over.OnReady != nil {
		o.OnReady = over.OnReady
	}
	if over.OnError != nil {
		o.OnError = over.OnError
	}
	if over.Wordlist != "" {
		o.Wordlist = over.Wordlist
	}
	return o
}

// Instance is the state attached to one element.
type Instance struct {
	ID ulid.ULID

	element Element
	options Options
	value   *state.Signal[int]
	subs    state.Subscriptions

	mu      sync.Mutex
	display Element
	square  *state.Computed[int]
	inits   int
}

func newInstance(el Element, opts Options) *Instance {
	value := state.NewSignal(0)
	value.SetEqualFunc(state.EqualComparable[int])
	inst := &Instance{
		ID:      ulid.Make(),
		element: el,
		options: opts,
		value:   value,
	}
	inst.subs.Add(el.On(EventChange, inst.syncFromElement))
	return inst
}

// Element returns the attached element.
func (i *Instance) Element() Element {
	if i == nil {
		return nil
	}
	return i.element
}

// Options returns the merged options.
func (i *Instance) Options() Options {
	if i == nil {
		return Options{}
	}
	return i.options
}

// Value returns the current value.
func (i *Instance) Value() int {
	if i == nil {
		return 0
	}
	return i.value.Get()
}

// ValueSignal exposes the current value for subscribers.
func (i *Instance) ValueSignal() state.Readable[int] {
	if i == nil {
		return nil
	}
	return i.value
}

// Display returns the secondary display element, if one was inserted.
func (i *Instance) Display() Element {
	if i == nil {
		return nil
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.display
}

// Initializations returns how many initializations have started.
func (i *Instance) Initializations() int {
	if i == nil {
		return 0
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.inits
}

// write stores n, shows it on the element and triggers EventChange.
func (i *Instance) write(n int) {
	if n < 0 {
		n = 0
	}
	i.value.Set(n)
	i.element.SetValue(strconv.Itoa(n))
	i.element.Trigger(EventChange)
}

func (i *Instance) syncFromElement() {
	n, ok := ParseInt(i.element.Value())
	if !ok {
		return
	}
	if n < 0 {
		n = 0
	}
	i.value.Set(n)
}

func (i *Instance) release() {
	i.subs.Clear()
	i.mu.Lock()
	square := i.square
	i.square = nil
	i.mu.Unlock()
	square.Stop()
}

// InstanceInfo is a serializable view of an instance.
type InstanceInfo struct {
	ID              string `json:"id"`
	Plugin          string `json:"plugin"`
	Value           int    `json:"value"`
	Wordlist        string `json:"wordlist,omitempty"`
	Initializations int    `json:"initializations"`
	HasDisplay      bool   `json:"has_display,omitempty"`
	Content         string `json:"content,omitempty"`
}

// Registry maps elements to their instances for one plugin.
type Registry struct {
	name      string
	mu        sync.Mutex
	instances map[Element]*Instance
}

// NewRegistry creates an empty registry.
func NewRegistry(name string) *Registry {
	return &Registry{name: name, instances: make(map[Element]*Instance)}
}

// Name returns the plugin name.
func (r *Registry) Name() string {
	if r == nil {
		return ""
	}
	return r.name
}

// Attach returns the instance for el, creating it with opts on first use.
// Options passed for an element that is already attached are ignored.
func (r *Registry) Attach(el Element, opts Options) (*Instance, bool) {
	if r == nil || el == nil {
		return nil, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if inst, ok := r.instances[el]; ok {
		return inst, false
	}
	if r.instances == nil {
		r.instances = make(map[Element]*Instance)
	}
	inst := newInstance(el, opts)
	r.instances[el] = inst
	return inst, true
}

// Lookup returns the instance for el.
func (r *Registry) Lookup(el Element) (*Instance, bool) {
	if r == nil || el == nil {
		return nil, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	inst, ok := r.instances[el]
	return inst, ok
}

// Detach removes the instance for el and releases its subscriptions.
func (r *Registry) Detach(el Element) bool {
	if r == nil || el == nil {
		return false
	}
	r.mu.Lock()
	inst, ok := r.instances[el]
	delete(r.instances, el)
	r.mu.Unlock()
	if ok {
		inst.release()
	}
	return ok
}

// Len returns the number of attached elements.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.instances)
}

// Snapshot describes every instance, ordered by ID.
func (r *Registry) Snapshot() []InstanceInfo {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	instances := make([]*Instance, 0, len(r.instances))
	for _, inst := range r.instances {
		instances = append(instances, inst)
	}
	r.mu.Unlock()

	sort.Slice(instances, func(a, b int) bool {
		return instances[a].ID.Compare(instances[b].ID) < 0
	})
	infos := make([]InstanceInfo, 0, len(instances))
	for _, inst := range instances {
		infos = append(infos, InstanceInfo{
			ID:              inst.ID.String(),
			Plugin:          r.name,
			Value:           inst.Value(),
			Wordlist:        inst.options.Wordlist,
			Initializations: inst.Initializations(),
			HasDisplay:      inst.Display() != nil,
			Content:         inst.element.Content(),
		})
	}
	return infos
}
