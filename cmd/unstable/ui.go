package main

import (
	"context"
	"fmt"
	"time"

	"github.com/odvcencio/unstable-ui/backend"
	backendtcell "github.com/odvcencio/unstable-ui/backend/tcell"
	"github.com/odvcencio/unstable-ui/markup"
	"github.com/odvcencio/unstable-ui/plugin"
	"github.com/odvcencio/unstable-ui/runtime"
	"github.com/odvcencio/unstable-ui/state"
	"github.com/odvcencio/unstable-ui/widgets"
	"github.com/odvcencio/unstable-ui/wordlist"
)

const helpText = "tab focus | r source | words, reload, setValue N, getValue, quit"

// view is the interactive screen: the value field with its square, the
// substituted passage, a command line and a status bar.
type view struct {
	settings *settings
	catalog  *wordlist.Catalog
	status   *state.Signal[string]

	square *plugin.Controller
	words  *plugin.Controller

	field   *widgets.Field
	passage *widgets.Passage
	command *widgets.CommandLine
	readout *state.Computed[string]
	root    *widgets.Column
}

func newView(s *settings, catalog *wordlist.Catalog, scheduler state.Scheduler, diag plugin.Diagnostics) *view {
	v := &view{
		settings: s,
		catalog:  catalog,
		status:   state.NewSignal("loading " + s.Wordlist),
	}
	v.status.SetEqualFunc(state.EqualComparable[string])
	v.square = plugin.NewSquare(plugin.Config{Scheduler: scheduler, Diagnostics: diag})
	v.words = plugin.NewUnstableWords(plugin.Config{
		Scheduler:   scheduler,
		Diagnostics: diag,
		Defaults: plugin.Options{
			OnReady: v.substituted,
			OnError: func(_ *plugin.Instance, err error) { v.status.Set(err.Error()) },
		},
	}, plugin.UnstableWords{Catalog: catalog})

	v.field = widgets.NewField("value", "")
	v.field.SetLabelWidth(len(plugin.SquareName))
	v.passage = widgets.NewPassage("passage", s.Content)
	v.passage.SetTheme(s.theme)
	v.passage.SetSourceStyle(s.Style)

	v.command = widgets.NewCommandLine(v.square, v.field)
	v.command.Handle("words", v.showWords)
	v.command.Handle("source", func([]string) (string, runtime.Command) {
		v.passage.ShowSource(!v.passage.ShowingSource())
		return "source view toggled", nil
	})
	v.command.Handle("quit", func([]string) (string, runtime.Command) {
		return "bye", runtime.Quit{}
	})

	statusLabel := widgets.NewSignalLabel(v.status, nil)
	statusLabel.SetStyle(backend.DefaultStyle().Reverse(true))
	help := widgets.NewSignalLabel(state.NewSignal(helpText), nil)
	help.SetStyle(backend.DefaultStyle().Dim(true))
	help.SetAlignment(widgets.AlignRight)

	v.root = widgets.NewColumn(v.field, v.passage, v.command, statusLabel, help)
	v.root.SetFlex(v.passage)
	return v
}

// configure attaches both plugins and adds a readout following the square
// instance value. The word substitution completes on the scheduler once the
// wordlist arrives.
func (v *view) configure(ctx context.Context) {
	inst := v.square.Configure(ctx, v.field, plugin.Options{Value: v.settings.Value})
	value := inst.ValueSignal()
	v.readout = state.NewComputed(func() string {
		n := value.Get()
		return fmt.Sprintf("value %d  square %d", n, n*n)
	}, value)
	v.readout.SetEqualFunc(state.EqualComparable[string])
	v.root.Add(widgets.NewSignalLabel(v.readout, nil))

	v.words.Configure(ctx, v.passage, plugin.Options{Value: v.settings.Value, Wordlist: v.settings.Wordlist})
	v.command.Handle("reload", func([]string) (string, runtime.Command) {
		v.passage.SetContent(v.settings.Content)
		v.words.Configure(ctx, v.passage, plugin.Options{})
		return "reloading " + v.settings.Wordlist, nil
	})
}

func (v *view) substituted(inst *plugin.Instance) {
	total := 0
	for _, n := range markup.Parse(inst.Element().Content()).Classes() {
		total += n
	}
	v.status.Set(fmt.Sprintf("substituted %d words from %s", total, v.settings.Wordlist))
}

// showWords opens the wordlist table, loading it first if needed.
func (v *view) showWords([]string) (string, runtime.Command) {
	loader, err := v.catalog.Loader(v.settings.Wordlist)
	if err != nil {
		return err.Error(), nil
	}
	if table, ok := loader.Table(); ok {
		return fmt.Sprintf("%d entries", table.Len()), openTable(table)
	}
	return "loading " + v.settings.Wordlist, runtime.Task(func(ctx context.Context) runtime.Message {
		table, err := loader.Load(ctx)
		if err != nil {
			return runtime.StatusMsg{Text: err.Error()}
		}
		return runtime.CommandMsg{Command: openTable(table)}
	})
}

func openTable(table wordlist.Table) runtime.Command {
	return runtime.PushOverlay{Widget: widgets.NewWordTable(table), Modal: true}
}

// update shows status messages and defers the rest to the default update.
func (v *view) update(app *runtime.App, msg runtime.Message) bool {
	if m, ok := msg.(runtime.StatusMsg); ok {
		v.status.Set(m.Text)
		return true
	}
	return runtime.DefaultUpdate(app, msg)
}

// runUI runs the interactive terminal app until quit or ctx ends.
func runUI(ctx context.Context, s *settings) error {
	be, err := backendtcell.New()
	if err != nil {
		return fmt.Errorf("backend init failed: %w", err)
	}

	var v *view
	app := runtime.NewApp(runtime.AppConfig{
		Backend: be,
		Update: func(app *runtime.App, msg runtime.Message) bool {
			return v.update(app, msg)
		},
	})
	diag := func(format string, args ...any) {
		app.Post(runtime.StatusMsg{Text: fmt.Sprintf(format, args...)})
	}
	v = newView(s, wordlist.Shared(), app.StateScheduler(), diag)
	v.configure(ctx)
	app.SetRoot(v.root)

	if loader, err := wordlist.Shared().Loader(s.Wordlist); err == nil {
		start := time.Now()
		app.Every(s.Tick, func(now time.Time) runtime.Message {
			if loader.State() != wordlist.Loading {
				return nil
			}
			return runtime.StatusMsg{Text: fmt.Sprintf("loading %s (%s)", s.Wordlist, now.Sub(start).Round(time.Second))}
		})
	}

	return app.Run(ctx)
}
