package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gookit/color"

	"github.com/odvcencio/unstable-ui/backend"
	"github.com/odvcencio/unstable-ui/markup"
	"github.com/odvcencio/unstable-ui/plugin"
	"github.com/odvcencio/unstable-ui/widgets"
)

// printWidth is the wrap width of -print output.
const printWidth = 80

// runPrint substitutes the content once and writes it to w.
func runPrint(ctx context.Context, s *settings, w io.Writer) error {
	diag := func(format string, args ...any) {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
	field := widgets.NewField("value", "")
	passage := widgets.NewPassage("content", s.Content)
	widgets.NewColumn(field, passage)

	square := plugin.NewSquare(plugin.Config{Diagnostics: diag})
	inst := square.Configure(ctx, field, plugin.Options{Value: s.Value})

	finished := make(chan error, 1)
	words := plugin.NewUnstableWords(plugin.Config{Diagnostics: diag}, plugin.UnstableWords{})
	words.Configure(ctx, passage, plugin.Options{
		Value:    s.Value,
		Wordlist: s.Wordlist,
		OnReady:  func(*plugin.Instance) { finished <- nil },
		OnError:  func(_ *plugin.Instance, err error) { finished <- err },
	})
	select {
	case err := <-finished:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		return ctx.Err()
	}

	if *colorOut {
		color.ForceColor()
	}
	fmt.Fprintf(w, "value %s  square %s\n\n", field.Value(), inst.Display().Value())
	for _, row := range markup.Layout(markup.Parse(passage.Content()), printWidth) {
		line := row.Prefix
		for _, run := range row.Runs {
			line += paint(s.theme, row.Kind, run, *colorOut)
		}
		fmt.Fprintln(w, line)
	}

	if *jsonOut {
		snapshot := map[string][]plugin.InstanceInfo{
			square.Name(): square.Registry().Snapshot(),
			words.Name():  words.Registry().Snapshot(),
		}
		data, err := json.MarshalIndent(snapshot, "", "  ")
		if err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
		fmt.Fprintf(w, "\n%s\n", data)
	}
	return nil
}

// paint renders run with ANSI escapes for its theme style.
func paint(theme markup.Theme, kind markup.Kind, run markup.Run, enabled bool) string {
	if !enabled {
		return run.Text
	}
	style := theme.Style(kind, run)
	var opts []color.Color
	attrs := style.Attributes()
	if attrs&backend.AttrBold != 0 {
		opts = append(opts, color.OpBold)
	}
	if attrs&backend.AttrDim != 0 {
		opts = append(opts, color.OpFuzzy)
	}
	if attrs&backend.AttrItalic != 0 {
		opts = append(opts, color.OpItalic)
	}
	if attrs&backend.AttrUnderline != 0 {
		opts = append(opts, color.OpUnderscore)
	}
	text := run.Text
	if fg, _ := style.Colors(); !fg.IsDefault() {
		r, g, b := fg.RGB()
		text = color.Bit24(r, g, b, false).Sprint(text)
	}
	if len(opts) > 0 {
		text = color.New(opts...).Sprint(text)
	}
	return text
}
