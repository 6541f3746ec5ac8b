package widgets

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/odvcencio/unstable-ui/backend"
	"github.com/odvcencio/unstable-ui/plugin"
	"github.com/odvcencio/unstable-ui/runtime"
	"github.com/odvcencio/unstable-ui/terminal"
)

// CommandFunc runs a command typed into a CommandLine.
// It returns a status line and optionally a runtime command.
type CommandFunc func(args []string) (string, runtime.Command)

// CommandLine is a prompt that invokes plugin operations on a target
// element, for example "setValue 12" or "getValue". Other commands can be
// registered with Handle.
type CommandLine struct {
	Component
	editor     lineEditor
	prompt     string
	controller *plugin.Controller
	target     plugin.Element
	commands   map[string]CommandFunc
	history    []string
	recall     int
	last       string
	style      backend.Style
	focusStyle backend.Style
}

// NewCommandLine creates a prompt invoking controller operations on target.
func NewCommandLine(controller *plugin.Controller, target plugin.Element) *CommandLine {
	return &CommandLine{
		prompt:     "> ",
		controller: controller,
		target:     target,
		commands:   make(map[string]CommandFunc),
		style:      backend.DefaultStyle(),
		focusStyle: backend.DefaultStyle().Bold(true),
	}
}

// Handle registers fn for name. Registered names take precedence over
// plugin operations.
func (c *CommandLine) Handle(name string, fn CommandFunc) {
	c.commands[name] = fn
}

// SetTarget changes the element operations apply to.
func (c *CommandLine) SetTarget(target plugin.Element) {
	c.target = target
}

// Text returns the text being typed.
func (c *CommandLine) Text() string {
	return c.editor.String()
}

// Last returns the status of the last command.
func (c *CommandLine) Last() string {
	return c.last
}

// Measure returns one line.
func (c *CommandLine) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.Constrain(runtime.Size{Width: constraints.MaxWidth, Height: 1})
}

// Render draws the prompt and the text.
func (c *CommandLine) Render(ctx runtime.RenderContext) {
	bounds := c.bounds
	if bounds.Empty() {
		return
	}
	style := c.style
	if c.focused {
		style = c.focusStyle
	}
	x := ctx.Buffer.SetString(bounds.X, bounds.Y, truncateString(c.prompt, bounds.Width), style)
	c.editor.render(ctx.Buffer, x, bounds.Y, bounds.X+bounds.Width-x, c.style, c.focused && ctx.Focused)
}

// HandleMessage edits the line and runs it on Enter.
func (c *CommandLine) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if !c.focused {
		return runtime.Unhandled()
	}
	switch m := msg.(type) {
	case runtime.PasteMsg:
		c.editor.insert(m.Text)
		return runtime.Handled()
	case runtime.KeyMsg:
		switch m.Key {
		case terminal.KeyEnter:
			return c.submit()
		case terminal.KeyUp:
			c.recallHistory(-1)
			return runtime.Handled()
		case terminal.KeyDown:
			c.recallHistory(1)
			return runtime.Handled()
		case terminal.KeyEscape:
			c.editor.Clear()
			return runtime.WithCommand(runtime.Cancel{})
		}
		if handled, _ := c.editor.handleKey(m); handled {
			return runtime.Handled()
		}
	}
	return runtime.Unhandled()
}

func (c *CommandLine) submit() runtime.HandleResult {
	line := strings.TrimSpace(c.editor.String())
	c.editor.Clear()
	if line == "" {
		return runtime.Handled()
	}
	c.history = append(c.history, line)
	c.recall = len(c.history)
	status, cmd := c.Run(line)
	c.last = status
	c.Status(status)
	cmds := []runtime.Command{runtime.Submit{Text: line}}
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	return runtime.WithCommand(cmds...)
}

// Run executes line and returns its status and command.
func (c *CommandLine) Run(line string) (string, runtime.Command) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	name, args := fields[0], fields[1:]
	if fn, ok := c.commands[name]; ok {
		return fn(args)
	}
	return c.invoke(name, args), nil
}

func (c *CommandLine) invoke(name string, args []string) string {
	if _, err := plugin.ParseOperation(name, args...); err != nil {
		if errors.Is(err, plugin.ErrUnknownOperation) {
			return fmt.Sprintf("unknown command %q", name)
		}
		return err.Error()
	}
	res := c.controller.InvokeName(c.target, name, args...)
	switch {
	case !res.Defined && !res.OK:
		return name + ": no result"
	case !res.OK:
		return name + ": not a number"
	case res.Defined:
		return name + " = " + strconv.Itoa(res.Value)
	default:
		return name + ": ok"
	}
}

func (c *CommandLine) recallHistory(delta int) {
	if len(c.history) == 0 {
		return
	}
	c.recall = max(min(c.recall+delta, len(c.history)), 0)
	if c.recall == len(c.history) {
		c.editor.Clear()
		return
	}
	c.editor.SetText(c.history[c.recall])
}
