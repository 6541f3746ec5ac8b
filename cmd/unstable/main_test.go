package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/odvcencio/unstable-ui/config"
	"github.com/odvcencio/unstable-ui/markup"
	"github.com/odvcencio/unstable-ui/runtime"
	"github.com/odvcencio/unstable-ui/widgets"
	"github.com/odvcencio/unstable-ui/wordlist"
)

const oneWord = `[{"code": "CAT", "name": "animal", "words": ["lion"]}]`

func testSettings(location, content string, value int) *settings {
	return &settings{
		Resolved: config.Resolved{
			Wordlist: location,
			Content:  content,
			Value:    value,
			Style:    markup.DefaultStyle,
			Tick:     time.Second,
		},
		theme: markup.DefaultTheme(),
	}
}

func TestRunPrint(t *testing.T) {
	wordlist.Shared().Register(wordlist.StaticSource{Name: "print-test", Data: []byte(oneWord)})
	s := testSettings("print-test", "The CAT sat.", 3)

	var out bytes.Buffer
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := runPrint(ctx, s, &out); err != nil {
		t.Fatalf("runPrint: %v", err)
	}
	text := out.String()
	if !strings.HasPrefix(text, "value 3  square 9\n") {
		t.Fatalf("expected value header, got %q", text)
	}
	if !strings.Contains(text, "The lion sat.") {
		t.Fatalf("expected substituted word, got %q", text)
	}
}

func TestRunPrint_MissingWordlist(t *testing.T) {
	s := testSettings("/nonexistent/words.json", "The CAT sat.", 1)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := runPrint(ctx, s, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected load error")
	}
}

func TestPaint_Disabled(t *testing.T) {
	run := markup.Run{Text: "lion", Class: "animal"}
	if got := paint(markup.DefaultTheme(), markup.Paragraph, run, false); got != "lion" {
		t.Fatalf("expected plain text, got %q", got)
	}
}

func TestView_ShowWordsLoadsThenOpens(t *testing.T) {
	catalog := wordlist.NewCatalog()
	catalog.Register(wordlist.StaticSource{Name: "view-test", Data: []byte(oneWord)})
	v := newView(testSettings("view-test", "A CAT.", 2), catalog, nil, func(string, ...any) {})

	status, cmd := v.showWords(nil)
	if status != "loading view-test" {
		t.Fatalf("expected loading status, got %q", status)
	}
	effect, ok := cmd.(runtime.Effect)
	if !ok {
		t.Fatalf("expected effect, got %T", cmd)
	}
	var posted runtime.Message
	effect.Run(context.Background(), func(msg runtime.Message) bool {
		posted = msg
		return true
	})
	msg, ok := posted.(runtime.CommandMsg)
	if !ok {
		t.Fatalf("expected command message, got %T", posted)
	}
	if _, ok := msg.Command.(runtime.PushOverlay); !ok {
		t.Fatalf("expected overlay, got %T", msg.Command)
	}

	status, cmd = v.showWords(nil)
	if status != "1 entries" {
		t.Fatalf("expected entry count, got %q", status)
	}
	if _, ok := cmd.(runtime.PushOverlay); !ok {
		t.Fatalf("expected overlay once loaded, got %T", cmd)
	}
}

func TestView_ConfigureSubstitutes(t *testing.T) {
	catalog := wordlist.NewCatalog()
	catalog.Register(wordlist.StaticSource{Name: "view-test", Data: []byte(oneWord)})
	v := newView(testSettings("view-test", "A CAT and a CAT.", 4), catalog, nil, func(string, ...any) {})
	v.configure(context.Background())

	deadline := time.Now().Add(5 * time.Second)
	for v.status.Get() == "loading view-test" && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if got := v.status.Get(); got != "substituted 2 words from view-test" {
		t.Fatalf("expected substitution status, got %q", got)
	}
	if got := v.field.Value(); got != "4" {
		t.Fatalf("expected value 4, got %q", got)
	}
}

func TestView_ReadoutFollowsSquareValue(t *testing.T) {
	catalog := wordlist.NewCatalog()
	catalog.Register(wordlist.StaticSource{Name: "view-test", Data: []byte(oneWord)})
	v := newView(testSettings("view-test", "A CAT.", 4), catalog, nil, func(string, ...any) {})
	v.configure(context.Background())

	if got := v.readout.Get(); got != "value 4  square 16" {
		t.Fatalf("expected initial readout, got %q", got)
	}
	children := v.root.ChildWidgets()
	label, ok := children[len(children)-1].(*widgets.SignalLabel)
	if !ok || label.Text() != "value 4  square 16" {
		t.Fatalf("expected readout label last in the column, got %T", children[len(children)-1])
	}

	if status, _ := v.command.Run("setValue 5"); status != "setValue: ok" {
		t.Fatalf("expected setValue to succeed, got %q", status)
	}
	if got := v.readout.Get(); got != "value 5  square 25" {
		t.Fatalf("expected readout to follow setValue, got %q", got)
	}
	if status, _ := v.command.Run("setValue -3"); status != "setValue: ok" {
		t.Fatalf("expected clamped setValue to succeed, got %q", status)
	}
	if got := v.readout.Get(); got != "value 0  square 0" {
		t.Fatalf("expected clamped readout, got %q", got)
	}
}
