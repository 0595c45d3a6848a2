package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/orgfill/internal/config"
	"github.com/dshills/orgfill/internal/dispatcher/execctx"
	"github.com/dshills/orgfill/internal/engine/buffer"
	"github.com/dshills/orgfill/internal/engine/cursor"
	"github.com/dshills/orgfill/internal/engine/history"
)

func newTestSession(t *testing.T, text string) *Session {
	t.Helper()

	b := buffer.FromString(text)
	exec := execctx.New(b)
	exec.History = history.NewStack(0)

	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatal(err)
	}
	sim.SetSize(40, 10)

	s, err := NewSession(exec, config.Default(), WithScreen(sim))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func key(k tcell.Key, r rune, mod tcell.ModMask) *tcell.EventKey {
	return tcell.NewEventKey(k, r, mod)
}

func TestSessionIDsAreUnique(t *testing.T) {
	a := newTestSession(t, "")
	b := newTestSession(t, "")
	if a.ID() == b.ID() {
		t.Error("two sessions share an ID")
	}
	if a.ID() == "" {
		t.Error("session ID is empty")
	}
}

func TestTypingInsertsAtCursor(t *testing.T) {
	s := newTestSession(t, "")

	for _, r := range "hi" {
		s.handleKey(key(tcell.KeyRune, r, tcell.ModNone))
	}
	s.handleKey(key(tcell.KeyEnter, 0, tcell.ModNone))
	s.handleKey(key(tcell.KeyRune, '!', tcell.ModNone))

	if got := s.exec.Buffer.Text(); got != "hi\n!" {
		t.Errorf("buffer = %q, want %q", got, "hi\n!")
	}
	if !s.modified {
		t.Error("typing should mark the session modified")
	}
}

func TestBackspaceDeletesRune(t *testing.T) {
	s := newTestSession(t, "héllo")
	s.exec.Cursor = cursor.New(s.exec.Buffer.Len())

	s.handleKey(key(tcell.KeyBackspace2, 0, tcell.ModNone))
	s.handleKey(key(tcell.KeyBackspace2, 0, tcell.ModNone))
	s.handleKey(key(tcell.KeyBackspace2, 0, tcell.ModNone))
	s.handleKey(key(tcell.KeyBackspace2, 0, tcell.ModNone))

	// é is multi-byte; backspace must remove the whole rune.
	if got := s.exec.Buffer.Text(); got != "h" {
		t.Errorf("buffer = %q, want %q", got, "h")
	}
}

func TestAltQFillsProperty(t *testing.T) {
	s := newTestSession(t, ":PROPERTIES:\n:DESC: Alpha beta gamma delta epsilon zeta\n:END:\n")
	s.exec.Cursor = cursor.AtPoint(s.exec.Buffer, buffer.Point{Line: 1})
	s.exec.Fill.FillColumn = 20

	s.handleKey(key(tcell.KeyRune, 'q', tcell.ModAlt))

	want := ":PROPERTIES:\n:DESC: Alpha beta\n:DESC+: gamma delta\n:DESC+: epsilon zeta\n:END:\n"
	if got := s.exec.Buffer.Text(); got != want {
		t.Errorf("buffer after Alt-Q:\n%q\nwant:\n%q", got, want)
	}
}

func TestAltEnterInsertsContinuation(t *testing.T) {
	s := newTestSession(t, ":PROPERTIES:\n:FOO: v\n:END:\n")
	s.exec.Cursor = cursor.AtPoint(s.exec.Buffer, buffer.Point{Line: 1})

	s.handleKey(key(tcell.KeyEnter, 0, tcell.ModAlt))

	want := ":PROPERTIES:\n:FOO: v\n:FOO+: \n:END:\n"
	if got := s.exec.Buffer.Text(); got != want {
		t.Errorf("buffer after Alt-Enter:\n%q\nwant:\n%q", got, want)
	}
}

func TestCtrlUUndoes(t *testing.T) {
	s := newTestSession(t, "abc")
	s.exec.Cursor = cursor.New(3)

	s.handleKey(key(tcell.KeyRune, 'd', tcell.ModNone))
	if s.exec.Buffer.Text() != "abcd" {
		t.Fatalf("setup failed: %q", s.exec.Buffer.Text())
	}

	s.handleKey(key(tcell.KeyCtrlU, 0, tcell.ModNone))
	if got := s.exec.Buffer.Text(); got != "abc" {
		t.Errorf("buffer after undo = %q, want %q", got, "abc")
	}
}

func TestCtrlQRequiresConfirmWhenModified(t *testing.T) {
	s := newTestSession(t, "")
	s.handleKey(key(tcell.KeyRune, 'x', tcell.ModNone))

	s.handleKey(key(tcell.KeyCtrlQ, 0, tcell.ModNone))
	if s.quit {
		t.Fatal("first Ctrl-Q with unsaved changes must not quit")
	}
	s.handleKey(key(tcell.KeyCtrlQ, 0, tcell.ModNone))
	if !s.quit {
		t.Error("second Ctrl-Q should quit")
	}
}

func TestArrowMovement(t *testing.T) {
	s := newTestSession(t, "one\ntwo\n")

	s.handleKey(key(tcell.KeyRight, 0, tcell.ModNone))
	s.handleKey(key(tcell.KeyRight, 0, tcell.ModNone))
	s.handleKey(key(tcell.KeyDown, 0, tcell.ModNone))
	p := s.exec.Cursor.Point(s.exec.Buffer)
	if p.Line != 1 || p.Column != 2 {
		t.Errorf("cursor at %v, want (1:2)", p)
	}

	s.handleKey(key(tcell.KeyHome, 0, tcell.ModNone))
	if p = s.exec.Cursor.Point(s.exec.Buffer); p.Column != 0 {
		t.Errorf("Home left cursor at column %d", p.Column)
	}
	s.handleKey(key(tcell.KeyEnd, 0, tcell.ModNone))
	if p = s.exec.Cursor.Point(s.exec.Buffer); p.Column != 3 {
		t.Errorf("End left cursor at column %d, want 3", p.Column)
	}
}

func TestReadOnlyBufferFlashesError(t *testing.T) {
	b := buffer.FromString("text", buffer.WithReadOnly())
	exec := execctx.New(b)

	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatal(err)
	}
	s, err := NewSession(exec, config.Default(), WithScreen(sim))
	if err != nil {
		t.Fatal(err)
	}

	s.handleKey(key(tcell.KeyRune, 'x', tcell.ModNone))
	if !s.msgError {
		t.Error("editing a read-only buffer should flash an error")
	}
	if b.Text() != "text" {
		t.Error("read-only buffer was modified")
	}
}

func TestExpandTabs(t *testing.T) {
	tests := []struct {
		in       string
		tabWidth int
		want     string
	}{
		{"\tx", 4, "    x"},
		{"ab\tx", 4, "ab  x"},
		{"no tabs", 4, "no tabs"},
		{"\t", 8, "        "},
	}
	for _, tt := range tests {
		if got := expandTabs(tt.in, tt.tabWidth); got != tt.want {
			t.Errorf("expandTabs(%q, %d) = %q, want %q", tt.in, tt.tabWidth, got, tt.want)
		}
	}
}

func TestApplyReloadUpdatesFillColumn(t *testing.T) {
	s := newTestSession(t, "")

	cfg := config.Default()
	cfg.Fill.Column = 100
	s.applyReload(cfg)

	if s.exec.Fill.FillColumn != 100 {
		t.Errorf("fill column = %d, want 100", s.exec.Fill.FillColumn)
	}
}

func TestApplyReloadRejectsBadTheme(t *testing.T) {
	s := newTestSession(t, "")
	before := s.exec.Fill.FillColumn

	cfg := config.Default()
	cfg.Fill.Column = 100
	cfg.UI.Theme.Background = "bogus"
	s.applyReload(cfg)

	if !s.msgError {
		t.Error("bad theme should flash an error")
	}
	if s.exec.Fill.FillColumn != before {
		t.Error("failed reload must not apply partially")
	}
}

func TestDrawDoesNotPanic(t *testing.T) {
	s := newTestSession(t, ":PROPERTIES:\n:A: value\n:END:\nbody\n")
	s.draw()
}

func TestBadThemeColorRejected(t *testing.T) {
	cfg := config.Default()
	cfg.UI.Theme.Foreground = "not-a-color"

	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatal(err)
	}
	if _, err := NewSession(execctx.New(buffer.New()), cfg, WithScreen(sim)); err == nil {
		t.Error("expected an error for a bad theme color")
	}
}
