package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/rivo/uniseg"

	"github.com/dshills/orgfill/internal/config"
	"github.com/dshills/orgfill/internal/dispatcher"
	"github.com/dshills/orgfill/internal/dispatcher/execctx"
	"github.com/dshills/orgfill/internal/dispatcher/handler"
	"github.com/dshills/orgfill/internal/dispatcher/handlers/property"
	"github.com/dshills/orgfill/internal/engine/buffer"
	"github.com/dshills/orgfill/internal/engine/cursor"
)

// Session is one interactive editing session over a document.
type Session struct {
	id     string
	screen tcell.Screen
	exec   *execctx.ExecutionContext
	disp   *dispatcher.Dispatcher
	theme  Theme
	cfg    config.Config

	topLine   uint32
	message   string
	msgError  bool
	modified  bool
	quitArmed bool
	quit      bool
}

// Option configures a Session.
type Option func(*Session)

// WithScreen uses the given screen instead of allocating a terminal.
// Tests pass a tcell simulation screen here.
func WithScreen(s tcell.Screen) Option {
	return func(sess *Session) {
		sess.screen = s
	}
}

// NewSession creates a session for the given execution context.
func NewSession(exec *execctx.ExecutionContext, cfg config.Config, opts ...Option) (*Session, error) {
	theme, err := NewTheme(cfg.UI.Theme)
	if err != nil {
		return nil, err
	}

	disp := dispatcher.New()
	disp.Register(property.NewHandler())

	s := &Session{
		id:    uuid.New().String(),
		exec:  exec,
		disp:  disp,
		theme: theme,
		cfg:   cfg,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, err
		}
		s.screen = screen
	}
	return s, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Run drives the event loop until the user quits.
func (s *Session) Run() error {
	if err := s.screen.Init(); err != nil {
		return err
	}
	defer s.screen.Fini()
	s.screen.SetStyle(s.theme.Text)

	for !s.quit {
		s.draw()
		switch ev := s.screen.PollEvent().(type) {
		case *tcell.EventResize:
			s.screen.Sync()
		case *tcell.EventKey:
			s.handleKey(ev)
		case *EventReload:
			s.applyReload(ev.cfg)
		case nil:
			return nil
		}
	}
	return nil
}

// EventReload carries a new configuration into the event loop.
type EventReload struct {
	tcell.EventTime
	cfg config.Config
}

// PostReload hands a new configuration to the running session. It is
// safe to call from any goroutine; the reload is applied on the event
// loop.
func (s *Session) PostReload(cfg config.Config) {
	ev := &EventReload{cfg: cfg}
	ev.SetEventNow()
	_ = s.screen.PostEvent(ev) // best-effort; queue may be full
}

func (s *Session) applyReload(cfg config.Config) {
	theme, err := NewTheme(cfg.UI.Theme)
	if err != nil {
		s.flashError(err.Error())
		return
	}
	s.cfg = cfg
	s.theme = theme
	s.exec.Fill.FillColumn = cfg.Fill.Column
	s.screen.SetStyle(s.theme.Text)
	s.message = "configuration reloaded"
}

// Key Handling

func (s *Session) handleKey(ev *tcell.EventKey) {
	s.message = ""
	s.msgError = false

	switch {
	case ev.Key() == tcell.KeyCtrlQ:
		if s.modified && !s.quitArmed {
			s.flashError("unsaved changes, Ctrl-Q again to quit")
			s.quitArmed = true
			return
		}
		s.quit = true
	case ev.Key() == tcell.KeyCtrlS:
		s.save()
	case ev.Key() == tcell.KeyCtrlU:
		s.undo()
	case ev.Key() == tcell.KeyEnter && ev.Modifiers()&tcell.ModAlt != 0:
		s.dispatch(property.ActionInsertContinuation)
	case ev.Key() == tcell.KeyEnter:
		s.insert("\n")
	case ev.Key() == tcell.KeyRune && ev.Modifiers()&tcell.ModAlt != 0 && ev.Rune() == 'q':
		s.dispatch(property.ActionFill)
	case ev.Key() == tcell.KeyRune && ev.Modifiers()&tcell.ModAlt == 0:
		s.insert(string(ev.Rune()))
	case ev.Key() == tcell.KeyTab:
		s.insert("\t")
	case ev.Key() == tcell.KeyBackspace || ev.Key() == tcell.KeyBackspace2:
		s.deleteBack()
	case ev.Key() == tcell.KeyLeft:
		s.moveLeft()
	case ev.Key() == tcell.KeyRight:
		s.moveRight()
	case ev.Key() == tcell.KeyUp:
		s.moveVertical(-1)
	case ev.Key() == tcell.KeyDown:
		s.moveVertical(1)
	case ev.Key() == tcell.KeyHome:
		s.exec.Cursor = s.exec.Cursor.StartOfLine(s.exec.Buffer)
	case ev.Key() == tcell.KeyEnd:
		s.exec.Cursor = s.exec.Cursor.EndOfLine(s.exec.Buffer)
	}

	if ev.Key() != tcell.KeyCtrlQ {
		s.quitArmed = false
	}
}

// dispatch routes an editing action and applies its result to the
// session state.
func (s *Session) dispatch(action string) {
	res := s.disp.Dispatch(handler.Action{Name: action}, s.exec)
	switch {
	case res.IsError():
		s.flashError(res.Error.Error())
	case res.IsOK():
		s.modified = true
	}
	if res.Cursor != nil {
		s.exec.Cursor = *res.Cursor
	}
	if res.Message != "" && !res.IsError() {
		s.message = res.Message
	}
}

func (s *Session) insert(text string) {
	if err := s.exec.ValidateForEdit(); err != nil {
		s.flashError(err.Error())
		return
	}
	off := s.exec.Cursor.Offset()
	newEnd, err := s.exec.ApplyReplace(off, off, text, "insert")
	if err != nil {
		s.flashError(err.Error())
		return
	}
	s.exec.Cursor = cursor.New(newEnd)
	s.modified = true
}

func (s *Session) deleteBack() {
	if err := s.exec.ValidateForEdit(); err != nil {
		s.flashError(err.Error())
		return
	}
	off := s.exec.Cursor.Offset()
	if off == 0 {
		return
	}
	start := s.prevRuneStart(off)
	if _, err := s.exec.ApplyReplace(start, off, "", "delete"); err != nil {
		s.flashError(err.Error())
		return
	}
	s.exec.Cursor = cursor.New(start)
	s.modified = true
}

func (s *Session) undo() {
	if s.exec.History == nil || !s.exec.History.CanUndo() {
		s.flashError("nothing to undo")
		return
	}
	rec, err := s.exec.History.Undo(s.exec.Buffer)
	if err != nil {
		s.flashError(err.Error())
		return
	}
	s.exec.Cursor = cursor.New(rec.OldRange.Start).Clamp(s.exec.Buffer.Len())
	s.message = "undid: " + rec.Description
}

func (s *Session) save() {
	if s.exec.FilePath == "" {
		s.flashError("no file to save to")
		return
	}
	if err := os.WriteFile(s.exec.FilePath, s.exec.Buffer.Bytes(), 0o644); err != nil {
		s.flashError(err.Error())
		return
	}
	s.modified = false
	s.message = "saved " + filepath.Base(s.exec.FilePath)
}

// Cursor Movement

func (s *Session) moveLeft() {
	off := s.exec.Cursor.Offset()
	if off > 0 {
		s.exec.Cursor = cursor.New(s.prevRuneStart(off))
	}
}

func (s *Session) moveRight() {
	b := s.exec.Buffer
	off := s.exec.Cursor.Offset()
	if off >= b.Len() {
		return
	}
	end := off + utf8.UTFMax
	if end > b.Len() {
		end = b.Len()
	}
	_, size := utf8.DecodeRuneInString(b.TextRange(off, end))
	s.exec.Cursor = s.exec.Cursor.MoveBy(buffer.ByteOffset(size))
}

func (s *Session) moveVertical(delta int) {
	b := s.exec.Buffer
	p := s.exec.Cursor.Point(b)
	line := int64(p.Line) + int64(delta)
	if line < 0 || line >= int64(b.LineCount()) {
		return
	}
	s.exec.Cursor = cursor.AtPoint(b, buffer.Point{Line: uint32(line), Column: p.Column})
}

// prevRuneStart returns the offset of the rune preceding off.
func (s *Session) prevRuneStart(off buffer.ByteOffset) buffer.ByteOffset {
	start := off - utf8.UTFMax
	if start < 0 {
		start = 0
	}
	chunk := s.exec.Buffer.TextRange(start, off)
	_, size := utf8.DecodeLastRuneInString(chunk)
	if size == 0 {
		return off - 1
	}
	return off - buffer.ByteOffset(size)
}

func (s *Session) flashError(msg string) {
	s.message = msg
	s.msgError = true
}

// Drawing

func (s *Session) draw() {
	width, height := s.screen.Size()
	if height < 1 {
		return
	}
	s.screen.Clear()

	b := s.exec.Buffer
	textRows := height - 1
	s.scrollTo(textRows)

	for row := 0; row < textRows; row++ {
		line := s.topLine + uint32(row)
		if line >= b.LineCount() {
			break
		}
		s.drawText(0, row, width, expandTabs(b.LineText(line), s.cfg.Editor.TabWidth), s.theme.Text)
	}

	s.drawStatus(width, height-1)
	s.showCursor(textRows)
	s.screen.Show()
}

// scrollTo keeps the cursor's line inside the visible text rows.
func (s *Session) scrollTo(textRows int) {
	if textRows < 1 {
		return
	}
	line := s.exec.Cursor.Point(s.exec.Buffer).Line
	if line < s.topLine {
		s.topLine = line
	}
	if line >= s.topLine+uint32(textRows) {
		s.topLine = line - uint32(textRows) + 1
	}
}

func (s *Session) drawStatus(width, row int) {
	name := s.exec.FilePath
	if name == "" {
		name = "[no file]"
	} else {
		name = filepath.Base(name)
	}
	if s.modified {
		name += " *"
	}

	p := s.exec.Cursor.Point(s.exec.Buffer)
	right := fmt.Sprintf(" %d:%d ", p.Line+1, p.Column+1)

	left := " " + name
	if s.message != "" {
		left += "  " + s.message
	}

	style := s.theme.Status
	if s.msgError {
		style = s.theme.Error
	}

	for x := 0; x < width; x++ {
		s.screen.SetContent(x, row, ' ', nil, style)
	}
	s.drawText(0, row, width-len(right), left, style)
	s.drawText(width-len(right), row, width, right, style)
}

func (s *Session) drawText(x, y, maxX int, text string, style tcell.Style) {
	for _, r := range text {
		if x >= maxX {
			break
		}
		s.screen.SetContent(x, y, r, nil, style)
		x += uniseg.StringWidth(string(r))
	}
}

func (s *Session) showCursor(textRows int) {
	b := s.exec.Buffer
	p := s.exec.Cursor.Point(b)
	row := int(p.Line) - int(s.topLine)
	if row < 0 || row >= textRows {
		s.screen.HideCursor()
		return
	}
	prefix := expandTabs(b.LineText(p.Line)[:min(int(p.Column), len(b.LineText(p.Line)))], s.cfg.Editor.TabWidth)
	s.screen.ShowCursor(uniseg.StringWidth(prefix), row)
}

// expandTabs replaces tabs with spaces up to the next tab stop.
func expandTabs(line string, tabWidth int) string {
	if tabWidth < 1 {
		tabWidth = config.DefaultTabWidth
	}
	out := make([]rune, 0, len(line))
	col := 0
	for _, r := range line {
		if r == '\t' {
			spaces := tabWidth - col%tabWidth
			for i := 0; i < spaces; i++ {
				out = append(out, ' ')
			}
			col += spaces
			continue
		}
		out = append(out, r)
		col += uniseg.StringWidth(string(r))
	}
	return string(out)
}
