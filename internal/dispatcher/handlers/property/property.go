// Package property provides the handlers for property-drawer editing
// commands: reflowing a logical property value and inserting a
// continuation record. Outside a property context both commands fall
// back to generic editing behavior (paragraph fill, heading insertion).
package property

import (
	"strings"

	"github.com/dshills/orgfill/internal/dispatcher/execctx"
	"github.com/dshills/orgfill/internal/dispatcher/handler"
	"github.com/dshills/orgfill/internal/engine/buffer"
	"github.com/dshills/orgfill/internal/engine/cursor"
	"github.com/dshills/orgfill/internal/fill"
	"github.com/dshills/orgfill/internal/org"
)

// Action names for property operations.
const (
	ActionFill               = "property.fill"               // reflow the logical property at point
	ActionInsertContinuation = "property.insertContinuation" // add a continuation record below point
)

// Handler handles the property namespace.
type Handler struct{}

// NewHandler creates a property handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the property namespace.
func (h *Handler) Namespace() string {
	return "property"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionFill, ActionInsertContinuation:
		return true
	}
	return false
}

// HandleAction processes a property action.
func (h *Handler) HandleAction(action handler.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}

	line := ctx.Cursor.Point(ctx.Buffer).Line
	dctx := org.ContextAt(ctx.Buffer, line)

	switch action.Name {
	case ActionFill:
		if dctx.Kind == org.PropertyContext {
			return h.fillProperty(ctx, dctx)
		}
		return h.fillParagraph(ctx, line)
	case ActionInsertContinuation:
		if dctx.Kind == org.PropertyContext {
			return h.insertContinuation(ctx, dctx)
		}
		return h.insertHeading(ctx, line)
	}
	return handler.Errorf("unknown property action: %s", action.Name)
}

// fillProperty reflows the full logical property at the context line.
// The replacement is computed in full before the buffer is touched, so
// any failure leaves the document unchanged.
func (h *Handler) fillProperty(ctx *execctx.ExecutionContext, dctx org.Context) handler.Result {
	buf := ctx.Buffer

	lp, err := org.LogicalPropertyAt(buf, dctx.Line)
	if err != nil {
		return handler.Error(err)
	}

	lines, err := fill.Reflow(lp.Value(), lp.Name, ctx.Fill)
	if err != nil {
		return handler.Error(err)
	}

	indent := dctx.Element.Indent
	for i, l := range lines {
		lines[i] = indent + l
	}

	start := buf.LineStartOffset(lp.StartLine)
	end := buf.LineEndOffset(lp.EndLine)
	if end < buf.Len() {
		end++ // take the trailing newline with the records
	}
	text := strings.Join(lines, "\n") + "\n"

	if _, err := ctx.ApplyReplace(start, end, text, "fill property "+lp.Name.Base); err != nil {
		return handler.Error(err)
	}

	// Leave the cursor on the primary record's value.
	c := cursor.New(start + buffer.ByteOffset(len(indent)+len(lp.Name.Base)+3))
	return handler.Success().WithCursor(c)
}

// fillParagraph is the generic fallback: reflow the blank-line-delimited
// paragraph around the given line.
func (h *Handler) fillParagraph(ctx *execctx.ExecutionContext, line uint32) handler.Result {
	buf := ctx.Buffer

	if org.ElementAt(buf, line).Kind != org.ElementParagraph {
		return handler.NoOp().WithMessage("nothing to fill here")
	}

	first, last := line, line
	for first > 0 && org.ElementAt(buf, first-1).Kind == org.ElementParagraph {
		first--
	}
	for last+1 < buf.LineCount() && org.ElementAt(buf, last+1).Kind == org.ElementParagraph {
		last++
	}

	var parts []string
	for l := first; l <= last; l++ {
		parts = append(parts, strings.TrimSpace(buf.LineText(l)))
	}
	indent := org.ElementAt(buf, first).Indent
	lines := fill.Paragraph(indent+strings.Join(parts, " "), ctx.Fill)

	start := buf.LineStartOffset(first)
	end := buf.LineEndOffset(last)
	text := strings.Join(lines, "\n")

	if _, err := ctx.ApplyReplace(start, end, text, "fill paragraph"); err != nil {
		return handler.Error(err)
	}
	return handler.Success().WithCursor(cursor.New(start))
}

// insertContinuation appends a continuation record line below the
// record at the context line, pre-filled with the marked property name.
// The new line's name is always continuation-marked exactly once.
func (h *Handler) insertContinuation(ctx *execctx.ExecutionContext, dctx org.Context) handler.Result {
	buf := ctx.Buffer
	el := dctx.Element

	prefix := el.Indent + ":" + el.Name.Marked().String() + ": "
	insertion := "\n" + prefix

	at := buf.LineEndOffset(dctx.Line)
	newEnd, err := ctx.ApplyReplace(at, at, insertion, "insert continuation "+el.Name.Base)
	if err != nil {
		return handler.Error(err)
	}
	return handler.Success().WithCursor(cursor.New(newEnd))
}

// insertHeading is the generic fallback: start a new heading line below
// the current one, at the enclosing heading's level.
func (h *Handler) insertHeading(ctx *execctx.ExecutionContext, line uint32) handler.Result {
	buf := ctx.Buffer

	level := 1
	for l := int64(line); l >= 0; l-- {
		if el := org.ElementAt(buf, uint32(l)); el.Kind == org.ElementHeading {
			level = el.Level
			break
		}
	}

	insertion := "\n" + strings.Repeat("*", level) + " "
	at := buf.LineEndOffset(line)
	newEnd, err := ctx.ApplyReplace(at, at, insertion, "insert heading")
	if err != nil {
		return handler.Error(err)
	}
	return handler.Success().WithCursor(cursor.New(newEnd))
}
