package dispatcher

import (
	"testing"

	"github.com/dshills/orgfill/internal/dispatcher/execctx"
	"github.com/dshills/orgfill/internal/dispatcher/handler"
	"github.com/dshills/orgfill/internal/dispatcher/handlers/property"
	"github.com/dshills/orgfill/internal/engine/buffer"
	"github.com/dshills/orgfill/internal/engine/cursor"
)

func TestDispatchRoutesToHandler(t *testing.T) {
	d := New()
	d.Register(property.NewHandler())

	b := buffer.FromString(":PROPERTIES:\n:N: x\n:END:\n")
	ctx := execctx.New(b)
	ctx.Cursor = cursor.AtPoint(b, buffer.Point{Line: 1})

	res := d.Dispatch(handler.Action{Name: property.ActionInsertContinuation}, ctx)
	if !res.IsOK() {
		t.Fatalf("dispatch failed: %v", res.Error)
	}
	if got, want := b.Text(), ":PROPERTIES:\n:N: x\n:N+: \n:END:\n"; got != want {
		t.Errorf("buffer after dispatch:\n%q\nwant:\n%q", got, want)
	}
}

func TestDispatchUnknownNamespace(t *testing.T) {
	d := New()

	res := d.Dispatch(handler.Action{Name: "nosuch.thing"}, nil)
	if !res.IsError() {
		t.Error("expected an error for an unregistered namespace")
	}
}

func TestDispatchUnknownAction(t *testing.T) {
	d := New()
	d.Register(property.NewHandler())

	res := d.Dispatch(handler.Action{Name: "property.bogus"}, nil)
	if !res.IsError() {
		t.Error("expected an error for an unknown action")
	}
}

func TestNamespaceOf(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"property.fill", "property"},
		{"property.insertContinuation", "property"},
		{"bare", "bare"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := namespaceOf(tt.name); got != tt.want {
			t.Errorf("namespaceOf(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
