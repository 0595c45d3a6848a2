package org

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dshills/orgfill/internal/engine/buffer"
)

func TestContextAt(t *testing.T) {
	b := buffer.FromString(sampleDoc)

	ctx := ContextAt(b, 2)
	if ctx.Kind != PropertyContext {
		t.Errorf("line 2 should be PropertyContext, got %v", ctx.Kind)
	}
	if ctx.Element.Name.Base != "TITLE" {
		t.Errorf("unexpected element %+v", ctx.Element)
	}

	ctx = ContextAt(b, 7)
	if ctx.Kind != GenericContext {
		t.Errorf("body text should be GenericContext, got %v", ctx.Kind)
	}
}

func TestLogicalPropertyAt(t *testing.T) {
	b := buffer.FromString(sampleDoc)

	// From the primary record.
	lp, err := LogicalPropertyAt(b, 2)
	if err != nil {
		t.Fatal(err)
	}
	if lp.Name.Base != "TITLE" || lp.StartLine != 2 || lp.EndLine != 3 {
		t.Errorf("unexpected logical property %+v", lp)
	}
	if len(lp.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(lp.Records))
	}

	// From the continuation record: same resolution.
	lp2, err := LogicalPropertyAt(b, 3)
	if err != nil {
		t.Fatal(err)
	}
	if lp2.StartLine != lp.StartLine || lp2.EndLine != lp.EndLine {
		t.Errorf("resolution from continuation differs: %+v vs %+v", lp2, lp)
	}
}

func TestLogicalPropertyAtSingleRecord(t *testing.T) {
	b := buffer.FromString(sampleDoc)

	lp, err := LogicalPropertyAt(b, 4)
	if err != nil {
		t.Fatal(err)
	}
	if lp.Name.Base != "AUTHOR" || lp.StartLine != 4 || lp.EndLine != 4 {
		t.Errorf("unexpected logical property %+v", lp)
	}
}

func TestLogicalPropertyAtNotProperty(t *testing.T) {
	b := buffer.FromString(sampleDoc)

	if _, err := LogicalPropertyAt(b, 0); !errors.Is(err, ErrNoProperty) {
		t.Errorf("expected ErrNoProperty, got %v", err)
	}
}

func TestLogicalValueJoin(t *testing.T) {
	doc := ":PROPERTIES:\n" +
		":DESC: Alpha beta\n" +
		":DESC+: gamma delta\n" +
		`:DESC+: \nsecond part` + "\n" +
		":END:\n"
	b := buffer.FromString(doc)

	lp, err := LogicalPropertyAt(b, 1)
	if err != nil {
		t.Fatal(err)
	}
	want := `Alpha beta gamma delta\nsecond part`
	if got := lp.Value(); got != want {
		t.Errorf("Value() = %q, want %q", got, want)
	}
}

func TestLogicalValueSkipsEmptyRecords(t *testing.T) {
	doc := ":PROPERTIES:\n:X: one\n:X+:\n:X+: two\n:END:\n"
	b := buffer.FromString(doc)

	lp, err := LogicalPropertyAt(b, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := lp.Value(); got != "one two" {
		t.Errorf("Value() = %q, want %q", got, "one two")
	}
}

func TestKeys(t *testing.T) {
	b := buffer.FromString(sampleDoc)

	want := []string{"TITLE", "AUTHOR", "ID"}
	if got := Keys(b); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestKeysMatching(t *testing.T) {
	b := buffer.FromString(sampleDoc)

	got := KeysMatching(b, "ttl")
	if len(got) != 1 || got[0] != "TITLE" {
		t.Errorf("KeysMatching(ttl) = %v, want [TITLE]", got)
	}

	if got := KeysMatching(b, ""); len(got) != 3 {
		t.Errorf("empty query should return all keys, got %v", got)
	}

	if got := KeysMatching(b, "zzz"); len(got) != 0 {
		t.Errorf("no-match query should return nothing, got %v", got)
	}
}
