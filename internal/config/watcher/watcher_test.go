package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherFiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[fill]\ncolumn = 70\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	fired := make(chan string, 1)
	w, err := New(path, func(p string) {
		select {
		case fired <- p:
		default:
		}
	}, WithDebounce(50*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("[fill]\ncolumn = 90\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case p := <-fired:
		if p != w.Path() {
			t.Errorf("handler got %q, want %q", p, w.Path())
		}
	case <-time.After(3 * time.Second):
		t.Fatal("watcher never fired")
	}
}

func TestWatcherIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	fired := make(chan string, 1)
	w, err := New(path, func(p string) { fired <- p }, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case p := <-fired:
		t.Errorf("watcher fired for unrelated file: %q", p)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(path, func(string) {})
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
}
