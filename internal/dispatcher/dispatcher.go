// Package dispatcher routes named actions to namespace handlers.
//
// Handlers register under a namespace prefix ("property" for
// "property.fill"); dispatch resolves the prefix and delegates. This is
// the single seam between front ends (CLI, terminal UI) and editing
// behavior.
package dispatcher

import (
	"strings"
	"sync"

	"github.com/dshills/orgfill/internal/dispatcher/execctx"
	"github.com/dshills/orgfill/internal/dispatcher/handler"
)

// Dispatcher routes actions to registered namespace handlers.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]handler.NamespaceHandler
}

// New creates an empty dispatcher.
func New() *Dispatcher {
	return &Dispatcher{handlers: make(map[string]handler.NamespaceHandler)}
}

// Register adds a namespace handler. A handler registered for the same
// namespace replaces the previous one.
func (d *Dispatcher) Register(h handler.NamespaceHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[h.Namespace()] = h
}

// Dispatch routes the action to its namespace handler.
func (d *Dispatcher) Dispatch(action handler.Action, ctx *execctx.ExecutionContext) handler.Result {
	ns := namespaceOf(action.Name)

	d.mu.RLock()
	h, ok := d.handlers[ns]
	d.mu.RUnlock()

	if !ok {
		return handler.Errorf("no handler for namespace %q", ns)
	}
	if !h.CanHandle(action.Name) {
		return handler.Errorf("unknown action %q", action.Name)
	}
	return h.HandleAction(action, ctx)
}

// namespaceOf returns the prefix before the first dot.
func namespaceOf(name string) string {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return name
}
