// Package handler provides the handler interface and result types for
// action dispatch.
package handler

import (
	"github.com/dshills/orgfill/internal/dispatcher/execctx"
)

// Action names an operation to execute, namespaced with a dot:
// "property.fill", "editor.undo".
type Action struct {
	Name string
	Args map[string]any
}

// NamespaceHandler handles all actions within a namespace.
// A namespace is the prefix before the first dot.
type NamespaceHandler interface {
	// Namespace returns the namespace prefix (e.g., "property").
	Namespace() string

	// CanHandle returns true if this handler can process the action.
	CanHandle(actionName string) bool

	// HandleAction handles an action within this namespace.
	HandleAction(action Action, ctx *execctx.ExecutionContext) Result
}
