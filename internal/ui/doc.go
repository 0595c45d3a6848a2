// Package ui provides the interactive terminal interface.
//
// A Session owns a tcell screen and drives the event loop: it renders
// the document with a status line, routes editing keys to the buffer,
// and routes command keys (Alt-Q reflow, Alt-Enter continuation)
// through the action dispatcher.
package ui
