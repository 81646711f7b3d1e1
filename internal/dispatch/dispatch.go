// Package dispatch shows method dispatch through an interface-typed handle.
//
// Base implements both operations of Entity. Derived embeds Base and
// shadows Display; Kill is promoted from Base unchanged.
package dispatch

import (
	"fmt"
	"io"
	"log/slog"
)

// Lines written by the operations.
const (
	BaseDisplayLine    = "Display of Base class"
	DerivedDisplayLine = "Display of Derived class"
	KillLine           = "Kill Everyone"
)

// Entity is the handle both variants are invoked through.
type Entity interface {
	Display(w io.Writer)
	Kill(w io.Writer)
}

// Base provides the default implementation of every Entity operation.
type Base struct{}

// Display writes the base identifying line.
func (Base) Display(w io.Writer) {
	_, _ = fmt.Fprintln(w, BaseDisplayLine)
}

// Kill writes the kill line. Derived inherits it unchanged.
func (Base) Kill(w io.Writer) {
	_, _ = fmt.Fprintln(w, KillLine)
}

// Derived overrides Display and inherits Kill from Base.
type Derived struct {
	Base
}

// Display writes the derived identifying line, hiding Base.Display.
func (Derived) Display(w io.Writer) {
	_, _ = fmt.Fprintln(w, DerivedDisplayLine)
}

var (
	_ Entity = Base{}
	_ Entity = Derived{}
)

// Run binds a Derived value to an Entity handle and calls Display then Kill
// through it.
func Run(w io.Writer, logger *slog.Logger) {
	var d Derived
	var e Entity = d

	logger.Debug("dispatching through handle", "concrete_type", fmt.Sprintf("%T", e))
	e.Display(w)
	e.Kill(w)
	logger.Debug("dispatch complete")
}
