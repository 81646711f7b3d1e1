package entity

import "io"

type Entity interface {
	Display(w io.Writer)
	Kill(w io.Writer)
}

type Base struct{}

func (Base) Display(out io.Writer) {}
func (Base) Kill(out io.Writer)    {}

// Impostor has the right method names with the wrong signatures.
type Impostor struct{}

func (Impostor) Display() int { return 0 }
func (Impostor) Kill() int    { return 0 }

// Half has one right signature and one wrong.
type Half struct {
	Base
}

func (Half) Kill() int { return 0 }
