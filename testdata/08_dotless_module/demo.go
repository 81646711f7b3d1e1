package demo

type Entity interface {
	Display() string
}

type Base struct{}

func (Base) Display() string { return "base" }
