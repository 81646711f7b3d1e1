package shapes

type Entity interface {
	Display() string
	Kill() string
}

type Base struct{}

func (Base) Display() string { return "base" }
func (Base) Kill() string    { return "kill" }

type Derived struct {
	Base
}

func (Derived) Display() string { return "derived" }

// Plain declares every method itself.
type Plain struct{}

func (Plain) Display() string { return "plain" }
func (Plain) Kill() string    { return "plain" }
