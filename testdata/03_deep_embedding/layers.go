package layers

type Greeter interface {
	Hello() string
	Bye() string
}

type A struct{}

func (A) Hello() string { return "a" }
func (A) Bye() string   { return "a" }

type B struct {
	A
}

func (B) Hello() string { return "b" }

type C struct {
	B
}

func (C) Bye() string { return "c" }
