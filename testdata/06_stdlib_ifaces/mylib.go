package mylib

import "fmt"

var _ fmt.Stringer = Pretty{}

type MyError struct {
	Msg string
}

func (e MyError) Error() string { return e.Msg }

type Pretty struct {
	Name string
}

func (p Pretty) String() string { return p.Name }
