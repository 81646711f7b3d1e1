package db

type Conn interface {
	Close() error
	Name() string
}

type Connection struct{}

func (c *Connection) Close() error { return nil }
func (c *Connection) Name() string { return "conn" }

type Pooled struct {
	*Connection
}

func (p Pooled) Name() string { return "pooled" }
