package io2

type Reader interface {
	Read(p []byte) (int, error)
}

type Closer interface {
	Close() error
}

type ReadCloser interface {
	Reader
	Closer
}

// NopCloser gets Read from the interface value it embeds.
type NopCloser struct {
	Reader
}

func (NopCloser) Close() error { return nil }
