package adapter

import "io"

// IO defines an interface for reading bodies to enable mocking
//
//go:generate mockgen -source=io.go -destination=../mocks/io.go -package=mocks -mock_names=IO=MockIO
type IO interface {
	// ReadLimited reads at most limit bytes from r
	ReadLimited(r io.Reader, limit int64) ([]byte, error)
}

type stdIO struct{}

// NewIO returns an IO backed by the io package
func NewIO() IO {
	return stdIO{}
}

func (stdIO) ReadLimited(r io.Reader, limit int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, limit))
}
