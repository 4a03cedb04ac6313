package lbytes

import (
	"bufio"
)

type (
	// Reader pulls little-endian values off a forward-only byte stream.
	// The underlying stream is always buffered; record-by-record reading
	// over an unbuffered file handle is several times slower.
	Reader struct {
		inner *bufio.Reader
	}
	Instruction struct {
		Key          string
		ReadFunction ReadFunction
	}
	ReadFunction func() (any, error)
)
