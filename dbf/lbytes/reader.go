package lbytes

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
)

func NewReader(r io.Reader) *Reader {
	return &Reader{
		inner: bufio.NewReader(r),
	}
}

func NewBytesReader(bs []byte) *Reader {
	return NewReader(bytes.NewReader(bs))
}

func (b *Reader) ReadBytes(n int) ([]byte, error) {
	bs := make([]byte, n)
	// return early to avoid EOF error
	// when the reader's pointer reached end of file
	// while the number of next bytes to read is 0
	if n == 0 {
		return bs, nil
	}
	_, err := io.ReadFull(b.inner, bs)
	if err != nil {
		return nil, err
	}
	return bs, nil
}

// ReadInto fills bs entirely from the stream, for callers that reuse
// one scratch buffer across reads.
func (b *Reader) ReadInto(bs []byte) error {
	_, err := io.ReadFull(b.inner, bs)
	return err
}

func (b *Reader) ReadByte() (byte, error) {
	return b.inner.ReadByte()
}

func (b *Reader) ReadUint16() (uint16, error) {
	bs, err := b.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(bs), nil
}

func (b *Reader) ReadInt32() (int32, error) {
	bs, err := b.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	result := binary.LittleEndian.Uint32(bs)
	return int32(result), nil
}

func (b *Reader) ReadString(n int) (string, error) {
	bs, err := b.ReadBytes(n)
	if err != nil {
		return "", err
	}

	return string(bs), nil
}

// Skip consumes and discards exactly n bytes.
func (b *Reader) Skip(n int) error {
	discarded, err := b.inner.Discard(n)
	if err != nil {
		return err
	}
	if discarded < n {
		return io.ErrUnexpectedEOF
	}
	return nil
}
