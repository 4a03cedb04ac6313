package dfield

import (
	"bytes"
	"io"

	"dbfconv/dbf/dheader"
	"dbfconv/dbf/lbytes"
	"dbfconv/ds"
	"github.com/pkg/errors"
)

// DecodeDescriptor reads one 32-byte descriptor entry. Layout: a
// null-terminated name of up to 11 bytes, a type-code byte, 4 reserved
// bytes, a length byte, a decimal-count byte, and 14 reserved bytes.
func DecodeDescriptor(bs []byte, offset int) Descriptor {
	nameEnd := bytes.IndexByte(bs[:NameSize], Nul)
	if nameEnd == -1 {
		nameEnd = NameSize
	}
	return Descriptor{
		Name:         string(bs[:nameEnd]),
		Type:         FieldType(bs[NameSize]),
		Length:       int(bs[16]),
		DecimalCount: int(bs[17]),
		Offset:       offset,
	}
}

// DecodeDescriptors consumes the whole descriptor block plus its 1-byte
// terminator, leaving the reader at the first byte of record data.
func DecodeDescriptors(reader *lbytes.Reader, header dheader.Header) ([]Descriptor, error) {
	count := header.NumberOfFields()
	blockLength := header.HeaderLength - dheader.Size
	block, err := reader.ReadBytes(blockLength)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			err := errors.Wrapf(
				ErrSchema,
				`dfield.DecodeDescriptors error: "%d" descriptors need "%d" bytes`,
				count, blockLength,
			)
			return nil, err
		}
		err := errors.Wrap(err, "dfield.DecodeDescriptors error")
		return nil, err
	}

	chunks := ds.MakeChunks(block[:count*dheader.FieldDescriptorSize], dheader.FieldDescriptorSize)
	descriptors := make([]Descriptor, 0, count)
	offset := 1 // record byte 0 is the deletion marker
	for _, chunk := range chunks {
		descriptor := DecodeDescriptor(chunk, offset)
		offset += descriptor.Length
		descriptors = append(descriptors, descriptor)
	}

	return descriptors, nil
}
