package dheader

import (
	"io"

	"dbfconv/dbf/lbytes"
	"github.com/pkg/errors"
)

// Decode reads exactly 32 bytes off the reader and validates them.
// Reserved bytes are consumed regardless of whether they carry meaning,
// so the reader always ends up positioned at the first field descriptor.
func Decode(reader *lbytes.Reader) (*Header, error) {
	readByte := lbytes.CreateByteReadFunction(reader)
	readInt32 := lbytes.CreateInt32ReadFunction(reader)
	readUint16 := lbytes.CreateUint16ReadFunction(reader)
	read2Bytes := lbytes.CreateNBytesReadFunction(reader, 2)
	read16Bytes := lbytes.CreateNBytesReadFunction(reader, 16)

	headerInstructions := []lbytes.Instruction{
		{Key: "file_code", ReadFunction: readByte},
		{Key: "last_update_year", ReadFunction: readByte},
		{Key: "last_update_month", ReadFunction: readByte},
		{Key: "last_update_day", ReadFunction: readByte},
		{Key: "number_of_records", ReadFunction: readInt32},
		{Key: "header_length", ReadFunction: readUint16},
		{Key: "record_length", ReadFunction: readUint16},
		{Key: "reserved", ReadFunction: read16Bytes},
		{Key: "table_flags", ReadFunction: readByte},
		{Key: "language_driver", ReadFunction: readByte},
		{Key: "reserved_2", ReadFunction: read2Bytes},
	}

	header, err := lbytes.ExecuteInstructions[Header](headerInstructions)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			err := errors.Wrapf(ErrTruncated, "dheader.Decode error: fewer than %d bytes available", Size)
			return nil, err
		}
		err := errors.Wrap(err, "dheader.Decode error")
		return nil, err
	}
	if err := Validate(*header); err != nil {
		return nil, err
	}

	return header, nil
}

// Validate rejects headers no reader could be built on.
func Validate(header Header) error {
	if header.FileCode > MaxFileCode {
		err := errors.Wrapf(
			ErrUnrecognizedFormat,
			`dheader.Validate error: file code "%d" exceeds "%d"`,
			header.FileCode, MaxFileCode,
		)
		return err
	}
	if header.NumberOfRecords < 0 {
		err := errors.Wrapf(
			ErrMalformed,
			`dheader.Validate error: negative record count "%d"`,
			header.NumberOfRecords,
		)
		return err
	}
	if header.HeaderLength < Size+1 {
		err := errors.Wrapf(
			ErrMalformed,
			`dheader.Validate error: header length "%d" leaves no room for the descriptor block`,
			header.HeaderLength,
		)
		return err
	}
	return nil
}
