package dbf

import (
	"io"

	"dbfconv/dbf/dfield"
	"dbfconv/dbf/dheader"
	"dbfconv/dbf/drecord"
	"dbfconv/dbf/lbytes"
	"github.com/axgle/mahonia"
	"github.com/pkg/errors"
)

// Reader decodes one dBASE file record by record. Construction reads
// the header and field schema synchronously; a structural failure
// leaves no partially usable reader behind.
//
// A Reader is single-threaded by contract: the scratch buffer backing
// NextRecord is shared across calls, so concurrent use corrupts
// in-flight records. Callers needing sharing must synchronize outside.
type Reader struct {
	header            dheader.Header
	fields            []dfield.Descriptor
	closer            io.Closer
	reader            *lbytes.Reader
	decoder           mahonia.Decoder
	recordBuffer      []byte
	recordsRead       int
	open              bool
	skipDeleted       bool
	displayName       string
	sourceDescription string
}

// NewReader opens the source and decodes header and schema. The reader
// ends up positioned at the first byte of record data.
func NewReader(source Source, options Options) (*Reader, error) {
	rc, err := source.open()
	if err != nil {
		err := errors.Wrap(err, "dbf.NewReader error")
		return nil, err
	}
	reader := lbytes.NewReader(rc)

	header, err := dheader.Decode(reader)
	if err != nil {
		_ = rc.Close()
		err := errors.Wrapf(err, `dbf.NewReader error on "%s"`, source.Description())
		return nil, err
	}
	fields, err := dfield.DecodeDescriptors(reader, *header)
	if err != nil {
		_ = rc.Close()
		err := errors.Wrapf(err, `dbf.NewReader error on "%s"`, source.Description())
		return nil, err
	}

	decoder := mahonia.Decoder(nil)
	if options.Encoding != "" {
		decoder = mahonia.NewDecoder(options.Encoding)
	}
	displayName := options.DisplayName
	if displayName == "" {
		displayName = source.Description()
	}

	return &Reader{
		header:            *header,
		fields:            fields,
		closer:            rc,
		reader:            reader,
		decoder:           decoder,
		recordBuffer:      make([]byte, header.RecordLength),
		open:              true,
		skipDeleted:       options.SkipDeleted,
		displayName:       displayName,
		sourceDescription: source.Description(),
	}, nil
}

// Open is the path-or-URL convenience over DetectSource and NewReader.
func Open(ref string, options Options) (*Reader, error) {
	source, err := DetectSource(ref)
	if err != nil {
		err := errors.Wrap(err, "dbf.Open error")
		return nil, err
	}
	return NewReader(source, options)
}

func (r *Reader) Header() dheader.Header {
	return r.header
}

func (r *Reader) Fields() []dfield.Descriptor {
	return r.fields
}

func (r *Reader) NumberOfFields() int {
	return len(r.fields)
}

func (r *Reader) NumberOfRecords() int {
	return r.header.NumberOfRecords
}

func (r *Reader) RecordsRead() int {
	return r.recordsRead
}

func (r *Reader) DisplayName() string {
	return r.displayName
}

func (r *Reader) SourceDescription() string {
	return r.sourceDescription
}

// HasNext trusts the header's declared record count; it never touches
// the underlying channel.
func (r *Reader) HasNext() bool {
	return r.open && r.recordsRead < r.header.NumberOfRecords
}

// NextRecord stages the next fixed-width record in the reusable scratch
// buffer and decodes it. The returned record owns its values; nothing
// in it aliases the buffer.
func (r *Reader) NextRecord() (*drecord.Record, error) {
	if !r.open {
		err := errors.Wrapf(ErrClosed, `Reader.NextRecord error on "%s"`, r.displayName)
		return nil, err
	}
	if r.recordsRead >= r.header.NumberOfRecords {
		err := errors.Wrapf(
			ErrNoRecordsAvailable,
			`Reader.NextRecord error on "%s": "%d" records declared`,
			r.displayName, r.header.NumberOfRecords,
		)
		return nil, err
	}

	if err := r.reader.ReadInto(r.recordBuffer); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			err := errors.Wrapf(
				dheader.ErrTruncated,
				`Reader.NextRecord error on "%s": record "%d" shorter than "%d" bytes`,
				r.displayName, r.recordsRead+1, r.header.RecordLength,
			)
			return nil, err
		}
		err = errors.Wrapf(err, `Reader.NextRecord error on "%s"`, r.displayName)
		return nil, err
	}
	r.recordsRead++

	record, err := drecord.Decode(r.recordBuffer, r.fields, r.recordsRead, r.decoder)
	if err != nil {
		err := errors.Wrapf(err, `Reader.NextRecord error on "%s"`, r.displayName)
		return nil, err
	}
	return record, nil
}

// ReadAll drains the remaining records. Rows flagged deleted are
// excluded when the reader was opened with SkipDeleted.
func (r *Reader) ReadAll() ([]*drecord.Record, error) {
	records := make([]*drecord.Record, 0, r.header.NumberOfRecords-r.recordsRead)
	for r.HasNext() {
		record, err := r.NextRecord()
		if err != nil {
			err := errors.Wrap(err, "Reader.ReadAll error")
			return nil, err
		}
		if r.skipDeleted && record.Deleted {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// Close releases the channel and the scratch buffer. Idempotent; a
// closed reader is inert and cannot be reopened.
func (r *Reader) Close() error {
	if !r.open {
		return nil
	}
	r.open = false
	r.recordBuffer = nil
	if err := r.closer.Close(); err != nil {
		err := errors.Wrapf(err, `Reader.Close error on "%s"`, r.displayName)
		return err
	}
	return nil
}
