package dheader

import (
	"time"

	"github.com/pkg/errors"
)

type (
	// Header is the fixed 32-byte block leading every dBASE file.
	// Reserved bytes are kept as read; encoding writes them back as zeroes.
	Header struct {
		FileCode        int    `json:"file_code"`
		LastUpdateYear  int    `json:"last_update_year"`
		LastUpdateMonth int    `json:"last_update_month"`
		LastUpdateDay   int    `json:"last_update_day"`
		NumberOfRecords int    `json:"number_of_records"`
		HeaderLength    int    `json:"header_length"`
		RecordLength    int    `json:"record_length"`
		Reserved        []byte `json:"reserved"`
		TableFlags      int    `json:"table_flags"`
		LanguageDriver  int    `json:"language_driver"`
		Reserved2       []byte `json:"reserved_2"`
	}
)

const (
	Size = 32
	// FieldDescriptorSize is the width of one entry in the descriptor
	// block that follows the header.
	FieldDescriptorSize = 32
	// MaxFileCode is the highest file-code byte this decoder recognizes
	// as a dBASE variant.
	MaxFileCode = 5
)

var (
	ErrUnrecognizedFormat = errors.New("unrecognized dBASE file code")
	ErrTruncated          = errors.New("truncated dBASE file")
	ErrMalformed          = errors.New("malformed dBASE header")
)

// NumberOfFields derives the descriptor count from the declared header
// length: the fixed header, the descriptors, and one terminator byte.
func (h Header) NumberOfFields() int {
	return (h.HeaderLength - 1 - Size) / FieldDescriptorSize
}

// LastUpdate converts the three date bytes into a calendar date.
// The year byte is an offset from 1900.
func (h Header) LastUpdate() time.Time {
	return time.Date(
		1900+h.LastUpdateYear,
		time.Month(h.LastUpdateMonth),
		h.LastUpdateDay,
		0, 0, 0, 0,
		time.UTC,
	)
}
