package dfield

import (
	"github.com/pkg/errors"
)

type (
	// Descriptor is one column of the attribute table: a 32-byte entry
	// in the block that follows the file header. The collection is
	// ordered and fixed for the lifetime of the file.
	Descriptor struct {
		Name         string    `json:"name"`
		Type         FieldType `json:"type"`
		Length       int       `json:"length"`
		DecimalCount int       `json:"decimal_count"`
		// Offset is the field's first byte within a record, derived
		// from the cumulative lengths of the fields before it. Field 0
		// starts at 1 to skip the deletion-marker byte.
		Offset int `json:"offset"`
	}
	FieldType byte
)

const (
	TypeCharacter = FieldType('C')
	TypeNumber    = FieldType('N')
	TypeFloat     = FieldType('F')
	TypeDate      = FieldType('D')
	TypeLogical   = FieldType('L')
)

const (
	NameSize = 11

	Space    = 0x20
	Asterisk = 0x2A
	Nul      = 0x00
)

var (
	ErrSchema     = errors.New("descriptor block shorter than the header declares")
	ErrConversion = errors.New("field value does not parse as its declared type")
)

func (t FieldType) String() string {
	return string(rune(t))
}
