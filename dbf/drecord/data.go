package drecord

import (
	"dbfconv/ds"
	"github.com/pkg/errors"
)

type (
	// Record is one decoded row of the attribute table. Values keep the
	// declared field order. Ownership passes to the caller on decode;
	// nothing here aliases the reader's scratch buffer.
	Record struct {
		// Number is the 1-based position of the row in the file.
		Number  int
		Deleted bool
		Values  *ds.LinkedHashMap[string, any]
		// Faults lists the fields whose bytes did not parse as their
		// declared type. Those fields decode to nil; a fault never
		// aborts the record.
		Faults []Fault
	}
	Fault struct {
		FieldName string
		Err       error
	}
)

var ErrLayout = errors.New("record bytes shorter than the schema requires")

func (r Record) Value(fieldName string) (any, bool) {
	return r.Values.Get(fieldName)
}

func (r Record) MarshalJSON() ([]byte, error) {
	return r.Values.MarshalJSON()
}
