package drecord

import (
	"dbfconv/dbf/dfield"
	"dbfconv/ds"
	"github.com/axgle/mahonia"
	"github.com/pkg/errors"
)

// Decode turns one fixed-width record's raw bytes into typed values
// using the schema's offsets and lengths. Byte 0 is the deletion
// marker; '*' flags a logically deleted row.
func Decode(
	raw []byte,
	descriptors []dfield.Descriptor,
	number int,
	decoder mahonia.Decoder,
) (*Record, error) {
	if len(raw) == 0 {
		err := errors.Wrap(ErrLayout, "drecord.Decode error: empty record")
		return nil, err
	}

	record := Record{
		Number:  number,
		Deleted: raw[0] == dfield.Asterisk,
		Values:  ds.NewLinkedHashMap[string, any](),
	}
	for _, descriptor := range descriptors {
		end := descriptor.Offset + descriptor.Length
		if end > len(raw) {
			err := errors.Wrapf(
				ErrLayout,
				`drecord.Decode error: field "%s" ends at byte "%d" of a "%d"-byte record`,
				descriptor.Name, end, len(raw),
			)
			return nil, err
		}
		value, err := dfield.ConvertValue(descriptor, raw[descriptor.Offset:end], decoder)
		if err != nil {
			// imperfect attribute data is common in the wild; one bad
			// field must not discard the row
			record.Faults = append(
				record.Faults,
				Fault{FieldName: descriptor.Name, Err: err},
			)
			value = nil
		}
		record.Values.Put(descriptor.Name, value)
	}

	return &record, nil
}
