package dbf

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"dbfconv/dbf/dfield"
	"dbfconv/dbf/drecord"
	"dbfconv/ds"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// ToLinkedHashMap re-keys a record's values for serialization: field
// order preserved, dates flattened to YYYY-MM-DD strings.
func ToLinkedHashMap(record drecord.Record) *ds.LinkedHashMap[string, any] {
	values := ds.NewLinkedHashMap[string, any]()
	for _, key := range record.Values.Keys() {
		value, _ := record.Values.Get(key)
		if date, ok := value.(time.Time); ok {
			value = date.Format("2006-01-02")
		}
		values.Put(key, value)
	}
	return values
}

// ToJSON renders records as an indented JSON array of objects whose
// keys follow the declared field order.
func ToJSON(records []*drecord.Record) ([]byte, error) {
	maps := lo.Map(
		records,
		func(record *drecord.Record, _ int) *ds.LinkedHashMap[string, any] {
			return ToLinkedHashMap(*record)
		},
	)
	resultBytes, err := json.MarshalIndent(maps, "", "  ")
	if err != nil {
		err := errors.Wrap(err, "dbf.ToJSON error")
		return nil, err
	}
	return resultBytes, nil
}

// ToCSV renders records as CSV with a header row of field names.
func ToCSV(fields []dfield.Descriptor, records []*drecord.Record) ([]byte, error) {
	buffer := bytes.Buffer{}
	writer := csv.NewWriter(&buffer)

	header := lo.Map(
		fields,
		func(descriptor dfield.Descriptor, _ int) string {
			return descriptor.Name
		},
	)
	if err := writer.Write(header); err != nil {
		err := errors.Wrap(err, "dbf.ToCSV error writing header")
		return nil, err
	}
	for _, record := range records {
		row := lo.Map(
			fields,
			func(descriptor dfield.Descriptor, _ int) string {
				value, _ := record.Values.Get(descriptor.Name)
				return FormatValue(value)
			},
		)
		if err := writer.Write(row); err != nil {
			err := errors.Wrapf(err, `dbf.ToCSV error writing record "%d"`, record.Number)
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		err := errors.Wrap(err, "dbf.ToCSV error")
		return nil, err
	}
	return buffer.Bytes(), nil
}

// FormatValue renders one typed field value as display text. Blank
// fields render as the empty string.
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case time.Time:
		return v.Format("2006-01-02")
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		if v {
			return "T"
		}
		return "F"
	default:
		return fmt.Sprint(v)
	}
}
