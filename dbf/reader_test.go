package dbf

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"dbfconv/dbf/dfield"
	"dbfconv/dbf/dheader"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encodeTable lays out a complete dBASE file: header, descriptor block
// with its 0x0D terminator, then one fixed-width record per row.
func encodeTable(descriptors []dfield.Descriptor, rows [][]string) []byte {
	recordLength := 1
	for _, descriptor := range descriptors {
		recordLength += descriptor.Length
	}
	header := dheader.Header{
		FileCode:        3,
		LastUpdateYear:  96,
		LastUpdateMonth: 5,
		LastUpdateDay:   4,
		NumberOfRecords: len(rows),
		HeaderLength:    dheader.Size + len(descriptors)*dheader.FieldDescriptorSize + 1,
		RecordLength:    recordLength,
	}

	bs := dheader.Encode(header)
	for _, descriptor := range descriptors {
		bs = append(bs, dfield.EncodeDescriptor(descriptor)...)
	}
	bs = append(bs, 0x0D)
	for _, row := range rows {
		bs = append(bs, ' ')
		for i, descriptor := range descriptors {
			bs = append(bs, dfield.EncodeValue(descriptor, row[i])...)
		}
	}
	return bs
}

func twoFieldDescriptors() []dfield.Descriptor {
	return []dfield.Descriptor{
		{Name: "NAME", Type: dfield.TypeCharacter, Length: 10},
		{Name: "STATE", Type: dfield.TypeCharacter, Length: 10},
	}
}

func TestReader_EndToEnd(t *testing.T) {
	descriptors := twoFieldDescriptors()
	rows := [][]string{
		{"Accomack", "VA"},
		{"Ada", "ID"},
		{"Adams", "CO"},
	}
	tableBytes := encodeTable(descriptors, rows)
	// 32 fixed + 2x32 descriptors + 1 terminator, then 1 marker + two
	// 10-byte fields per record
	assert.Equal(t, 97+3*21, len(tableBytes))

	reader, err := NewReader(StreamSource(bytes.NewReader(tableBytes)), DefaultOptions())
	require.NoError(t, err)
	defer reader.Close()

	assert.Equal(t, 2, reader.NumberOfFields())
	assert.Equal(t, 3, reader.NumberOfRecords())
	assert.Equal(t, 97, reader.Header().HeaderLength)
	assert.Equal(t, 21, reader.Header().RecordLength)

	for _, row := range rows {
		assert.True(t, reader.HasNext())
		record, err := reader.NextRecord()
		require.NoError(t, err)
		assert.False(t, record.Deleted)
		assert.Empty(t, record.Faults)

		name, _ := record.Value("NAME")
		state, _ := record.Value("STATE")
		assert.Equal(t, row[0], name)
		assert.Equal(t, row[1], state)
	}
	assert.False(t, reader.HasNext())

	_, err = reader.NextRecord()
	assert.ErrorIs(t, err, ErrNoRecordsAvailable)
}

func TestReader_ReadCounts(t *testing.T) {
	descriptors := twoFieldDescriptors()
	rows := [][]string{
		{"Accomack", "VA"},
		{"Ada", "ID"},
	}
	reader, err := NewReader(
		StreamSource(bytes.NewReader(encodeTable(descriptors, rows))),
		DefaultOptions(),
	)
	require.NoError(t, err)
	defer reader.Close()

	assert.Equal(t, 0, reader.RecordsRead())
	_, err = reader.NextRecord()
	require.NoError(t, err)
	assert.Equal(t, 1, reader.RecordsRead())

	records, err := reader.ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, 2, records[0].Number)
	assert.Equal(t, 2, reader.RecordsRead())
}

func TestReader_ZeroRecords(t *testing.T) {
	reader, err := NewReader(
		StreamSource(bytes.NewReader(encodeTable(twoFieldDescriptors(), nil))),
		DefaultOptions(),
	)
	require.NoError(t, err)
	defer reader.Close()

	assert.False(t, reader.HasNext())
	_, err = reader.NextRecord()
	assert.ErrorIs(t, err, ErrNoRecordsAvailable)
}

func TestReader_CloseIsIdempotent(t *testing.T) {
	reader, err := NewReader(
		StreamSource(bytes.NewReader(encodeTable(twoFieldDescriptors(), [][]string{{"Ada", "ID"}}))),
		DefaultOptions(),
	)
	require.NoError(t, err)

	assert.NoError(t, reader.Close())
	assert.NoError(t, reader.Close())
	assert.False(t, reader.HasNext())

	_, err = reader.NextRecord()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestReader_TruncatedFileFailsConstruction(t *testing.T) {
	_, err := NewReader(
		StreamSource(bytes.NewReader(make([]byte, 20))),
		DefaultOptions(),
	)
	assert.ErrorIs(t, err, dheader.ErrTruncated)
}

func TestReader_TruncatedRecordData(t *testing.T) {
	tableBytes := encodeTable(twoFieldDescriptors(), [][]string{{"Ada", "ID"}})
	reader, err := NewReader(
		// drop the last 5 bytes of the single declared record
		StreamSource(bytes.NewReader(tableBytes[:len(tableBytes)-5])),
		DefaultOptions(),
	)
	require.NoError(t, err)
	defer reader.Close()

	_, err = reader.NextRecord()
	assert.ErrorIs(t, err, dheader.ErrTruncated)
}

func TestReader_SkipDeleted(t *testing.T) {
	descriptors := twoFieldDescriptors()
	tableBytes := encodeTable(descriptors, [][]string{
		{"Accomack", "VA"},
		{"Ada", "ID"},
		{"Adams", "CO"},
	})
	// flag the second record as deleted
	tableBytes[97+21] = dfield.Asterisk

	options := DefaultOptions()
	options.SkipDeleted = true
	reader, err := NewReader(StreamSource(bytes.NewReader(tableBytes)), options)
	require.NoError(t, err)
	defer reader.Close()

	records, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 1, records[0].Number)
	assert.Equal(t, 3, records[1].Number)
}

func TestReader_DeletedFlagStillExposed(t *testing.T) {
	tableBytes := encodeTable(twoFieldDescriptors(), [][]string{{"Ada", "ID"}})
	tableBytes[97] = dfield.Asterisk

	reader, err := NewReader(StreamSource(bytes.NewReader(tableBytes)), DefaultOptions())
	require.NoError(t, err)
	defer reader.Close()

	record, err := reader.NextRecord()
	require.NoError(t, err)
	assert.True(t, record.Deleted)
}

func TestReader_TypedValues(t *testing.T) {
	descriptors := []dfield.Descriptor{
		{Name: "NAME", Type: dfield.TypeCharacter, Length: 8},
		{Name: "POP", Type: dfield.TypeNumber, Length: 8},
		{Name: "AREA", Type: dfield.TypeNumber, Length: 8, DecimalCount: 2},
		{Name: "FOUNDED", Type: dfield.TypeDate, Length: 8},
		{Name: "COASTAL", Type: dfield.TypeLogical, Length: 1},
	}
	rows := [][]string{
		{"Ada", "464291", "2694.16", "18641222", "F"},
	}
	reader, err := NewReader(
		StreamSource(bytes.NewReader(encodeTable(descriptors, rows))),
		DefaultOptions(),
	)
	require.NoError(t, err)
	defer reader.Close()

	record, err := reader.NextRecord()
	require.NoError(t, err)
	assert.Empty(t, record.Faults)

	population, _ := record.Value("POP")
	area, _ := record.Value("AREA")
	founded, _ := record.Value("FOUNDED")
	coastal, _ := record.Value("COASTAL")
	assert.Equal(t, int64(464291), population)
	assert.Equal(t, 2694.16, area)
	assert.Equal(t, time.Date(1864, 12, 22, 0, 0, 0, 0, time.UTC), founded)
	assert.Equal(t, false, coastal)
}

func TestReader_GarbageNumericBecomesNull(t *testing.T) {
	descriptors := []dfield.Descriptor{
		{Name: "POP", Type: dfield.TypeNumber, Length: 8},
		{Name: "STATE", Type: dfield.TypeCharacter, Length: 4},
	}
	reader, err := NewReader(
		StreamSource(bytes.NewReader(encodeTable(descriptors, [][]string{
			{"oops", "VA"},
			{"17", "ID"},
		}))),
		DefaultOptions(),
	)
	require.NoError(t, err)
	defer reader.Close()

	first, err := reader.NextRecord()
	require.NoError(t, err)
	require.Len(t, first.Faults, 1)
	assert.Equal(t, "POP", first.Faults[0].FieldName)
	assert.ErrorIs(t, first.Faults[0].Err, dfield.ErrConversion)

	population, present := first.Value("POP")
	assert.True(t, present)
	assert.Nil(t, population)
	state, _ := first.Value("STATE")
	assert.Equal(t, "VA", state)

	// the stream keeps going past the bad field
	second, err := reader.NextRecord()
	require.NoError(t, err)
	assert.Empty(t, second.Faults)
	population, _ = second.Value("POP")
	assert.Equal(t, int64(17), population)
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counties.dbf")
	require.NoError(
		t,
		os.WriteFile(path, encodeTable(twoFieldDescriptors(), [][]string{{"Ada", "ID"}}), 0644),
	)

	reader, err := Open(path, DefaultOptions())
	require.NoError(t, err)
	defer reader.Close()

	assert.Equal(t, path, reader.DisplayName())
	assert.Equal(t, 1, reader.NumberOfRecords())
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := NewReader(FileSource(filepath.Join(t.TempDir(), "nope.dbf")), DefaultOptions())
	assert.ErrorIs(t, err, ErrSourceNotFound)
}

func TestOpen_URL(t *testing.T) {
	tableBytes := encodeTable(twoFieldDescriptors(), [][]string{{"Ada", "ID"}})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write(tableBytes)
	}))
	defer server.Close()

	reader, err := Open(server.URL, DefaultOptions())
	require.NoError(t, err)
	defer reader.Close()

	record, err := reader.NextRecord()
	require.NoError(t, err)
	name, _ := record.Value("NAME")
	assert.Equal(t, "Ada", name)
}

func TestOpen_URLNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	_, err := Open(server.URL, DefaultOptions())
	assert.ErrorIs(t, err, ErrProtocol)
}

func TestReader_WrappedErrorsKeepCause(t *testing.T) {
	_, err := NewReader(Source{}, DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidSource)
	assert.NotNil(t, errors.Cause(err))
}
