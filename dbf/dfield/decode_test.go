package dfield

import (
	"testing"

	"dbfconv/dbf/dheader"
	"dbfconv/dbf/lbytes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func descriptorBlock(descriptors []Descriptor) []byte {
	bs := make([]byte, 0, len(descriptors)*dheader.FieldDescriptorSize+1)
	for _, descriptor := range descriptors {
		bs = append(bs, EncodeDescriptor(descriptor)...)
	}
	return append(bs, 0x0D)
}

func TestDecodeDescriptor(t *testing.T) {
	bs := EncodeDescriptor(Descriptor{
		Name:         "POPULATION",
		Type:         TypeNumber,
		Length:       10,
		DecimalCount: 0,
	})
	require.Len(t, bs, dheader.FieldDescriptorSize)

	descriptor := DecodeDescriptor(bs, 7)
	assert.Equal(t, "POPULATION", descriptor.Name)
	assert.Equal(t, TypeNumber, descriptor.Type)
	assert.Equal(t, 10, descriptor.Length)
	assert.Equal(t, 0, descriptor.DecimalCount)
	assert.Equal(t, 7, descriptor.Offset)
}

func TestDecodeDescriptor_ElevenByteName(t *testing.T) {
	// an 11-byte name fills the slot with no null terminator
	bs := EncodeDescriptor(Descriptor{Name: "COUNTY_FIPS", Type: TypeCharacter, Length: 5})
	descriptor := DecodeDescriptor(bs, 1)
	assert.Equal(t, "COUNTY_FIPS", descriptor.Name)
}

func TestDecodeDescriptors_OffsetsAreCumulative(t *testing.T) {
	declared := []Descriptor{
		{Name: "NAME", Type: TypeCharacter, Length: 10},
		{Name: "POP", Type: TypeNumber, Length: 8},
		{Name: "AREA", Type: TypeNumber, Length: 12, DecimalCount: 3},
	}
	header := dheader.Header{
		HeaderLength: dheader.Size + len(declared)*dheader.FieldDescriptorSize + 1,
	}
	reader := lbytes.NewBytesReader(descriptorBlock(declared))

	descriptors, err := DecodeDescriptors(reader, header)
	require.NoError(t, err)
	require.Len(t, descriptors, 3)

	// field 0 starts at 1, after the deletion marker
	assert.Equal(t, 1, descriptors[0].Offset)
	assert.Equal(t, 11, descriptors[1].Offset)
	assert.Equal(t, 19, descriptors[2].Offset)
	assert.Equal(t, 3, descriptors[2].DecimalCount)
}

func TestDecodeDescriptors_LeavesReaderAtRecordData(t *testing.T) {
	declared := []Descriptor{{Name: "NAME", Type: TypeCharacter, Length: 4}}
	header := dheader.Header{HeaderLength: dheader.Size + dheader.FieldDescriptorSize + 1}
	reader := lbytes.NewBytesReader(append(descriptorBlock(declared), 0xEE))

	_, err := DecodeDescriptors(reader, header)
	require.NoError(t, err)

	next, err := reader.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0xEE), next)
}

func TestDecodeDescriptors_ShortBlock(t *testing.T) {
	header := dheader.Header{HeaderLength: dheader.Size + 2*dheader.FieldDescriptorSize + 1}
	reader := lbytes.NewBytesReader(make([]byte, dheader.FieldDescriptorSize))

	_, err := DecodeDescriptors(reader, header)
	assert.ErrorIs(t, err, ErrSchema)
}

func TestDecodeDescriptors_RoundTripCount(t *testing.T) {
	for _, count := range []int{1, 2, 5, 32} {
		declared := make([]Descriptor, 0, count)
		for i := 0; i < count; i++ {
			declared = append(declared, Descriptor{Name: "F", Type: TypeCharacter, Length: 3})
		}
		header := dheader.Header{
			HeaderLength: dheader.Size + count*dheader.FieldDescriptorSize + 1,
		}
		require.Equal(t, count, header.NumberOfFields())

		descriptors, err := DecodeDescriptors(lbytes.NewBytesReader(descriptorBlock(declared)), header)
		require.NoError(t, err)
		assert.Len(t, descriptors, count)
	}
}
