package dfield

import (
	"dbfconv/dbf/dheader"
	"dbfconv/ds"
)

// EncodeDescriptor lays a descriptor back out as its 32-byte entry.
// Reserved bytes are written as zeroes.
func EncodeDescriptor(descriptor Descriptor) []byte {
	bs := make([]byte, 0, dheader.FieldDescriptorSize)
	name := []byte(descriptor.Name)
	if len(name) > NameSize {
		name = name[:NameSize]
	}
	bs = append(bs, name...)
	bs = append(bs, ds.Repeat(NameSize-len(name), byte(Nul))...)
	bs = append(bs, byte(descriptor.Type))
	bs = append(bs, ds.Repeat(4, byte(0))...)
	bs = append(bs, byte(descriptor.Length), byte(descriptor.DecimalCount))
	bs = append(bs, ds.Repeat(14, byte(0))...)
	return bs
}

// EncodeValue pads text with trailing spaces to the field's fixed
// width, truncating when the text is too long.
func EncodeValue(descriptor Descriptor, text string) []byte {
	bs := []byte(text)
	if len(bs) > descriptor.Length {
		bs = bs[:descriptor.Length]
	}
	return append(bs, ds.Repeat(descriptor.Length-len(bs), byte(Space))...)
}
