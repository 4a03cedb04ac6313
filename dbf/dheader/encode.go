package dheader

import (
	"dbfconv/dbf/lbytes"
	"dbfconv/ds"
)

func Encode(header Header) []byte {
	bs := make([]byte, 0, Size)
	bs = append(
		bs,
		byte(header.FileCode),
		byte(header.LastUpdateYear),
		byte(header.LastUpdateMonth),
		byte(header.LastUpdateDay),
	)
	bs = append(bs, lbytes.EncodeInt32(int32(header.NumberOfRecords))...)
	bs = append(bs, lbytes.EncodeUint16(uint16(header.HeaderLength))...)
	bs = append(bs, lbytes.EncodeUint16(uint16(header.RecordLength))...)
	bs = append(bs, ds.Repeat(16, byte(0))...)
	bs = append(bs, byte(header.TableFlags), byte(header.LanguageDriver))
	bs = append(bs, ds.Repeat(2, byte(0))...)
	return bs
}
