package dfield

import (
	"bytes"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/axgle/mahonia"
	"github.com/pkg/errors"
)

// IsBlank reports the "empty field" convention of the dBASE family:
// a value whose bytes are entirely spaces or entirely asterisks carries
// no data, never the literal text.
func IsBlank(bs []byte) bool {
	if len(bs) == 0 {
		return true
	}
	allOf := func(marker byte) bool {
		for _, b := range bs {
			if b != marker {
				return false
			}
		}
		return true
	}
	return allOf(Space) || allOf(Asterisk)
}

// ExtractText turns the fixed-width bytes of a field into trimmed text.
// The value ends at the first zero byte; padding spaces on either side
// are not data. Bytes that are not valid UTF-8 go through the decoder
// when one is configured, and degrade to a raw byte string otherwise —
// malformed text never fails the extraction.
func ExtractText(bs []byte, decoder mahonia.Decoder) string {
	end := bytes.IndexByte(bs, Nul)
	if end == -1 {
		end = len(bs)
	}
	bs = bs[:end]
	if !utf8.Valid(bs) && decoder != nil {
		return strings.TrimSpace(decoder.ConvertString(string(bs)))
	}
	return strings.TrimSpace(string(bs))
}

// ConvertValue decodes one field's raw bytes into a typed value:
// string, int64, float64, time.Time, bool, or nil for a blank field.
// A parse failure wraps ErrConversion; the caller decides whether that
// is fatal (record decoding treats it as a per-field fault).
func ConvertValue(descriptor Descriptor, raw []byte, decoder mahonia.Decoder) (any, error) {
	if IsBlank(raw) {
		return nil, nil
	}
	text := ExtractText(raw, decoder)
	if text == "" {
		return nil, nil
	}

	switch descriptor.Type {
	case TypeNumber, TypeFloat:
		return convertNumber(descriptor, text)
	case TypeDate:
		return convertDate(descriptor, text)
	case TypeLogical:
		return convertLogical(descriptor, text)
	default:
		// character data, and the fallback for type codes this decoder
		// does not know
		return text, nil
	}
}

func convertNumber(descriptor Descriptor, text string) (any, error) {
	if descriptor.DecimalCount == 0 && !strings.ContainsRune(text, '.') {
		value, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			err := errors.Wrapf(
				ErrConversion,
				`convertNumber error: "%s" is not an integer for field "%s"`,
				text, descriptor.Name,
			)
			return nil, err
		}
		return value, nil
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		err := errors.Wrapf(
			ErrConversion,
			`convertNumber error: "%s" is not a number for field "%s"`,
			text, descriptor.Name,
		)
		return nil, err
	}
	return value, nil
}

func convertDate(descriptor Descriptor, text string) (any, error) {
	value, err := time.Parse("20060102", text)
	if err != nil {
		err := errors.Wrapf(
			ErrConversion,
			`convertDate error: "%s" is not a YYYYMMDD date for field "%s"`,
			text, descriptor.Name,
		)
		return nil, err
	}
	return value, nil
}

func convertLogical(descriptor Descriptor, text string) (any, error) {
	switch text[0] {
	case 'T', 't', 'Y', 'y':
		return true, nil
	case 'F', 'f', 'N', 'n':
		return false, nil
	case '?':
		return nil, nil
	}
	err := errors.Wrapf(
		ErrConversion,
		`convertLogical error: "%s" is not a logical value for field "%s"`,
		text, descriptor.Name,
	)
	return nil, err
}
