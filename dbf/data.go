// Package dbf decodes dBASE (.dbf) attribute tables, the tabular half
// of the shapefile family: a fixed 32-byte header, a block of 32-byte
// field descriptors, and fixed-width data records.
package dbf

import (
	"github.com/pkg/errors"
)

type (
	// Options configures reader construction. The zero value reads
	// UTF-8 text and keeps deleted rows.
	Options struct {
		// Encoding names a codepage (GBK, CP437, ...) used to decode
		// character data whose bytes are not valid UTF-8. Empty means
		// no fallback decoder.
		Encoding string
		// DisplayName labels the reader in diagnostics; defaults to a
		// description of the source.
		DisplayName string
		// SkipDeleted excludes rows flagged deleted from ReadAll.
		// NextRecord still returns them with Deleted set.
		SkipDeleted bool
	}
)

func DefaultOptions() Options {
	return Options{
		Encoding:    "",
		DisplayName: "",
		SkipDeleted: false,
	}
}

var (
	ErrInvalidSource      = errors.New("nil or unrecognized source")
	ErrSourceNotFound     = errors.New("source file does not exist")
	ErrProtocol           = errors.New("remote source fetch failed")
	ErrClosed             = errors.New("reader is closed")
	ErrNoRecordsAvailable = errors.New("all declared records have been read")
)

// AcceptedContentTypes are the MIME types a remote source may declare.
// A response with no content type at all is accepted as-is.
var AcceptedContentTypes = []string{
	"application/dbase",
	"application/dbf",
	"application/octet-stream",
}
