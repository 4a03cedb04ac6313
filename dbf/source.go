package dbf

import (
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type (
	sourceKind int

	// Source is a caller-supplied reference to dBASE bytes: a local
	// file, a remote URL, or an already-open stream. The kind is fixed
	// at construction; opening never re-inspects the reference.
	Source struct {
		kind   sourceKind
		path   string
		url    *url.URL
		stream io.Reader
	}
)

const (
	sourceUnset sourceKind = iota
	sourceFile
	sourceURL
	sourceStream
)

func FileSource(path string) Source {
	return Source{kind: sourceFile, path: path}
}

func URLSource(u *url.URL) Source {
	return Source{kind: sourceURL, url: u}
}

func StreamSource(r io.Reader) Source {
	return Source{kind: sourceStream, stream: r}
}

// DetectSource resolves a string that may name either a local file or
// an http(s) URL. An existing file wins; otherwise the string must
// parse as an absolute http(s) URL.
func DetectSource(ref string) (Source, error) {
	if ref == "" {
		err := errors.Wrap(ErrInvalidSource, "DetectSource error: empty reference")
		return Source{}, err
	}
	if _, err := os.Stat(ref); err == nil {
		return FileSource(ref), nil
	}
	u, err := url.Parse(ref)
	if err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return URLSource(u), nil
	}
	err = errors.Wrapf(ErrSourceNotFound, `DetectSource error: "%s" is neither a file nor an http(s) URL`, ref)
	return Source{}, err
}

// Description labels the source for diagnostics.
func (s Source) Description() string {
	switch s.kind {
	case sourceFile:
		return s.path
	case sourceURL:
		return s.url.String()
	case sourceStream:
		return "stream"
	}
	return "unset source"
}

// open yields the raw byte stream at offset 0. The caller owns the
// closer; buffering is layered on top by the reader.
func (s Source) open() (io.ReadCloser, error) {
	switch s.kind {
	case sourceFile:
		f, err := os.Open(s.path)
		if err != nil {
			if os.IsNotExist(err) {
				err := errors.Wrapf(ErrSourceNotFound, `Source.open error: no file at "%s"`, s.path)
				return nil, err
			}
			err = errors.Wrapf(err, `Source.open error: file "%s"`, s.path)
			return nil, err
		}
		return f, nil
	case sourceURL:
		return s.openURL()
	case sourceStream:
		if s.stream == nil {
			err := errors.Wrap(ErrInvalidSource, "Source.open error: nil stream")
			return nil, err
		}
		return io.NopCloser(s.stream), nil
	}
	err := errors.Wrap(ErrInvalidSource, "Source.open error: zero-value source")
	return nil, err
}

func (s Source) openURL() (io.ReadCloser, error) {
	response, err := http.Get(s.url.String())
	if err != nil {
		err := errors.Wrapf(ErrProtocol, `Source.openURL error fetching "%s": %v`, s.url, err)
		return nil, err
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		_ = response.Body.Close()
		err := errors.Wrapf(
			ErrProtocol,
			`Source.openURL error: "%s" answered status "%s"`,
			s.url, response.Status,
		)
		return nil, err
	}
	contentType := response.Header.Get("Content-Type")
	// a server that omits the content type is trusted; a server that
	// declares a wrong one is not
	if contentType != "" && !lo.Contains(AcceptedContentTypes, mediaType(contentType)) {
		_ = response.Body.Close()
		err := errors.Wrapf(
			ErrProtocol,
			`Source.openURL error: "%s" declared content type "%s"`,
			s.url, contentType,
		)
		return nil, err
	}
	return response.Body, nil
}

// mediaType strips parameters like "; charset=..." off a content type.
func mediaType(contentType string) string {
	if i := strings.IndexByte(contentType, ';'); i != -1 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}
