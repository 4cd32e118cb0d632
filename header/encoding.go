// Package header implements typed, on-demand views over raw HTTP header
// bytes: Content-Encoding, Content-Disposition, Content-Type+charset,
// ETag, HTTP-date, and Cookie/Set-Cookie.
package header

import "strings"

// ContentEncoding is the parsed form of a Content-Encoding header value.
type ContentEncoding int

const (
	Identity ContentEncoding = iota
	Gzip
	Deflate
	Brotli
	unknownEncoding
)

// ParseContentEncoding parses a raw Content-Encoding header value. An
// empty value parses as Identity. An unrecognized value returns false
// and an encoding whose CanDecode reports false.
func ParseContentEncoding(raw string) (ContentEncoding, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "identity":
		return Identity, true
	case "gzip", "x-gzip":
		return Gzip, true
	case "deflate":
		return Deflate, true
	case "br":
		return Brotli, true
	default:
		return unknownEncoding, false
	}
}

// IsCompressed reports whether the encoding requires decompression.
func (c ContentEncoding) IsCompressed() bool { return c != Identity }

// CanDecode reports whether the body pipeline knows how to decode this encoding.
func (c ContentEncoding) CanDecode() bool { return c != unknownEncoding }

func (c ContentEncoding) String() string {
	switch c {
	case Identity:
		return "identity"
	case Gzip:
		return "gzip"
	case Deflate:
		return "deflate"
	case Brotli:
		return "br"
	default:
		return "unknown"
	}
}
