package uri

import (
	"strconv"
	"strings"
)

// Set is an ASCII-safe percent-encoding set: a predicate over bytes that
// must be percent-encoded. Named sets mirror the WHATWG-style "encode
// set" idiom the header/cookie/multipart code reuses for different wire
// contexts (query, userinfo, header-value).
type Set func(b byte) bool

func isUnreserved(b byte) bool {
	return b >= 'a' && b <= 'z' ||
		b >= 'A' && b <= 'Z' ||
		b >= '0' && b <= '9' ||
		b == '-' || b == '.' || b == '_' || b == '~'
}

// Userinfo is the percent-encode set for the URI userinfo production
// (RFC 3986 §3.2.1), reused by the cookie encoder for name/value bytes.
func Userinfo(b byte) bool {
	if isUnreserved(b) {
		return false
	}

	switch b {
	case '!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', '=', ':':
		return false
	default:
		return true
	}
}

// Query is the percent-encode set for the URI query production.
func Query(b byte) bool {
	if isUnreserved(b) {
		return false
	}

	switch b {
	case '!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', ':', '@', '/', '?':
		return false
	default:
		return true
	}
}

// HeaderValue is the percent-encode set used for RFC 5987/8187
// `ext-value` encoding (Content-Disposition filename*).
func HeaderValue(b byte) bool {
	return !isUnreserved(b)
}

const hex = "0123456789ABCDEF"

// Encode percent-encodes the UTF-8 bytes of s using set.
func Encode(s string, set Set) string {
	var needsEncoding bool

	for i := 0; i < len(s); i++ {
		if set(s[i]) {
			needsEncoding = true

			break
		}
	}

	if !needsEncoding {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) * 3)

	for i := 0; i < len(s); i++ {
		c := s[i]
		if set(c) {
			b.WriteByte('%')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0xf])
		} else {
			b.WriteByte(c)
		}
	}

	return b.String()
}

// Decode reverses Encode (and any standard percent-encoding), ignoring
// malformed escapes by passing them through literally.
func Decode(s string) string {
	if !strings.ContainsRune(s, '%') {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) {
			if v, err := strconv.ParseUint(s[i+1:i+3], 16, 8); err == nil {
				b.WriteByte(byte(v))
				i += 2

				continue
			}
		}

		b.WriteByte(s[i])
	}

	return b.String()
}

// IsASCII reports whether s contains only ASCII bytes.
func IsASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}

	return true
}
