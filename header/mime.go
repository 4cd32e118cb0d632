package header

import "strings"

// MIME is a parsed Content-Type value: the bare type/subtype plus its
// charset parameter, if any.
type MIME struct {
	Type    string // e.g. "application/json"
	Charset string // empty means "unspecified" (callers default to UTF-8)
}

// ParseMIME parses a raw Content-Type header value.
func ParseMIME(raw string) MIME {
	parts := strings.Split(raw, ";")
	m := MIME{Type: strings.ToLower(strings.TrimSpace(parts[0]))}

	for _, p := range parts[1:] {
		key, value, ok := strings.Cut(p, "=")
		if !ok {
			continue
		}

		if strings.EqualFold(strings.TrimSpace(key), "charset") {
			m.Charset = unquote(strings.TrimSpace(value))
		}
	}

	return m
}

// CharsetOrUTF8 returns the declared charset, defaulting to "utf-8" when
// the Content-Type omitted one.
func (m MIME) CharsetOrUTF8() string {
	if m.Charset == "" {
		return "utf-8"
	}

	return m.Charset
}
