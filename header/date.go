package header

import "time"

// HTTPDateLayout is the IMF-fixdate format mandated by RFC 7231 §7.1.1.1.
const HTTPDateLayout = "Mon, 02 Jan 2006 15:04:05 GMT"

// FormatDate renders t in the HTTP-date form used by Date/Last-Modified/
// If-Modified-Since headers.
func FormatDate(t time.Time) string {
	return t.UTC().Format(HTTPDateLayout)
}

// ParseDate parses an HTTP-date header value, tolerating the two obsolete
// formats RFC 7231 still asks recipients to accept.
func ParseDate(raw string) (time.Time, error) {
	for _, layout := range []string{
		HTTPDateLayout,
		time.RFC850,
		time.ANSIC,
	} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, &time.ParseError{Layout: HTTPDateLayout, Value: raw}
}

// DateTagMode selects which header SetDate writes.
type DateTagMode int

const (
	DateHeader DateTagMode = iota
	IfModifiedSince
	IfUnmodifiedSince
	LastModifiedHeader
)

func (m DateTagMode) HeaderName() string {
	switch m {
	case IfModifiedSince:
		return "If-Modified-Since"
	case IfUnmodifiedSince:
		return "If-Unmodified-Since"
	case LastModifiedHeader:
		return "Last-Modified"
	default:
		return "Date"
	}
}
