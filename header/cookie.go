package header

import (
	"strings"

	"github.com/xraph/httpc/uri"
)

// Cookie is one name/value pair as carried in a request's Cookie header
// or accumulated in a builder's jar.
type Cookie struct {
	Name  string
	Value string
}

// FormatCookieHeader joins cookies into a single Cookie header value,
// percent-encoding both name and value with the userinfo set and joining
// with "; " — the name is deliberately encoded too, which a strict
// RFC 6265 reading would not do.
func FormatCookieHeader(cookies []Cookie) string {
	parts := make([]string, len(cookies))
	for i, c := range cookies {
		parts[i] = uri.Encode(c.Name, uri.Userinfo) + "=" + uri.Encode(c.Value, uri.Userinfo)
	}

	return strings.Join(parts, "; ")
}

// ParseCookieHeader splits a request Cookie header value back into pairs,
// percent-decoding each side.
func ParseCookieHeader(raw string) []Cookie {
	if raw == "" {
		return nil
	}

	segments := strings.Split(raw, ";")
	cookies := make([]Cookie, 0, len(segments))

	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}

		name, value, _ := strings.Cut(seg, "=")
		cookies = append(cookies, Cookie{
			Name:  uri.Decode(strings.TrimSpace(name)),
			Value: uri.Decode(strings.TrimSpace(value)),
		})
	}

	return cookies
}

// SetCookie is one Set-Cookie response header, parsed for the attributes
// the client cares about (name/value plus the handful of attributes a
// non-persistent, single-client-lifetime jar needs).
type SetCookie struct {
	Name     string
	Value    string
	Domain   string
	Path     string
	Secure   bool
	HTTPOnly bool
}

// ParseSetCookie parses a single Set-Cookie header value.
func ParseSetCookie(raw string) (SetCookie, bool) {
	parts := strings.Split(raw, ";")
	if len(parts) == 0 {
		return SetCookie{}, false
	}

	name, value, ok := strings.Cut(strings.TrimSpace(parts[0]), "=")
	if !ok {
		return SetCookie{}, false
	}

	sc := SetCookie{Name: strings.TrimSpace(name), Value: strings.TrimSpace(value)}

	for _, attr := range parts[1:] {
		attr = strings.TrimSpace(attr)
		key, val, _ := strings.Cut(attr, "=")

		switch strings.ToLower(key) {
		case "domain":
			sc.Domain = val
		case "path":
			sc.Path = val
		case "secure":
			sc.Secure = true
		case "httponly":
			sc.HTTPOnly = true
		}
	}

	return sc, true
}
