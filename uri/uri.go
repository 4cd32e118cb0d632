// Package uri implements the URI data model and path-joining rules the
// redirect driver and request builder need: scheme/authority/path/query
// decomposition, default-port elision, and filesystem-style relative path
// resolution.
package uri

import (
	"fmt"
	"strconv"
	"strings"
)

// URI is an absolute or authority-relative request target.
//
// Invariants: Host is non-empty for an absolute URI; Path is never empty
// (defaults to "/"). Port keeps whatever the parsed string carried;
// Authority and String elide it when it equals the scheme's default
// (80 for http, 443 for https).
type URI struct {
	Scheme string
	Host   string
	Port   string // empty means "use scheme default"
	Path   string
	Query  string // without the leading '?'; empty means "no query"
}

// DefaultPort returns the conventional port for scheme, or "" if unknown.
func DefaultPort(scheme string) string {
	switch strings.ToLower(scheme) {
	case "https", "wss":
		return "443"
	case "http", "ws":
		return "80"
	default:
		return ""
	}
}

// Parse decomposes a URI string into its components. Relative references
// (no scheme) are accepted and produce a URI with an empty Host.
func Parse(raw string) (*URI, error) {
	if raw == "" {
		return nil, fmt.Errorf("uri: empty string")
	}

	rest := raw
	u := &URI{}

	if i := strings.Index(rest, "://"); i >= 0 && validScheme(rest[:i]) {
		u.Scheme = strings.ToLower(rest[:i])
		rest = rest[i+3:]

		authority := rest
		if j := strings.IndexAny(rest, "/?"); j >= 0 {
			authority = rest[:j]
			rest = rest[j:]
		} else {
			rest = ""
		}

		if authority == "" {
			return nil, fmt.Errorf("uri: missing authority in %q", raw)
		}

		host, port, err := splitAuthority(authority)
		if err != nil {
			return nil, err
		}

		u.Host, u.Port = host, port
	} else if strings.HasPrefix(rest, "//") {
		rest = rest[2:]

		authority := rest
		if j := strings.IndexAny(rest, "/?"); j >= 0 {
			authority = rest[:j]
			rest = rest[j:]
		} else {
			rest = ""
		}

		host, port, err := splitAuthority(authority)
		if err != nil {
			return nil, err
		}

		u.Host, u.Port = host, port
	}

	if q := strings.IndexByte(rest, '?'); q >= 0 {
		u.Query = rest[q+1:]
		rest = rest[:q]
	}

	u.Path = rest
	if u.Path == "" {
		u.Path = "/"
	}

	if u.Host != "" && u.Scheme == "" {
		return nil, fmt.Errorf("uri: authority without scheme in %q", raw)
	}

	return u, nil
}

func validScheme(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return false
		}
	}

	return true
}

func splitAuthority(authority string) (host, port string, err error) {
	if authority == "" {
		return "", "", nil
	}

	// IPv6 literal: [::1]:8080
	if strings.HasPrefix(authority, "[") {
		end := strings.IndexByte(authority, ']')
		if end < 0 {
			return "", "", fmt.Errorf("uri: unterminated IPv6 literal in %q", authority)
		}

		host = authority[:end+1]
		remainder := authority[end+1:]

		if strings.HasPrefix(remainder, ":") {
			port = remainder[1:]
		}

		return host, port, nil
	}

	if i := strings.LastIndexByte(authority, ':'); i >= 0 {
		host = authority[:i]
		port = authority[i+1:]

		if _, err := strconv.Atoi(port); err != nil {
			return "", "", fmt.Errorf("uri: invalid port %q", port)
		}

		return host, port, nil
	}

	return authority, "", nil
}

// IsAbsolute reports whether the URI carries its own scheme and authority.
func (u *URI) IsAbsolute() bool { return u.Scheme != "" && u.Host != "" }

// Authority renders "host" or "host:port", eliding the port when it
// matches the scheme default.
func (u *URI) Authority() string {
	if u.Port == "" || u.Port == DefaultPort(u.Scheme) {
		return u.Host
	}

	return u.Host + ":" + u.Port
}

// String renders the URI back to its wire form.
func (u *URI) String() string {
	var b strings.Builder

	if u.IsAbsolute() {
		b.WriteString(u.Scheme)
		b.WriteString("://")
		b.WriteString(u.Authority())
	}

	b.WriteString(u.Path)

	if u.Query != "" {
		b.WriteByte('?')
		b.WriteString(u.Query)
	}

	return b.String()
}

// WithQuery returns a copy of u with its query component replaced.
func (u *URI) WithQuery(query string) *URI {
	clone := *u
	clone.Query = query

	return &clone
}

// WithPath returns a copy of u with its path replaced.
func (u *URI) WithPath(path string) *URI {
	clone := *u
	if path == "" {
		path = "/"
	}
	clone.Path = path

	return &clone
}

// Clone returns a deep-enough copy (URI has no pointer fields besides strings).
func (u *URI) Clone() *URI {
	clone := *u
	return &clone
}
