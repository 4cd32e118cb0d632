package uri

import "strings"

// ResolveLocation implements the redirect driver's Location resolution:
//   - If location has a scheme, it is absolute: used as-is.
//   - Otherwise it is relative: its path is joined onto the old path as
//     filesystem-style components, and it adopts the old scheme+authority.
//
// crossHost reports whether the resolved URI's host differs from old's,
// which the redirect driver uses to decide whether to scrub credentials.
func ResolveLocation(old *URI, location string) (resolved *URI, crossHost bool, err error) {
	loc, err := Parse(location)
	if err != nil {
		return nil, false, err
	}

	if loc.IsAbsolute() {
		return loc, !strings.EqualFold(loc.Host, old.Host), nil
	}

	joined := old.Clone()
	joined.Path = joinPath(old.Path, loc.Path)

	if loc.Query != "" {
		joined.Query = loc.Query
	} else {
		joined.Query = ""
	}

	return joined, false, nil
}

// joinPath joins a relative location path onto a base path the way a
// filesystem resolves "../" and "./" segments relative to the base's
// directory, always returning an absolute ("/"-rooted) path.
func joinPath(base, rel string) string {
	if strings.HasPrefix(rel, "/") {
		return cleanSegments(rel)
	}

	dir := base
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		dir = base[:i+1]
	} else {
		dir = "/"
	}

	return cleanSegments(dir + rel)
}

// cleanSegments resolves "." and ".." path components without touching the
// filesystem, always returning an absolute path.
func cleanSegments(p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}

	parts := strings.Split(p, "/")
	stack := make([]string, 0, len(parts))

	for _, part := range parts {
		switch part {
		case "", ".":
			continue
		case "..":
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		default:
			stack = append(stack, part)
		}
	}

	if len(stack) == 0 {
		return "/"
	}

	return "/" + strings.Join(stack, "/")
}
