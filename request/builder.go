package request

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/xraph/httpc/header"
	"github.com/xraph/httpc/multipart"
	"github.com/xraph/httpc/uri"
)

// Builder provides fluent construction of a Request. It fails loudly on
// anything that cannot be represented: each method records the first
// error it hits and every later call becomes a no-op, so the caller only
// has to check the error once, at Build.
type Builder struct {
	req     *Request
	cookies []header.Cookie
	bodySet bool
	err     error
}

// New starts building a request for method against rawURI, which must be
// an absolute URI (scheme and host).
func New(method, rawURI string) *Builder {
	u, err := uri.Parse(rawURI)
	if err != nil {
		return &Builder{err: fmt.Errorf("request: parse uri: %w", err)}
	}

	if !u.IsAbsolute() {
		return &Builder{err: fmt.Errorf("request: uri %q is not absolute", rawURI)}
	}

	return &Builder{
		req: &Request{
			Method:     method,
			URI:        u,
			Header:     make(http.Header),
			Extensions: NewExtensions(),
		},
	}
}

func Get(rawURI string) *Builder    { return New(http.MethodGet, rawURI) }
func Head(rawURI string) *Builder   { return New(http.MethodHead, rawURI) }
func Post(rawURI string) *Builder   { return New(http.MethodPost, rawURI) }
func Put(rawURI string) *Builder    { return New(http.MethodPut, rawURI) }
func Delete(rawURI string) *Builder { return New(http.MethodDelete, rawURI) }
func Patch(rawURI string) *Builder  { return New(http.MethodPatch, rawURI) }

// Err returns the first error recorded by the builder, if any.
func (b *Builder) Err() error { return b.err }

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}

	return b
}

// SetHeader replaces any existing values for key.
func (b *Builder) SetHeader(key, value string) *Builder {
	if b.err != nil {
		return b
	}

	b.req.Header.Set(key, value)

	return b
}

// SetHeaderIfNone sets key only when it isn't already present.
func (b *Builder) SetHeaderIfNone(key, value string) *Builder {
	if b.err != nil {
		return b
	}

	if b.req.Header.Get(key) == "" {
		b.req.Header.Set(key, value)
	}

	return b
}

// BasicAuth sets Authorization to "Basic base64(user:pass)". password is
// empty when absent; the ':' separator is always present. Always uses the
// capitalized "Basic " prefix (RFC 7617).
func (b *Builder) BasicAuth(user string, password *string) *Builder {
	if b.err != nil {
		return b
	}

	pass := ""
	if password != nil {
		pass = *password
	}

	token := base64.StdEncoding.EncodeToString([]byte(user + ":" + pass))

	return b.SetHeader("Authorization", "Basic "+token)
}

// BearerAuth sets Authorization to "Bearer <token>"; token bytes are
// copied verbatim, no base64.
func (b *Builder) BearerAuth(token string) *Builder {
	return b.SetHeader("Authorization", "Bearer "+token)
}

// Query url-form-encodes values and replaces the URI's entire query
// component, preserving the path.
func (b *Builder) Query(values url.Values) *Builder {
	if b.err != nil {
		return b
	}

	b.req.URI = b.req.URI.WithQuery(values.Encode())

	return b
}

// SetETag writes If-Match/If-None-Match (per mode); when a header of that
// name already exists it appends ", <new>" rather than replacing it.
func (b *Builder) SetETag(tag header.ETag, mode header.TagMode) *Builder {
	if b.err != nil {
		return b
	}

	name := mode.HeaderName()
	if existing := b.req.Header.Get(name); existing != "" {
		b.req.Header.Set(name, existing+", "+tag.Format())
	} else {
		b.req.Header.Set(name, tag.Format())
	}

	return b
}

// SetDate formats t as an HTTP-date and writes it under the header named
// by mode.
func (b *Builder) SetDate(t interface{ Format(string) string }, mode header.DateTagMode) *Builder {
	if b.err != nil {
		return b
	}

	b.req.Header.Set(mode.HeaderName(), t.Format(header.HTTPDateLayout))

	return b
}

// AddCookie accumulates one cookie into the builder's jar; the jar is
// flushed into a single Cookie header at Build.
func (b *Builder) AddCookie(name, value string) *Builder {
	b.cookies = append(b.cookies, header.Cookie{Name: name, Value: value})

	return b
}

// SetCookieJar replaces the builder's entire cookie jar.
func (b *Builder) SetCookieJar(cookies []header.Cookie) *Builder {
	b.cookies = cookies

	return b
}

// ContentDisposition formats cd and sets the Content-Disposition header.
func (b *Builder) ContentDisposition(cd *header.ContentDisposition) *Builder {
	return b.SetHeader("Content-Disposition", cd.Format())
}

// Form url-form-encodes values as the body, defaulting Content-Type to
// application/x-www-form-urlencoded when the caller hasn't set one.
func (b *Builder) Form(values url.Values) *Builder {
	if b.err != nil {
		return b
	}

	b.SetHeaderIfNone("Content-Type", "application/x-www-form-urlencoded")

	return b.setBody([]byte(values.Encode()))
}

// JSON marshals v as the UTF-8 JSON body, defaulting Content-Type to
// application/json.
func (b *Builder) JSON(v any) *Builder {
	if b.err != nil {
		return b
	}

	data, err := json.Marshal(v)
	if err != nil {
		return b.fail(fmt.Errorf("request: marshal json body: %w", err))
	}

	b.SetHeaderIfNone("Content-Type", "application/json")

	return b.setBody(data)
}

// Multipart sets Content-Type to multipart/form-data with form's boundary
// and the body to form's finished bytes.
func (b *Builder) Multipart(form *multipart.Form) *Builder {
	if b.err != nil {
		return b
	}

	b.SetHeader("Content-Type", form.ContentType())
	_, data := form.Finish()

	return b.setBody(data)
}

func (b *Builder) setBody(data []byte) *Builder {
	b.req.Body = data
	b.bodySet = true

	return b
}

// Empty finalizes the request with no body.
func (b *Builder) Empty() (*Request, error) { return b.build() }

// Build finalizes the request: whichever of Form/JSON/Multipart/Empty was
// used, it flushes the cookie jar and applies the Content-Length
// auto-management rule:
//
//	method∈{POST,PUT} ∧ body=None  ⇒ Content-Length: 0, unless caller set it
//	method∉{POST,PUT} ∧ body=None  ⇒ header absent
//	body=Some(b)                   ⇒ Content-Length: len(b), unless caller set it
func (b *Builder) Build() (*Request, error) { return b.build() }

func (b *Builder) build() (*Request, error) {
	if b.err != nil {
		return nil, b.err
	}

	if len(b.cookies) > 0 {
		b.req.Header.Set("Cookie", header.FormatCookieHeader(b.cookies))
	}

	switch {
	case b.bodySet:
		if b.req.Header.Get("Content-Length") == "" {
			b.req.Header.Set("Content-Length", fmt.Sprintf("%d", len(b.req.Body)))
		}
	case isBodyCarryingMethod(b.req.Method):
		if b.req.Header.Get("Content-Length") == "" {
			b.req.Header.Set("Content-Length", "0")
		}
	default:
		b.req.Header.Del("Content-Length")
	}

	return b.req, nil
}

func isBodyCarryingMethod(method string) bool {
	return method == http.MethodPost || method == http.MethodPut
}
