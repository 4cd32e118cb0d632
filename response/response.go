// Package response implements the Response facade: status inspection,
// typed header accessors, and the body-sink factory methods that hand
// off the underlying chunk stream to exactly one extractor call.
package response

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/xraph/httpc/body"
	"github.com/xraph/httpc/header"
	"github.com/xraph/httpc/request"
)

// Response is produced by the client on headers-received; the body is a
// lazily consumed chunk stream, taken by exactly one of the Bytes/Text/
// JSON/File/RawStream methods.
type Response struct {
	Status     int
	Header     http.Header
	Extensions *request.Extensions

	body  io.ReadCloser
	taken bool
}

// New wraps a status, header set and body stream into a Response.
// extensions may be nil; a nil body is treated as an already-empty one.
func New(status int, hdr http.Header, bodyStream io.ReadCloser, extensions *request.Extensions) *Response {
	if hdr == nil {
		hdr = make(http.Header)
	}

	if extensions == nil {
		extensions = request.NewExtensions()
	}

	return &Response{Status: status, Header: hdr, Extensions: extensions, body: bodyStream}
}

func (r *Response) IsInfo() bool        { return r.Status >= 100 && r.Status <= 199 }
func (r *Response) IsSuccess() bool     { return r.Status >= 200 && r.Status <= 299 }
func (r *Response) IsRedirect() bool    { return r.Status >= 300 && r.Status <= 399 }
func (r *Response) IsClientError() bool { return r.Status >= 400 && r.Status <= 499 }

// IsInternalError reports whether the status is a 5xx. Deliberately its
// own predicate, not an alias for IsClientError.
func (r *Response) IsInternalError() bool { return r.Status >= 500 && r.Status <= 599 }

func (r *Response) IsUpgrade() bool { return r.Status == http.StatusSwitchingProtocols }

// MIME parses the Content-Type header.
func (r *Response) MIME() header.MIME {
	return header.ParseMIME(r.Header.Get("Content-Type"))
}

// CharsetEncoding returns the declared (or defaulted) charset.
func (r *Response) CharsetEncoding() string {
	return r.MIME().CharsetOrUTF8()
}

// ContentLen returns Content-Length's parsed value, or -1 when absent or
// unparseable.
func (r *Response) ContentLen() int64 {
	raw := r.Header.Get("Content-Length")
	if raw == "" {
		return -1
	}

	var n int64
	if _, err := fmt.Sscanf(raw, "%d", &n); err != nil {
		return -1
	}

	return n
}

// ContentEncoding parses the Content-Encoding header, defaulting to
// Identity.
func (r *Response) ContentEncoding() header.ContentEncoding {
	enc, _ := header.ParseContentEncoding(r.Header.Get("Content-Encoding"))
	return enc
}

// ContentDisposition parses the Content-Disposition header, if present.
func (r *Response) ContentDisposition() (*header.ContentDisposition, error) {
	raw := r.Header.Get("Content-Disposition")
	if raw == "" {
		return nil, nil
	}

	return header.ParseContentDisposition(raw)
}

// LastModified parses the Last-Modified header.
func (r *Response) LastModified() (time.Time, bool) {
	raw := r.Header.Get("Last-Modified")
	if raw == "" {
		return time.Time{}, false
	}

	t, err := header.ParseDate(raw)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

// ETag parses the ETag header.
func (r *Response) ETag() (header.ETag, bool) {
	raw := r.Header.Get("ETag")
	if raw == "" {
		return header.ETag{}, false
	}

	return header.ParseETag(raw)
}

// Cookies parses every Set-Cookie header into a jar-ready list.
func (r *Response) Cookies() []header.SetCookie {
	var out []header.SetCookie

	for _, raw := range r.Header.Values("Set-Cookie") {
		if sc, ok := header.ParseSetCookie(raw); ok {
			out = append(out, sc)
		}
	}

	return out
}

// IsEmpty reports whether the response declares (or implies) no body.
func (r *Response) IsEmpty() bool {
	if r.body == nil {
		return true
	}

	return r.ContentLen() == 0
}

// takeBody transfers ownership of the underlying stream out of the
// Response; a second call panics, enforcing the "exactly one extractor
// call" lifecycle invariant.
func (r *Response) takeBody() io.ReadCloser {
	if r.taken {
		panic("response: body already taken")
	}

	r.taken = true

	if r.body == nil {
		return io.NopCloser(noReader{})
	}

	return r.body
}

type noReader struct{}

func (noReader) Read([]byte) (int, error) { return 0, io.EOF }

// Bytes drains the body into memory under limit, decoding Content-
// Encoding along the way. An empty identity body short-circuits before a
// decompressor is ever constructed.
func (r *Response) Bytes(limit int, notifier body.Notifier) ([]byte, error) {
	enc := r.ContentEncoding()

	stream := r.takeBody()
	defer stream.Close()

	if r.IsEmpty() && enc == header.Identity {
		return nil, nil
	}

	return body.ExtractBytes(stream, enc, limit, notifier)
}

// Text drains and decodes the body as charset text.
func (r *Response) Text(limit int, notifier body.Notifier) (string, error) {
	raw, err := r.Bytes(limit, notifier)
	if err != nil {
		return "", err
	}

	return body.Text(raw, r.CharsetEncoding())
}

// JSON drains the body and unmarshals it into v.
func (r *Response) JSON(limit int, notifier body.Notifier, v any) error {
	raw, err := r.Bytes(limit, notifier)
	if err != nil {
		return err
	}

	return body.JSONInto(raw, r.CharsetEncoding(), v)
}

// File streams the body directly to path without buffering it whole. An
// empty identity body short-circuits before a decompressor is ever
// constructed.
func (r *Response) File(path string, notifier body.Notifier) (int64, error) {
	enc := r.ContentEncoding()

	stream := r.takeBody()
	defer stream.Close()

	if r.IsEmpty() && enc == header.Identity {
		return body.WriteEmptyFile(path)
	}

	return body.File(path, stream, enc, notifier)
}

// RawStream transfers ownership of the underlying byte stream out of the
// HTTP framing layer, for Websocket hand-off.
func (r *Response) RawStream() io.ReadCloser { return r.takeBody() }
