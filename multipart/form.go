// Package multipart produces an RFC 7578 multipart/form-data body as a
// binary wire format. Unlike the standard library's mime/multipart
// writer, the wire layout here is pinned exactly to a fixed literal byte
// layout so golden-file tests can assert on it.
package multipart

import (
	"bytes"
	"fmt"
	"mime"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// DefaultBoundary is the boundary used by NewForm.
const DefaultBoundary = "yuki"

const crlf = "\r\n"

// Form accumulates multipart/form-data parts into an append-only buffer.
type Form struct {
	boundary string
	buf      bytes.Buffer
	fields   int
}

// NewForm creates a Form using the default ASCII boundary "yuki".
func NewForm() *Form { return &Form{boundary: DefaultBoundary} }

// NewFormWithBoundary creates a Form with a caller-chosen ASCII boundary.
func NewFormWithBoundary(boundary string) *Form { return &Form{boundary: boundary} }

// NewFormRandom creates a Form with a boundary that carries a random
// suffix, for callers who want to avoid any risk of boundary collision
// with the encoded content.
func NewFormRandom() *Form {
	return &Form{boundary: DefaultBoundary + "-" + uuid.NewString()}
}

// Boundary returns the form's boundary string.
func (f *Form) Boundary() string { return f.boundary }

func (f *Form) openBoundary() string { return "--" + f.boundary + crlf }

// Field appends a simple `name`/`data` field.
func (f *Form) Field(name string, data []byte) {
	f.buf.WriteString(f.openBoundary())
	fmt.Fprintf(&f.buf, "Content-Disposition: form-data; name=\"%s\"%s", name, crlf)
	f.buf.WriteString(crlf)
	f.buf.Write(data)
	f.buf.WriteString(crlf)
	f.buf.WriteString(f.openBoundary())
	f.fields++
}

// FileField appends a file field. mimeType may be empty, in which case it
// is guessed from fileName's extension and, failing that, sniffed from
// data's content (github.com/gabriel-vasile/mimetype) the way a caller
// expects when only raw bytes are available (e.g. an in-memory upload).
//
// On any failure building the part the buffer is truncated back to its
// pre-call length so the caller may retry without a partial part.
func (f *Form) FileField(fieldName, fileName, mimeType string, data []byte) {
	mark := f.buf.Len()

	if mimeType == "" {
		mimeType = guessMIME(fileName, data)
	}

	f.buf.WriteString(f.openBoundary())
	fmt.Fprintf(&f.buf, "Content-Disposition: form-data; name=\"%s\"; filename=\"%s\"%s", fieldName, fileName, crlf)
	fmt.Fprintf(&f.buf, "Content-Type: %s%s", mimeType, crlf)
	f.buf.WriteString(crlf)

	if _, err := f.buf.Write(data); err != nil {
		f.buf.Truncate(mark)

		return
	}

	f.buf.WriteString(crlf)
	f.buf.WriteString(f.openBoundary())
	f.fields++
}

func guessMIME(fileName string, data []byte) string {
	if ext := filepath.Ext(fileName); ext != "" {
		if t := mime.TypeByExtension(ext); t != "" {
			return t
		}
	}

	return mimetype.Detect(data).String()
}

// Finish closes the form and returns its length and bytes. An empty form
// finishes to (0, nil). Otherwise the trailing boundary's closing CRLF is
// overwritten with "--" and a final CRLF appended.
func (f *Form) Finish() (int, []byte) {
	if f.fields == 0 {
		return 0, nil
	}

	// The buffer currently ends with "--<boundary>\r\n"; replace the
	// trailing "\r\n" with "--\r\n" in a fresh copy so the form's internal
	// buffer stays untouched if the caller calls Finish again.
	trimmed := f.buf.Bytes()[:f.buf.Len()-2]
	out := make([]byte, 0, len(trimmed)+4)
	out = append(out, trimmed...)
	out = append(out, '-', '-')
	out = append(out, crlf...)

	return len(out), out
}

// ContentType returns the multipart/form-data Content-Type header value
// for this form's boundary.
func (f *Form) ContentType() string {
	return "multipart/form-data; boundary=" + f.boundary
}
