package body

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/ianaindex"

	"github.com/xraph/httpc/header"
)

// Text decodes decoded bytes (already produced by ExtractBytes) as
// charset text, defaulting to UTF-8 when charset is empty. A charset the
// ecosystem doesn't recognize, or bytes that don't decode cleanly under
// it, yields EncodingError.
func Text(decoded []byte, charset string) (string, error) {
	if charset == "" {
		charset = "utf-8"
	}

	if strings.EqualFold(charset, "utf-8") || strings.EqualFold(charset, "utf8") {
		return string(decoded), nil
	}

	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil || enc == nil {
		return "", &EncodingError{Charset: charset, Err: err}
	}

	out, err := enc.NewDecoder().Bytes(decoded)
	if err != nil {
		return "", &EncodingError{Charset: charset, Err: err}
	}

	return string(out), nil
}

// TextFromMIME is a convenience wrapper reading the charset straight out
// of a parsed Content-Type.
func TextFromMIME(decoded []byte, mime header.MIME) (string, error) {
	return Text(decoded, mime.CharsetOrUTF8())
}

// JSONInto decodes decoded bytes (charset-normalized first, same rule as
// Text) into v.
func JSONInto(decoded []byte, charset string, v any) error {
	text, err := Text(decoded, charset)
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(text), v); err != nil {
		return &JSONError{Err: err}
	}

	return nil
}

// File streams r (interpreted under enc) straight to path, never
// buffering the whole body in memory and never enforcing the byte limit.
// On any failure the returned FileError names the destination path; the
// file handle itself is not returned (it is closed before File returns),
// and any partial content stays on disk at that path.
func File(path string, r io.Reader, enc header.ContentEncoding, notifier Notifier) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, &FileError{Path: path, Err: err}
	}
	defer f.Close()

	n, err := ExtractToWriter(f, r, enc, notifier)
	if err != nil {
		return n, &FileError{Path: path, Err: err}
	}

	return n, nil
}

// WriteEmptyFile creates path as a zero-length file, for callers that
// already know (from a response's framing headers) that the body has no
// content and want to skip building a reader pipeline for it.
func WriteEmptyFile(path string) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, &FileError{Path: path, Err: err}
	}

	if err := f.Close(); err != nil {
		return 0, &FileError{Path: path, Err: err}
	}

	return 0, nil
}
