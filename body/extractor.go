package body

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"errors"
	"io"

	"github.com/andybalholm/brotli"

	"github.com/xraph/httpc/header"
)

// DefaultLimit is the byte budget applied when a Config doesn't override
// it.
const DefaultLimit = 2 * 1024 * 1024

const chunkSize = 32 * 1024

// notifyingReader fires Notifier.Send once per underlying Read call,
// treating each Read as one "raw input chunk" for progress-reporting
// purposes: notifier calls occur in chunk-arrival order, before the
// overflow check for the same chunk.
type notifyingReader struct {
	r        io.Reader
	notifier Notifier
}

func (n *notifyingReader) Read(p []byte) (int, error) {
	count, err := n.r.Read(p)
	if count > 0 {
		n.notifier.Send(count)
	}

	return count, err
}

func decoderFor(enc header.ContentEncoding, r io.Reader) (io.Reader, error) {
	switch enc {
	case header.Identity:
		return r, nil
	case header.Gzip:
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, &DecompressionError{Kind: "gzip", Detail: err}
		}

		return gz, nil
	case header.Deflate:
		// RFC 1950 zlib-wrapped deflate, not raw RFC 1951 deflate.
		zr, err := zlib.NewReader(r)
		if err != nil {
			return nil, &DecompressionError{Kind: "deflate", Detail: err}
		}

		return zr, nil
	case header.Brotli:
		return brotli.NewReader(r), nil
	default:
		return r, nil
	}
}

// ExtractBytes drains r (interpreting it under enc) into memory, enforcing
// limit against the decoded length. If notifier is nil a no-op notifier is
// used.
func ExtractBytes(r io.Reader, enc header.ContentEncoding, limit int, notifier Notifier) ([]byte, error) {
	if notifier == nil {
		notifier = NoopNotifier()
	}

	if limit <= 0 {
		limit = DefaultLimit
	}

	raw := &notifyingReader{r: r, notifier: notifier}

	decoded, err := decoderFor(enc, raw)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer

	buf := make([]byte, chunkSize)

	for {
		n, readErr := decoded.Read(buf)
		if n > 0 {
			out.Write(buf[:n])

			if out.Len() > limit {
				return out.Bytes(), &Overflow{Partial: out.Bytes()}
			}
		}

		if readErr == io.EOF {
			break
		}

		if readErr != nil {
			if isIncompleteStream(readErr) {
				return out.Bytes(), &IncompleteDecompression{}
			}

			if enc == header.Identity {
				return out.Bytes(), &ReadError{Err: readErr}
			}

			return out.Bytes(), &DecompressionError{Kind: enc.String(), Detail: readErr}
		}
	}

	if closer, ok := decoded.(io.Closer); ok {
		if enc == header.Gzip {
			if err := closer.Close(); err != nil && isIncompleteStream(err) {
				return out.Bytes(), &IncompleteDecompression{}
			}
		}
	}

	return out.Bytes(), nil
}

func isIncompleteStream(err error) bool {
	return errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.ErrClosedPipe)
}

// ExtractToWriter streams decoded bytes straight to dst without buffering
// the whole payload in memory; the byte limit is not enforced — this is
// the file-sink exemption from the in-memory budget.
func ExtractToWriter(dst io.Writer, r io.Reader, enc header.ContentEncoding, notifier Notifier) (int64, error) {
	if notifier == nil {
		notifier = NoopNotifier()
	}

	raw := &notifyingReader{r: r, notifier: notifier}

	decoded, err := decoderFor(enc, raw)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(dst, decoded)
	if err != nil {
		if isIncompleteStream(err) {
			return n, &IncompleteDecompression{}
		}

		return n, &DecompressionError{Kind: enc.String(), Detail: err}
	}

	return n, nil
}
