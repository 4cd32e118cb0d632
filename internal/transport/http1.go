// Package transport renders a Request over an already-connected stream
// as HTTP/1.1 wire bytes and parses the response back off it. This is
// the low-level HTTP/1.1 framing the client composes on top of Connector
// streams, kept deliberately minimal.
package transport

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/xraph/httpc/connector"
	"github.com/xraph/httpc/request"
	"github.com/xraph/httpc/response"
)

// Do writes req onto stream and parses the resulting HTTP/1.1 response.
// The returned Response's body stream stays bound to stream even after
// this call returns, so the caller must not close stream until the body
// has been fully consumed (or discarded).
func Do(stream connector.Stream, req *request.Request) (*response.Response, error) {
	wireReq, err := http.NewRequest(req.Method, req.URI.String(), bytes.NewReader(req.Body))
	if err != nil {
		return nil, fmt.Errorf("transport: build wire request: %w", err)
	}

	wireReq.Header = req.Header.Clone()
	wireReq.Close = false

	if err := wireReq.Write(stream); err != nil {
		return nil, fmt.Errorf("transport: write request: %w", err)
	}

	reader := bufio.NewReader(stream)

	wireResp, err := http.ReadResponse(reader, wireReq)
	if err != nil {
		return nil, fmt.Errorf("transport: read response: %w", err)
	}

	body := &streamClosingBody{ReadCloser: wireResp.Body, stream: stream}

	return response.New(wireResp.StatusCode, wireResp.Header, body, req.Extensions), nil
}

// streamClosingBody makes sure closing the response body also closes the
// underlying connector stream; http.ReadResponse's Body only knows about
// the bufio.Reader it was handed, not the connection that backs it.
type streamClosingBody struct {
	io.ReadCloser
	stream connector.Stream
}

func (b *streamClosingBody) Close() error {
	bodyErr := b.ReadCloser.Close()
	streamErr := b.stream.Close()

	if bodyErr != nil {
		return bodyErr
	}

	return streamErr
}
