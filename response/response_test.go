package response

import (
	"bytes"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReadCloser(s string) io.ReadCloser {
	return io.NopCloser(bytes.NewBufferString(s))
}

func TestResponse_StatusClassPredicates(t *testing.T) {
	cases := []struct {
		status int
		check  func(*Response) bool
	}{
		{100, (*Response).IsInfo},
		{204, (*Response).IsSuccess},
		{301, (*Response).IsRedirect},
		{404, (*Response).IsClientError},
		{503, (*Response).IsInternalError},
		{101, (*Response).IsUpgrade},
	}

	for _, c := range cases {
		r := New(c.status, make(http.Header), newReadCloser(""), nil)
		assert.True(t, c.check(r), "status %d", c.status)
	}
}

func TestResponse_IsInternalErrorDoesNotAliasClientError(t *testing.T) {
	r := New(500, make(http.Header), newReadCloser(""), nil)
	assert.True(t, r.IsInternalError())
	assert.False(t, r.IsClientError())
}

func TestResponse_MIMEAndCharset(t *testing.T) {
	h := make(http.Header)
	h.Set("Content-Type", "text/plain; charset=iso-8859-1")

	r := New(200, h, newReadCloser(""), nil)
	assert.Equal(t, "text/plain", r.MIME().Type)
	assert.Equal(t, "iso-8859-1", r.CharsetEncoding())
}

func TestResponse_CharsetDefaultsUTF8(t *testing.T) {
	r := New(200, make(http.Header), newReadCloser(""), nil)
	assert.Equal(t, "utf-8", r.CharsetEncoding())
}

func TestResponse_ContentLen(t *testing.T) {
	h := make(http.Header)
	h.Set("Content-Length", "42")

	r := New(200, h, newReadCloser(""), nil)
	assert.Equal(t, int64(42), r.ContentLen())
}

func TestResponse_ContentLenAbsentIsNegativeOne(t *testing.T) {
	r := New(200, make(http.Header), newReadCloser(""), nil)
	assert.Equal(t, int64(-1), r.ContentLen())
}

func TestResponse_BytesDrainsBody(t *testing.T) {
	r := New(200, make(http.Header), newReadCloser("payload"), nil)

	out, err := r.Bytes(0, nil)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(out))
}

func TestResponse_TakingBodyTwicePanics(t *testing.T) {
	r := New(200, make(http.Header), newReadCloser("payload"), nil)

	_, err := r.Bytes(0, nil)
	require.NoError(t, err)

	assert.Panics(t, func() {
		_, _ = r.Bytes(0, nil)
	})
}

type poisonReadCloser struct{}

func (poisonReadCloser) Read([]byte) (int, error) { panic("poisonReadCloser: Read called") }
func (poisonReadCloser) Close() error              { return nil }

func TestResponse_BytesSkipsDecoderForEmptyIdentityBody(t *testing.T) {
	h := make(http.Header)
	h.Set("Content-Length", "0")

	r := New(200, h, poisonReadCloser{}, nil)

	out, err := r.Bytes(0, nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestResponse_FileSkipsDecoderForEmptyIdentityBody(t *testing.T) {
	h := make(http.Header)
	h.Set("Content-Length", "0")

	r := New(200, h, poisonReadCloser{}, nil)

	n, err := r.File(t.TempDir()+"/empty.bin", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestResponse_Cookies(t *testing.T) {
	h := make(http.Header)
	h.Add("Set-Cookie", "session=abc; Path=/; HttpOnly")
	h.Add("Set-Cookie", "lang=en")

	r := New(200, h, newReadCloser(""), nil)
	cookies := r.Cookies()
	require.Len(t, cookies, 2)
	assert.Equal(t, "session", cookies[0].Name)
	assert.True(t, cookies[0].HTTPOnly)
	assert.Equal(t, "lang", cookies[1].Name)
}

func TestResponse_JSON(t *testing.T) {
	r := New(200, make(http.Header), newReadCloser(`{"ok":true}`), nil)

	var target struct {
		OK bool `json:"ok"`
	}

	require.NoError(t, r.JSON(0, nil, &target))
	assert.True(t, target.OK)
}
