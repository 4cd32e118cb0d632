package body

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"os"
	"path/filepath"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/httpc/header"
)

func TestExtractBytes_Identity(t *testing.T) {
	out, err := ExtractBytes(bytes.NewReader([]byte("hello world")), header.Identity, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(out))
}

func TestExtractBytes_Gzip(t *testing.T) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	_, _ = gw.Write([]byte("compressed payload"))
	require.NoError(t, gw.Close())

	out, err := ExtractBytes(bytes.NewReader(buf.Bytes()), header.Gzip, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, "compressed payload", string(out))
}

func TestExtractBytes_Deflate(t *testing.T) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, _ = zw.Write([]byte("zlib wrapped payload"))
	require.NoError(t, zw.Close())

	out, err := ExtractBytes(bytes.NewReader(buf.Bytes()), header.Deflate, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, "zlib wrapped payload", string(out))
}

func TestExtractBytes_Brotli(t *testing.T) {
	var buf bytes.Buffer
	bw := brotli.NewWriter(&buf)
	_, _ = bw.Write([]byte("brotli payload"))
	require.NoError(t, bw.Close())

	out, err := ExtractBytes(bytes.NewReader(buf.Bytes()), header.Brotli, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, "brotli payload", string(out))
}

func TestExtractBytes_OverflowReturnsPartial(t *testing.T) {
	out, err := ExtractBytes(bytes.NewReader([]byte("0123456789")), header.Identity, 4, nil)
	require.Error(t, err)

	var overflow *Overflow
	require.ErrorAs(t, err, &overflow)
	assert.NotEmpty(t, overflow.Partial)
	assert.Equal(t, overflow.Partial, out)
}

func TestExtractBytes_NotifierFiresPerChunk(t *testing.T) {
	notifier := NewChanNotifier(8)

	payload := bytes.Repeat([]byte("x"), chunkSize*2+10)
	_, err := ExtractBytes(bytes.NewReader(payload), header.Identity, 0, notifier)
	require.NoError(t, err)

	close(notifier)

	total := 0
	for n := range notifier {
		total += n
	}

	assert.Equal(t, len(payload), total)
}

func TestExtractBytes_DeflateRawFails(t *testing.T) {
	// Raw RFC 1951 deflate (no zlib header) must surface an error, not be
	// silently accepted.
	var buf bytes.Buffer

	fw, err := flate.NewWriter(&buf, flate.DefaultCompression)
	require.NoError(t, err)
	_, _ = fw.Write([]byte("raw deflate, no zlib wrapper"))
	require.NoError(t, fw.Close())

	_, err = ExtractBytes(bytes.NewReader(buf.Bytes()), header.Deflate, 0, nil)
	assert.Error(t, err)
}

func TestFile_StreamsDecodedBytesToDisk(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "out.txt")

	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	_, _ = gw.Write([]byte("file sink payload"))
	require.NoError(t, gw.Close())

	n, err := File(dest, bytes.NewReader(buf.Bytes()), header.Gzip, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(len("file sink payload")), n)

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "file sink payload", string(got))
}

func TestText_DefaultsToUTF8(t *testing.T) {
	out, err := Text([]byte("héllo"), "")
	require.NoError(t, err)
	assert.Equal(t, "héllo", out)
}

func TestJSONInto_DecodesBody(t *testing.T) {
	var target struct {
		Name string `json:"name"`
	}

	err := JSONInto([]byte(`{"name":"gopher"}`), "", &target)
	require.NoError(t, err)
	assert.Equal(t, "gopher", target.Name)
}

func TestJSONInto_InvalidJSONReturnsTypedError(t *testing.T) {
	var target map[string]any

	err := JSONInto([]byte(`not json`), "", &target)
	require.Error(t, err)

	var jsonErr *JSONError
	assert.ErrorAs(t, err, &jsonErr)
}
