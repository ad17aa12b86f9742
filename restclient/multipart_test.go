package restclient

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateParts(t *testing.T) {
	t.Run("valid parts", func(t *testing.T) {
		err := validateParts([]Part{
			{Name: "data", Body: map[string]string{"k": "v"}},
			{Name: "image1", FilePath: "/tmp/img.png"},
		})
		assert.NoError(t, err)
	})

	t.Run("empty list rejected", func(t *testing.T) {
		err := validateParts(nil)
		assert.True(t, IsErrorType(err, ValidationError))
	})

	t.Run("missing name rejected", func(t *testing.T) {
		err := validateParts([]Part{{Body: "x"}})
		assert.True(t, IsErrorType(err, ValidationError))
	})

	t.Run("both body and file rejected", func(t *testing.T) {
		err := validateParts([]Part{{Name: "data", Body: "x", FilePath: "/tmp/f"}})
		assert.True(t, IsErrorType(err, ValidationError))
	})

	t.Run("neither body nor file rejected", func(t *testing.T) {
		err := validateParts([]Part{{Name: "data"}})
		assert.True(t, IsErrorType(err, ValidationError))
	})
}

func TestEncodeMultipart(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "image1.bin")
	require.NoError(t, os.WriteFile(filePath, []byte("PNGDATA"), 0o600))

	parts := []Part{
		{Name: "data", Body: map[string]string{"caption": "hi"}},
		{Name: "image1", FilePath: filePath, ContentType: "image/png"},
	}
	require.NoError(t, validateParts(parts))

	var buf bytes.Buffer
	require.NoError(t, encodeMultipart(&buf, parts, 4))
	out := buf.String()

	// Two section delimiters plus one terminator.
	assert.Equal(t, 2, strings.Count(out, "--"+Boundary+"\r\n"))
	assert.Equal(t, 1, strings.Count(out, "--"+Boundary+"--\r\n"))
	assert.True(t, strings.HasSuffix(out, "--"+Boundary+"--\r\n"))

	assert.Contains(t, out, `Content-Disposition: form-data; name="data"`)
	assert.Contains(t, out, `Content-Disposition: form-data; name="image1"`)
	assert.Contains(t, out, "Content-Type: image/png\r\n")
	assert.Contains(t, out, `{"caption":"hi"}`)
	// File bytes copied in 4-byte chunks end up contiguous.
	assert.Contains(t, out, "PNGDATA")
}

func TestEncodeMultipartMissingFile(t *testing.T) {
	var buf bytes.Buffer
	err := encodeMultipart(&buf, []Part{{Name: "image1", FilePath: "/nonexistent/file.bin"}}, 0)
	require.Error(t, err)
	assert.True(t, IsErrorType(err, NetworkError))
}
