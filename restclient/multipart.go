package restclient

import (
	"fmt"
	"io"
	"os"
)

const (
	// Boundary is the fixed multipart delimiter token.
	Boundary = "*****"

	// MultipartContentType is the Content-Type header value sent with
	// multipart requests.
	MultipartContentType = "multipart/form-data; boundary=" + Boundary

	crlf = "\r\n"
)

// validateParts enforces the part invariant at the caller-facing boundary:
// every part needs a name and exactly one of Body / FilePath.
func validateParts(parts []Part) error {
	if len(parts) == 0 {
		return NewValidationError("multipart request requires at least one part", "parts")
	}
	for i, p := range parts {
		if p.Name == "" {
			return NewValidationError(fmt.Sprintf("part %d has no name", i), "name")
		}
		hasBody := p.Body != nil
		hasFile := p.FilePath != ""
		if hasBody && hasFile {
			return NewValidationError(
				fmt.Sprintf("part %q sets both body and file path", p.Name), "parts")
		}
		if !hasBody && !hasFile {
			return NewValidationError(
				fmt.Sprintf("part %q sets neither body nor file path", p.Name), "parts")
		}
	}
	return nil
}

// encodeMultipart writes the parts as a multipart/form-data stream delimited
// by the fixed boundary token. Inline bodies are JSON-encoded; file payloads
// are copied from disk in bufSize chunks so peak memory stays bounded for
// large uploads. Parts must have been validated beforehand.
func encodeMultipart(w io.Writer, parts []Part, bufSize int) error {
	for _, p := range parts {
		if _, err := io.WriteString(w, "--"+Boundary+crlf); err != nil {
			return err
		}
		disposition := fmt.Sprintf("Content-Disposition: form-data; name=%q%s", p.Name, crlf)
		if _, err := io.WriteString(w, disposition); err != nil {
			return err
		}
		if p.ContentType != "" {
			if _, err := io.WriteString(w, "Content-Type: "+p.ContentType+crlf); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, crlf); err != nil {
			return err
		}

		if p.FilePath != "" {
			if err := copyFile(w, p.FilePath, bufSize); err != nil {
				return err
			}
		} else {
			encoded, err := encodeBody(p.Body)
			if err != nil {
				return err
			}
			if _, err := io.WriteString(w, encoded); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, crlf); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "--"+Boundary+"--"+crlf)
	return err
}

// copyFile streams a file's bytes to w using a fixed-size buffer.
func copyFile(w io.Writer, path string, bufSize int) error {
	f, err := os.Open(path)
	if err != nil {
		return NewNetworkError("failed to open upload file", err)
	}
	defer f.Close()

	if bufSize <= 0 {
		bufSize = DefaultUploadBufferSize
	}
	buf := make([]byte, bufSize)
	if _, err := io.CopyBuffer(w, f, buf); err != nil {
		return NewNetworkError("failed to read upload file", err)
	}
	return nil
}
