// Package netx builds request bodies that need more than encoding/json.
package netx

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DetectContentType sniffs data. The result never carries parameters
// ("text/plain", not "text/plain; charset=utf-8").
func DetectContentType(data []byte) string {
	ct := mimetype.Detect(data).String()
	if base, _, found := strings.Cut(ct, ";"); found {
		return strings.TrimSpace(base)
	}
	return ct
}

// IsImage reports whether data sniffs as image/*.
func IsImage(data []byte) bool {
	return strings.HasPrefix(DetectContentType(data), "image/")
}

// MultipartFile encodes data as a single-part multipart/form-data body under
// field. The part's Content-Type is sniffed from data instead of the
// application/octet-stream multipart.Writer.CreateFormFile would use.
func MultipartFile(field, filename string, data []byte) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filepath.Base(filename)))
	h.Set("Content-Type", DetectContentType(data))

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("create part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", fmt.Errorf("write part: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}

	return body, w.FormDataContentType(), nil
}
