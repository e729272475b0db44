package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const ContentTypePDF = "application/pdf"

var (
	ErrEmpty  = errors.New("media: document is empty")
	ErrNotPDF = errors.New("media: document is not a PDF")
)

// dataURIPrefix is what browser-side generators prepend to base64 output.
const dataURIPrefix = "data:application/pdf;base64,"

// DecodePDF decodes standard base64 content and checks that the result is a
// PDF document. A leading data URI prefix is accepted and stripped.
func DecodePDF(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if len(encoded) >= len(dataURIPrefix) && strings.EqualFold(encoded[:len(dataURIPrefix)], dataURIPrefix) {
		encoded = encoded[len(dataURIPrefix):]
	}
	if encoded == "" {
		return nil, ErrEmpty
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decoding base64: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmpty
	}

	if !IsPDF(data) {
		return nil, ErrNotPDF
	}
	return data, nil
}

// IsPDF reports whether data starts with a PDF header.
func IsPDF(data []byte) bool {
	if http.DetectContentType(data) == ContentTypePDF {
		return true
	}
	// Some generators emit a byte order mark or whitespace before the header.
	return bytes.HasPrefix(bytes.TrimLeft(data, "\xef\xbb\xbf \t\r\n"), []byte("%PDF-"))
}
