package voucher

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"

	"github.com/letsgomakkah/voucher/internal/media"
)

// Request is one booking voucher to deliver.
type Request struct {
	RecipientEmail     string `json:"recipientEmail"`
	PDFBase64          string `json:"pdfBase64"`
	ConfirmationNumber string `json:"confirmationNumber"`
}

const maxConfirmationNumberLen = 64

// Validate checks the request and returns the decoded PDF content.
func (r Request) Validate() ([]byte, error) {
	recipient := strings.TrimSpace(r.RecipientEmail)
	confirmation := strings.TrimSpace(r.ConfirmationNumber)

	switch {
	case recipient == "":
		return nil, invalid("recipientEmail is required")
	case strings.TrimSpace(r.PDFBase64) == "":
		return nil, invalid("pdfBase64 is required")
	case confirmation == "":
		return nil, invalid("confirmationNumber is required")
	}

	addr, err := mail.ParseAddress(recipient)
	if err != nil || addr.Name != "" || addr.Address != recipient {
		return nil, invalid("recipientEmail must be a valid email address")
	}

	if len(confirmation) > maxConfirmationNumberLen {
		return nil, invalid(fmt.Sprintf("confirmationNumber must be at most %d characters", maxConfirmationNumberLen))
	}
	// It becomes part of the attachment file name.
	if strings.ContainsFunc(confirmation, func(c rune) bool {
		return c == '/' || c == '\\' || unicode.IsControl(c)
	}) {
		return nil, invalid("confirmationNumber contains invalid characters")
	}

	pdf, err := media.DecodePDF(r.PDFBase64)
	if err != nil {
		return nil, invalid(fmt.Sprintf("pdfBase64 must be a base64-encoded PDF: %v", err))
	}

	return pdf, nil
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, msg)
}
