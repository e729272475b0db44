package voucher_test

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letsgomakkah/voucher/internal/voucher"
)

func TestRequest_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(r *voucher.Request)
		errMsg string
	}{
		{
			name:   "valid",
			mutate: func(r *voucher.Request) {},
		},
		{
			name:   "data uri pdf",
			mutate: func(r *voucher.Request) { r.PDFBase64 = "data:application/pdf;base64," + r.PDFBase64 },
		},
		{
			name:   "missing recipient",
			mutate: func(r *voucher.Request) { r.RecipientEmail = "" },
			errMsg: "recipientEmail is required",
		},
		{
			name:   "whitespace recipient",
			mutate: func(r *voucher.Request) { r.RecipientEmail = "   " },
			errMsg: "recipientEmail is required",
		},
		{
			name:   "missing pdf",
			mutate: func(r *voucher.Request) { r.PDFBase64 = "" },
			errMsg: "pdfBase64 is required",
		},
		{
			name:   "missing confirmation number",
			mutate: func(r *voucher.Request) { r.ConfirmationNumber = "" },
			errMsg: "confirmationNumber is required",
		},
		{
			name:   "invalid recipient",
			mutate: func(r *voucher.Request) { r.RecipientEmail = "user@" },
			errMsg: "recipientEmail must be a valid email address",
		},
		{
			name:   "recipient with display name",
			mutate: func(r *voucher.Request) { r.RecipientEmail = "Guest <a@b.com>" },
			errMsg: "recipientEmail must be a valid email address",
		},
		{
			name:   "invalid base64",
			mutate: func(r *voucher.Request) { r.PDFBase64 = "not base64!" },
			errMsg: "pdfBase64 must be a base64-encoded PDF",
		},
		{
			name:   "base64 that is not a pdf",
			mutate: func(r *voucher.Request) { r.PDFBase64 = base64.StdEncoding.EncodeToString([]byte("plain text")) },
			errMsg: "pdfBase64 must be a base64-encoded PDF",
		},
		{
			name:   "confirmation number with path separator",
			mutate: func(r *voucher.Request) { r.ConfirmationNumber = "../CONF123" },
			errMsg: "confirmationNumber contains invalid characters",
		},
		{
			name:   "confirmation number with newline",
			mutate: func(r *voucher.Request) { r.ConfirmationNumber = "CONF\n123" },
			errMsg: "confirmationNumber contains invalid characters",
		},
		{
			name:   "confirmation number too long",
			mutate: func(r *voucher.Request) { r.ConfirmationNumber = strings.Repeat("A", 65) },
			errMsg: "confirmationNumber must be at most 64 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := validRequest()
			tt.mutate(&req)

			pdf, err := req.Validate()
			if tt.errMsg == "" {
				require.NoError(t, err)
				assert.Equal(t, samplePDF, pdf)
				return
			}

			assert.ErrorIs(t, err, voucher.ErrInvalidRequest)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.Nil(t, pdf)
		})
	}
}

func TestSubjectAndAttachmentName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Your Booking Confirmation: CONF123", voucher.Subject("CONF123"))
	assert.Equal(t, "BookingVoucher-CONF123.pdf", voucher.AttachmentName("CONF123"))
}
