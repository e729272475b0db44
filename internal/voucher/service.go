package voucher

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/letsgomakkah/voucher/internal/mailer"
	"github.com/letsgomakkah/voucher/internal/media"
)

//go:embed templates/voucher_email.html
var templateFS embed.FS

var emailTmpl = template.Must(template.ParseFS(templateFS, "templates/voucher_email.html"))

const (
	SuccessMessage = "Email sent successfully!"

	subjectPrefix = "Your Booking Confirmation: "
	attachmentCID = "outbound"
	messageTag    = "booking-voucher"
	brand         = "Let's Go Makkah."
)

type Config struct {
	// ServerToken is the sending credential. Empty means sending is disabled.
	ServerToken string
	FromEmail   string
	Timeout     time.Duration
}

// Result is returned for a delivered voucher. ProviderResponse is the
// provider's receipt, unmodified.
type Result struct {
	Success          bool            `json:"success"`
	Message          string          `json:"message"`
	ProviderResponse *mailer.Receipt `json:"postmarkResponse"`
}

// Service delivers booking vouchers by email. It holds no per-request state
// and is safe for concurrent use.
type Service struct {
	cfg    Config
	sender mailer.Sender
	logger *slog.Logger
}

func NewService(cfg Config, sender mailer.Sender, logger *slog.Logger) *Service {
	return &Service{cfg: cfg, sender: sender, logger: logger}
}

// Configured reports whether a sending credential is present.
func (s *Service) Configured() bool {
	return s.cfg.ServerToken != ""
}

// Deliver sends exactly one email carrying the voucher PDF. Every failure is
// terminal; there is no retry and no deduplication.
func (s *Service) Deliver(ctx context.Context, req Request) (*Result, error) {
	if !s.Configured() {
		s.logger.ErrorContext(ctx, "voucher: sending credential missing")
		return nil, ErrNotConfigured
	}

	pdf, err := req.Validate()
	if err != nil {
		return nil, err
	}

	msg, err := s.buildMessage(req, pdf)
	if err != nil {
		return nil, &DeliveryError{Err: err}
	}

	deliveryID := uuid.NewString()
	logger := s.logger.With(
		"delivery_id", deliveryID,
		"confirmation_number", msg.confirmation,
		"recipient_domain", recipientDomain(msg.To),
	)

	sendCtx := ctx
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	receipt, err := s.sender.Send(sendCtx, msg.Message)
	if err != nil {
		if errors.Is(err, mailer.ErrUnauthorized) {
			logger.ErrorContext(ctx, "voucher: provider rejected sending credential", "err", err)
		} else {
			logger.ErrorContext(ctx, "voucher: delivery failed", "err", err, "duration", time.Since(start))
		}
		return nil, &DeliveryError{Err: err}
	}
	if receipt == nil {
		receipt = &mailer.Receipt{}
	}

	logger.InfoContext(ctx, "voucher: delivered", "message_id", receipt.MessageID, "duration", time.Since(start))

	return &Result{
		Success:          true,
		Message:          SuccessMessage,
		ProviderResponse: receipt,
	}, nil
}

type builtMessage struct {
	mailer.Message
	confirmation string
}

func (s *Service) buildMessage(req Request, pdf []byte) (builtMessage, error) {
	confirmation := strings.TrimSpace(req.ConfirmationNumber)

	var body bytes.Buffer
	if err := emailTmpl.Execute(&body, struct{ Brand string }{Brand: brand}); err != nil {
		return builtMessage{}, fmt.Errorf("render email body: %w", err)
	}

	return builtMessage{
		Message: mailer.Message{
			From:     s.cfg.FromEmail,
			To:       strings.TrimSpace(req.RecipientEmail),
			Subject:  Subject(confirmation),
			HTMLBody: body.String(),
			Tag:      messageTag,
			Attachments: []mailer.Attachment{{
				Name:        AttachmentName(confirmation),
				ContentType: media.ContentTypePDF,
				Content:     pdf,
				ContentID:   attachmentCID,
			}},
		},
		confirmation: confirmation,
	}, nil
}

// Subject returns the email subject for a confirmation number.
func Subject(confirmationNumber string) string {
	return subjectPrefix + confirmationNumber
}

// AttachmentName returns the voucher file name for a confirmation number.
func AttachmentName(confirmationNumber string) string {
	return "BookingVoucher-" + confirmationNumber + ".pdf"
}

func recipientDomain(addr string) string {
	if i := strings.LastIndexByte(addr, '@'); i >= 0 {
		return addr[i+1:]
	}
	return ""
}
