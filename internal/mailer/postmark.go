package mailer

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/mrz1836/postmark"
)

// Postmark error code for a missing or invalid server token.
const postmarkErrInvalidToken = 10

// Postmark sends email through Postmark's transactional API.
type Postmark struct {
	client *postmark.Client
}

// NewPostmark returns a Postmark sender. An empty server token is accepted
// here; callers decide whether sending is allowed.
func NewPostmark(serverToken, accountToken string) *Postmark {
	return &Postmark{
		client: postmark.NewClient(serverToken, accountToken),
	}
}

// WithBaseURL points the client at a different API root.
func (p *Postmark) WithBaseURL(url string) *Postmark {
	p.client.BaseURL = url
	return p
}

// Send implements Sender.
func (p *Postmark) Send(ctx context.Context, msg Message) (*Receipt, error) {
	email := postmark.Email{
		From:     msg.From,
		To:       msg.To,
		Subject:  msg.Subject,
		Tag:      msg.Tag,
		HTMLBody: msg.HTMLBody,
	}
	for _, a := range msg.Attachments {
		email.Attachments = append(email.Attachments, postmark.Attachment{
			Name:        a.Name,
			Content:     base64.StdEncoding.EncodeToString(a.Content),
			ContentType: a.ContentType,
			ContentID:   a.ContentID,
		})
	}

	resp, err := p.client.SendEmail(ctx, email)

	// Statuses of 400 and above come back as an APIError with resp left
	// empty; a 200 can still carry a non-zero ErrorCode.
	code, message := resp.ErrorCode, resp.Message
	var apiErr postmark.APIError
	if errors.As(err, &apiErr) {
		code, message = apiErr.ErrorCode, apiErr.Message
	}

	receipt := &Receipt{
		To:          resp.To,
		SubmittedAt: resp.SubmittedAt,
		MessageID:   resp.MessageID,
		ErrorCode:   code,
		Message:     message,
	}

	switch {
	case code == postmarkErrInvalidToken:
		return receipt, fmt.Errorf("%w: %s", ErrUnauthorized, message)
	case code != 0:
		return receipt, fmt.Errorf("%w: postmark error %d: %s", ErrRejected, code, message)
	case err != nil:
		return nil, fmt.Errorf("postmark: send: %w", err)
	}

	return receipt, nil
}
