package mailer

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUnauthorized is returned when the provider rejects the sending credential.
	ErrUnauthorized = errors.New("mailer: sending credential rejected")
	// ErrRejected is returned when the provider refuses the message itself.
	ErrRejected = errors.New("mailer: message rejected")
)

// Sender delivers a single transactional email.
type Sender interface {
	Send(ctx context.Context, msg Message) (*Receipt, error)
}

// Message is one outbound email.
type Message struct {
	From        string
	To          string
	Subject     string
	HTMLBody    string
	Tag         string
	Attachments []Attachment
}

// Attachment holds raw file content; senders encode it for the wire.
type Attachment struct {
	Name        string
	ContentType string
	Content     []byte
	ContentID   string
}

// Receipt is the provider's response, kept with the provider's field names so
// it can be handed back to callers as-is.
type Receipt struct {
	To          string    `json:"To"`
	SubmittedAt time.Time `json:"SubmittedAt"`
	MessageID   string    `json:"MessageID"`
	ErrorCode   int64     `json:"ErrorCode"`
	Message     string    `json:"Message"`
}
