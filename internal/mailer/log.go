package mailer

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Log is a development Sender that records message metadata instead of
// delivering it.
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Send(ctx context.Context, msg Message) (*Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(msg.Attachments))
	size := 0
	for _, a := range msg.Attachments {
		names = append(names, a.Name)
		size += len(a.Content)
	}

	id := uuid.NewString()
	l.logger.InfoContext(ctx, "mailer: email not sent (log driver)",
		"message_id", id,
		"subject", msg.Subject,
		"attachments", names,
		"attachment_bytes", size,
	)

	return &Receipt{
		To:          msg.To,
		SubmittedAt: time.Now().UTC(),
		MessageID:   id,
		Message:     "OK",
	}, nil
}
