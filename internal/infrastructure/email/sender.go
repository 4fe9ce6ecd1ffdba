package email

import (
	"context"
	"time"
)

// SendRequest carries one outbound email for an external provider.
type SendRequest struct {
	To      []string
	From    string
	Subject string
	HTML    string
}

// SendResult is the provider's acceptance of a send.
type SendResult struct {
	MessageID string
	SentAt    time.Time
}

// Sender delivers email through an external provider.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}
