// Package mailer is the notification channel: fire-and-forget email dispatch
// for verification codes, reset codes and order confirmations. A send failure
// never fails the operation that triggered it.
package mailer

import "context"

type Message struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Nop discards all messages. Used when SMTP is not configured.
type Nop struct{}

func (Nop) Send(context.Context, Message) error { return nil }
