// Package mailer is the boundary to the external email provider. The provider
// itself is opaque to this codebase; the default implementation only logs.
package mailer

import (
	"context"
	"log"
)

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogMailer logs outgoing mail instead of delivering it. Used in development
// and wherever no provider is configured.
type LogMailer struct{}

func NewLogMailer() *LogMailer { return &LogMailer{} }

func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	log.Printf("mail to %s: %s", to, subject)
	return nil
}
