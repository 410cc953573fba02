// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contact

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wneessen/go-mail"
)

// Message is one outgoing email.
type Message struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	HTML    string
}

// Mailer delivers a [Message].
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer relays mail through an authenticated SMTP server with STARTTLS.
type SMTPMailer struct {
	client *mail.Client
}

// NewSMTPMailer creates a mailer for host:port using PLAIN auth.
func NewSMTPMailer(host string, port int, username, password string) (*SMTPMailer, error) {
	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(username),
		mail.WithPassword(password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("contact: create smtp client: %w", err)
	}
	return &SMTPMailer{client: client}, nil
}

// Send dials the server, delivers msg and hangs up.
func (mailer *SMTPMailer) Send(ctx context.Context, msg Message) error {
	m := mail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return fmt.Errorf("contact: from address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("contact: to address: %w", err)
	}
	if msg.ReplyTo != "" {
		if err := m.ReplyTo(msg.ReplyTo); err != nil {
			return fmt.Errorf("contact: reply-to address: %w", err)
		}
	}
	m.Subject(msg.Subject)
	m.SetDate()
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)

	if err := mailer.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("contact: smtp send: %w", err)
	}
	return nil
}

// LogMailer only logs messages. It stands in for SMTP when no relay
// credentials are configured.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a [LogMailer].
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (mailer *LogMailer) Send(ctx context.Context, msg Message) error {
	mailer.logger.InfoContext(ctx, "contact_mail_logged",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
	)
	return nil
}
