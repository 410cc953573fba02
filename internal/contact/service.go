// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contact

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/revenuegear/internal/platform/apperr"
	"github.com/taibuivan/revenuegear/pkg/uuidv7"
)

// relayTimeout bounds one SMTP delivery.
const relayTimeout = 20 * time.Second

// ErrRelayFailed is returned when the lead was stored but the email was not delivered.
var ErrRelayFailed = apperr.BadGateway("RELAY_FAILED", "Failed to send email", nil)

// Options holds the addresses used by the [Service].
type Options struct {
	// From is the relay sender, normally the SMTP account.
	From string
	// Recipient receives relayed leads.
	Recipient string
	// MailtoRecipient is the address in generated mailto links.
	MailtoRecipient string
}

// MailtoLink is a pre-filled email for the visitor's own client.
type MailtoLink struct {
	URL     string `json:"url"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// # Service Layer

// Service validates contact requests, records leads and relays them.
type Service struct {
	repo   Repository
	mailer Mailer
	logger *slog.Logger
	opts   Options
	now    func() time.Time
}

// NewService constructs a contact [Service].
func NewService(repo Repository, mailer Mailer, logger *slog.Logger, opts Options) *Service {
	if opts.MailtoRecipient == "" {
		opts.MailtoRecipient = opts.Recipient
	}
	return &Service{
		repo:   repo,
		mailer: mailer,
		logger: logger,
		opts:   opts,
		now:    time.Now,
	}
}

// Mailto validates the request and composes its mailto link. Nothing is stored.
func (service *Service) Mailto(req Request) (MailtoLink, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return MailtoLink{}, err
	}

	return MailtoLink{
		URL:     ComposeMailto(service.opts.MailtoRecipient, req),
		Subject: MailtoSubject(req),
		Body:    MailtoBody(req),
	}, nil
}

/*
Submit records a lead and relays it to the sales inbox.

The lead is stored as pending before the relay so a failed delivery is
never lost; it is then marked sent or failed.

Returns:
  - *Lead: The stored lead with its final status
  - error: VALIDATION_ERROR, or RELAY_FAILED when delivery fails
*/
func (service *Service) Submit(ctx context.Context, req Request, sourceIP string) (*Lead, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	lead := &Lead{
		ID:         uuidv7.New(),
		Name:       req.FullName(),
		Email:      req.Email,
		Phone:      req.Phone,
		Dealership: req.Dealership,
		Address:    req.Address,
		Message:    req.Message,
		Status:     StatusPending,
		SourceIP:   sourceIP,
	}
	if err := service.repo.Create(ctx, lead); err != nil {
		return nil, err
	}

	subject, html, err := ComposeRelay(req, service.now())
	if err != nil {
		return nil, apperr.Internal(err)
	}

	relayCtx, cancel := context.WithTimeout(ctx, relayTimeout)
	defer cancel()

	sendErr := service.mailer.Send(relayCtx, Message{
		From:    service.opts.From,
		To:      service.opts.Recipient,
		ReplyTo: req.Email,
		Subject: subject,
		HTML:    html,
	})

	if sendErr != nil {
		lead.Status = StatusFailed
		lead.RelayError = sendErr.Error()
	} else {
		lead.Status = StatusSent
	}

	if err := service.repo.UpdateStatus(ctx, lead.ID, lead.Status, lead.RelayError); err != nil {
		service.logger.ErrorContext(ctx, "contact_status_update_failed",
			slog.String("lead_id", lead.ID),
			slog.Any("error", err),
		)
	}

	if sendErr != nil {
		service.logger.ErrorContext(ctx, "contact_relay_failed",
			slog.String("lead_id", lead.ID),
			slog.String("error", sendErr.Error()),
		)
		return lead, ErrRelayFailed.WithCause(sendErr)
	}

	service.logger.InfoContext(ctx, "contact_relayed", slog.String("lead_id", lead.ID))
	return lead, nil
}

// ListLeads returns a page of leads for review.
func (service *Service) ListLeads(ctx context.Context, limit, offset int) ([]*Lead, int, error) {
	return service.repo.List(ctx, limit, offset)
}
