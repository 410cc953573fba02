// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package contact handles demo requests from the marketing site.

A request is either turned into a pre-filled mailto link for the
visitor's own mail client, or recorded as a [Lead] and relayed to the
sales inbox over SMTP.
*/
package contact

import (
	"strings"
	"time"

	"github.com/taibuivan/revenuegear/internal/platform/validate"
)

// Field names and limits.
const (
	FieldName       = "name"
	FieldEmail      = "email"
	FieldPhone      = "phone"
	FieldDealership = "dealership"
	FieldAddress    = "address"
	FieldMessage    = "message"

	MaxNameLength    = 200
	MaxEmailLength   = 254
	MaxShortLength   = 200
	MaxMessageLength = 5000
)

// Request is a submitted contact form. The modal sends Name; the legacy
// relay route sends FirstName and LastName.
type Request struct {
	Name       string `json:"name"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Dealership string `json:"dealership"`
	Address    string `json:"address"`
	Message    string `json:"message"`
}

// Normalize trims surrounding whitespace from every field.
func (r *Request) Normalize() {
	for _, field := range []*string{
		&r.Name, &r.FirstName, &r.LastName, &r.Email,
		&r.Phone, &r.Dealership, &r.Address, &r.Message,
	} {
		*field = strings.TrimSpace(*field)
	}
}

// FullName returns Name, or FirstName and LastName joined by a space.
func (r Request) FullName() string {
	if r.Name != "" {
		return r.Name
	}
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}

// Validate requires a name and a plausible email address.
func (r Request) Validate() error {
	validator := &validate.Validator{}
	name := r.FullName()

	validator.Required(FieldName, name).MaxLen(FieldName, name, MaxNameLength)
	validator.Required(FieldEmail, r.Email).
		EmailShape(FieldEmail, r.Email).
		MaxLen(FieldEmail, r.Email, MaxEmailLength)
	validator.MaxLen(FieldPhone, r.Phone, MaxShortLength)
	validator.MaxLen(FieldDealership, r.Dealership, MaxShortLength)
	validator.MaxLen(FieldAddress, r.Address, MaxShortLength)
	validator.MaxLen(FieldMessage, r.Message, MaxMessageLength)

	return validator.Err()
}

// Status tracks a lead through the relay.
type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
)

// Lead is a persisted demo request.
type Lead struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Dealership string    `json:"dealership"`
	Address    string    `json:"address"`
	Message    string    `json:"message"`
	Status     Status    `json:"status"`
	RelayError string    `json:"relay_error,omitempty"`
	SourceIP   string    `json:"source_ip,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
