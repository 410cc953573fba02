// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contact

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// Fallbacks used when optional fields are blank.
const (
	NotProvided       = "Not provided"
	NoMessageProvided = "No message provided"

	mailtoFooter = "This request was submitted via the RevenueGear contact form."
)

// leadingSpace matches indentation and blank lines.
var leadingSpace = regexp.MustCompile(`(?m)^\s+`)

// MailtoSubject is the subject line of a mailto link.
func MailtoSubject(r Request) string {
	return "Demo Request from " + r.FullName()
}

// MailtoBody renders the plain-text body of a mailto link. Every line is
// left-trimmed and blank lines are dropped.
func MailtoBody(r Request) string {
	body := fmt.Sprintf(`
Name: %s
Email: %s
Dealership: %s
Address: %s
Phone: %s
Message: %s

%s
`,
		r.FullName(),
		r.Email,
		orDefault(r.Dealership, NotProvided),
		r.Address,
		orDefault(r.Phone, NotProvided),
		orDefault(r.Message, NoMessageProvided),
		mailtoFooter,
	)
	return leadingSpace.ReplaceAllString(body, "")
}

// ComposeMailto builds the mailto URL opened by the visitor's mail client.
func ComposeMailto(recipient string, r Request) string {
	return "mailto:" + recipient +
		"?subject=" + EncodeURIComponent(MailtoSubject(r)) +
		"&body=" + EncodeURIComponent(MailtoBody(r))
}

// uriUnreserved are the marks browsers leave unescaped in URI components
// but url.QueryEscape escapes.
var uriUnreserved = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent percent-encodes s the way browsers encode a URI component.
func EncodeURIComponent(s string) string {
	return uriUnreserved.Replace(url.QueryEscape(s))
}

// relayTemplate is the HTML email sent to the sales inbox.
var relayTemplate = template.Must(template.New("relay").Parse(`
<h1>New Demo Request</h1>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Dealership:</strong> {{.Dealership}}</p>
<p><strong>Phone:</strong> {{.Phone}}</p>
{{- if .Address}}
<p><strong>Address:</strong> {{.Address}}</p>
{{- end}}
<p><strong>Message:</strong> {{.Message}}</p>
<p><strong>Date:</strong> {{.Date}}</p>
`))

// relayDateLayout mirrors an en-US locale date string.
const relayDateLayout = "1/2/2006, 3:04:05 PM"

// ComposeRelay renders the subject and HTML body of the relay email.
// Field values are HTML-escaped.
func ComposeRelay(r Request, sentAt time.Time) (subject, html string, err error) {
	var buf bytes.Buffer
	err = relayTemplate.Execute(&buf, struct {
		Name, Email, Dealership, Phone, Address, Message, Date string
	}{
		Name:       r.FullName(),
		Email:      r.Email,
		Dealership: r.Dealership,
		Phone:      r.Phone,
		Address:    r.Address,
		Message:    orDefault(r.Message, NoMessageProvided),
		Date:       sentAt.Format(relayDateLayout),
	})
	if err != nil {
		return "", "", fmt.Errorf("contact: render relay email: %w", err)
	}

	return "New Demo Request from " + r.FullName(), buf.String(), nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
