// Package templates renders outbox entries into channel-specific messages.
//
// Rendering does no timezone math: date and time values arrive in the payload
// already localized. An unknown template id, or one that fails to execute,
// renders the generic fallback so a bad entry never blocks the drain.
package templates

import (
	"bytes"
	_ "embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
)

const fallbackName = "fallback"

// layout blocks and set roots that are not message templates
var partials = map[string]bool{
	"sms":     true,
	"email":   true,
	"open":    true,
	"close":   true,
	"details": true,
}

var (
	//go:embed sms.tmpl
	smsSource string

	//go:embed email.html
	emailSource string
)

// email subjects and badges
var titles = map[domain.TemplateID]string{
	domain.TemplatePendingCustomer:     "Αίτημα Καταχωρήθηκε ⏳",
	domain.TemplateConfirmedCustomer:   "Ραντεβού Επιβεβαιώθηκε ✅",
	domain.TemplateCanceledCustomer:    "Ραντεβού Ακυρώθηκε ❌",
	domain.TemplateRescheduledCustomer: "Αλλαγή Ώρας Ραντεβού 🔄",
	domain.TemplateReminder24h:         "Υπενθύμιση Ραντεβού ⏰",
	domain.TemplatePendingBusiness:     "Νέο Αίτημα Ραντεβού",
	domain.TemplateConfirmedBusiness:   "Ραντεβού Επιβεβαιώθηκε",
}

const fallbackTitle = "Ενημέρωση Ραντεβού"

// Message rendered notification
type Message struct {
	Subject string // email only
	Body    string // plain text for SMS, HTML for email
}

// view data passed to every template
type view struct {
	Business      domain.BusinessSettings
	Title         string
	Service       string
	Date          string
	Time          string
	NewDate       string
	NewTime       string
	CustomerName  string
	CustomerPhone string
}

// Renderer holds the parsed template sets
type Renderer struct {
	business domain.BusinessSettings
	sms      *texttemplate.Template
	email    *htmltemplate.Template
}

// NewRenderer parses the embedded templates
func NewRenderer(business domain.BusinessSettings) (*Renderer, error) {
	sms, err := texttemplate.New("sms").Option("missingkey=zero").Parse(smsSource)
	if err != nil {
		return nil, fmt.Errorf("templates: parse sms: %w", err)
	}

	email, err := htmltemplate.New("email").Option("missingkey=zero").Parse(emailSource)
	if err != nil {
		return nil, fmt.Errorf("templates: parse email: %w", err)
	}

	return &Renderer{business: business, sms: sms, email: email}, nil
}

// Render builds the message for an outbox entry; never fails
func (r *Renderer) Render(channel domain.Channel, id domain.TemplateID, payload map[string]string) Message {
	v := r.view(id, payload)

	if channel == domain.ChannelEmail {
		return Message{
			Subject: fmt.Sprintf("%s – %s", v.Title, r.business.Name),
			Body:    r.execEmail(string(id), v),
		}
	}

	return Message{Body: r.execSMS(string(id), v)}
}

func (r *Renderer) execSMS(name string, v view) string {
	var buf bytes.Buffer
	if t := r.sms.Lookup(name); t != nil && !partials[name] {
		if err := t.Execute(&buf, v); err == nil {
			return buf.String()
		}
		buf.Reset()
	}
	if err := r.sms.ExecuteTemplate(&buf, fallbackName, v); err != nil {
		return fmt.Sprintf("[%s] Ενημέρωση ραντεβού: %s %s.", r.business.Name, v.Date, v.Time)
	}
	return buf.String()
}

func (r *Renderer) execEmail(name string, v view) string {
	var buf bytes.Buffer
	if t := r.email.Lookup(name); t != nil && !partials[name] {
		if err := t.Execute(&buf, v); err == nil {
			return buf.String()
		}
		buf.Reset()
	}
	v.Title = fallbackTitle
	if err := r.email.ExecuteTemplate(&buf, fallbackName, v); err != nil {
		return htmltemplate.HTMLEscapeString(fmt.Sprintf("%s %s", v.Date, v.Time))
	}
	return buf.String()
}

func (r *Renderer) view(id domain.TemplateID, p map[string]string) view {
	title, ok := titles[id]
	if !ok {
		title = fallbackTitle
	}

	v := view{
		Business:      r.business,
		Title:         title,
		Service:       p[domain.PayloadService],
		Date:          p[domain.PayloadDate],
		Time:          p[domain.PayloadTime],
		NewDate:       p[domain.PayloadNewDate],
		NewTime:       p[domain.PayloadNewTime],
		CustomerName:  p[domain.PayloadCustomerName],
		CustomerPhone: p[domain.PayloadCustomerPhone],
	}
	if v.NewDate == "" {
		v.NewDate = v.Date
	}
	if v.NewTime == "" {
		v.NewTime = v.Time
	}
	if v.CustomerName == "" {
		v.CustomerName = "Πελάτη"
	}
	return v
}
