package templates

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(domain.BusinessSettings{
		Name:         "Musky Paws",
		Phone:        "+306948965371",
		PhoneDisplay: "694 896 5371",
		Address:      "Σόλωνος 28Β, Περαία 570 19",
		BookingURL:   "https://muskypaws.gr/booking",
	})
	require.NoError(t, err)
	return r
}

func payload() map[string]string {
	return map[string]string{
		domain.PayloadService:       "Μπάνιο",
		domain.PayloadDate:          "Τετάρτη 15 Οκτωβρίου",
		domain.PayloadTime:          "09:30",
		domain.PayloadCustomerName:  "Μαρία",
		domain.PayloadCustomerPhone: "+306900000000",
	}
}

func TestRender_SMS(t *testing.T) {
	r := newTestRenderer(t)

	tests := []struct {
		template domain.TemplateID
		want     string
	}{
		{
			template: domain.TemplatePendingCustomer,
			want:     `«Το αίτημά σας για ραντεβού στο "Musky Paws" για Μπάνιο στις Τετάρτη 15 Οκτωβρίου 09:30 καταχωρήθηκε. Θα λάβετε επιβεβαίωση σύντομα. Τηλ: 694 896 5371.»`,
		},
		{
			template: domain.TemplateConfirmedCustomer,
			want:     `«Το ραντεβού σας στο "Musky Paws" για Μπάνιο στις Τετάρτη 15 Οκτωβρίου 09:30 επιβεβαιώθηκε. Για οποιαδήποτε αλλαγή καλέστε στο 694 896 5371.»`,
		},
		{
			template: domain.TemplateCanceledCustomer,
			want:     `«Το ραντεβού σας στο "Musky Paws" στις Τετάρτη 15 Οκτωβρίου 09:30 ακυρώθηκε. Για νέα κράτηση: https://muskypaws.gr/booking ή 694 896 5371.»`,
		},
		{
			template: domain.TemplateReminder2h,
			want:     `«Υπενθύμιση: Σε 2 ώρες στις 09:30 έχετε ραντεβού στο "Musky Paws" (Μπάνιο). Σας περιμένουμε!»`,
		},
		{
			template: domain.TemplatePendingBusiness,
			want:     `[Musky Paws] Νέο αίτημα ραντεβού: Μαρία, Μπάνιο, Τετάρτη 15 Οκτωβρίου 09:30. Τηλ: +306900000000`,
		},
		{
			template: domain.TemplateConfirmedBusiness,
			want:     `[Musky Paws] Επιβεβαιώθηκε: Μαρία, Μπάνιο, Τετάρτη 15 Οκτωβρίου 09:30.`,
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.template), func(t *testing.T) {
			msg := r.Render(domain.ChannelSMS, tt.template, payload())
			assert.Equal(t, tt.want, msg.Body)
			assert.Empty(t, msg.Subject)
		})
	}
}

func TestRender_RescheduledUsesNewInterval(t *testing.T) {
	r := newTestRenderer(t)

	p := payload()
	p[domain.PayloadNewDate] = "Πέμπτη 16 Οκτωβρίου"
	p[domain.PayloadNewTime] = "11:00"

	msg := r.Render(domain.ChannelSMS, domain.TemplateRescheduledCustomer, p)
	assert.Equal(t, `«Το ραντεβού σας στο "Musky Paws" μεταφέρθηκε στις Πέμπτη 16 Οκτωβρίου 11:00. Για αλλαγές καλέστε 694 896 5371.»`, msg.Body)

	// без новых значений подставляются исходные
	msg = r.Render(domain.ChannelSMS, domain.TemplateRescheduledCustomer, payload())
	assert.Contains(t, msg.Body, "μεταφέρθηκε στις Τετάρτη 15 Οκτωβρίου 09:30")
}

func TestRender_UnknownTemplateFallsBack(t *testing.T) {
	r := newTestRenderer(t)

	sms := r.Render(domain.ChannelSMS, "no_such_template", payload())
	assert.Equal(t, "[Musky Paws] Ενημέρωση ραντεβού: Τετάρτη 15 Οκτωβρίου 09:30.", sms.Body)

	email := r.Render(domain.ChannelEmail, "no_such_template", payload())
	assert.Equal(t, "Ενημέρωση Ραντεβού – Musky Paws", email.Subject)
	assert.Contains(t, email.Body, "Ενημέρωση σχετικά με το ραντεβού σας (Τετάρτη 15 Οκτωβρίου 09:30)")

	// вспомогательные блоки не являются шаблонами сообщений
	layout := r.Render(domain.ChannelEmail, "open", payload())
	assert.Equal(t, "Ενημέρωση Ραντεβού – Musky Paws", layout.Subject)
}

func TestRender_Email(t *testing.T) {
	r := newTestRenderer(t)

	msg := r.Render(domain.ChannelEmail, domain.TemplateConfirmedCustomer, payload())
	assert.Equal(t, "Ραντεβού Επιβεβαιώθηκε ✅ – Musky Paws", msg.Subject)
	assert.True(t, strings.HasPrefix(msg.Body, "<!DOCTYPE html>"))
	assert.Contains(t, msg.Body, "Γεια σας, <strong>Μαρία</strong>")
	assert.Contains(t, msg.Body, "Τετάρτη 15 Οκτωβρίου")
	assert.Contains(t, msg.Body, "306948965371")
	assert.Contains(t, msg.Body, "Σόλωνος 28Β, Περαία 570 19")
}

func TestRender_EmailEscapesPayload(t *testing.T) {
	r := newTestRenderer(t)

	p := payload()
	p[domain.PayloadCustomerName] = `<script>alert(1)</script>`

	msg := r.Render(domain.ChannelEmail, domain.TemplatePendingCustomer, p)
	assert.NotContains(t, msg.Body, "<script>")
	assert.Contains(t, msg.Body, "&lt;script&gt;")
}

func TestRender_MissingNameDefaults(t *testing.T) {
	r := newTestRenderer(t)

	p := payload()
	delete(p, domain.PayloadCustomerName)

	msg := r.Render(domain.ChannelEmail, domain.TemplateReminder24h, p)
	assert.Contains(t, msg.Body, "Γεια σας, <strong>Πελάτη</strong>")
}
