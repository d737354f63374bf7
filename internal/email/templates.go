package email

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"guidehub_backend/internal/logger"
	"guidehub_backend/internal/models"
)

var baseTmpl = template.Must(template.New("base").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #1a1a2e;">{{.Heading}}</h2>
  <p>Hi {{.Name}},</p>
  {{.Body}}
  {{if .LinkURL}}
  <p style="margin: 24px 0;">
    <a href="{{.LinkURL}}" style="background: #4361ee; color: #fff; padding: 12px 24px; border-radius: 6px; text-decoration: none;">{{.LinkText}}</a>
  </p>
  {{end}}
  <p style="color: #888; font-size: 12px; margin-top: 32px;">GuideHub</p>
</div>
`))

type templateData struct {
	Heading  string
	Name     string
	Body     template.HTML
	LinkURL  string
	LinkText string
}

func render(data templateData) (string, error) {
	var buf bytes.Buffer
	if err := baseTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Mailer wraps Sender with the typed messages the services send. Every
// method logs and swallows failures so callers never roll back on mail.
type Mailer struct {
	sender  Sender
	baseURL string
}

func NewMailer(sender Sender, baseURL string) *Mailer {
	return &Mailer{sender: sender, baseURL: baseURL}
}

func (m *Mailer) send(to, subject string, data templateData) {
	body, err := render(data)
	if err != nil {
		logger.WithError(err).Error("failed to render email", "subject", subject)
		return
	}
	if err := m.sender.Send(to, subject, body); err != nil {
		logger.WithError(err).Warn("failed to send email", "to", to, "subject", subject)
	}
}

func (m *Mailer) SendWelcome(user *models.User) {
	m.send(user.Email, "Welcome to GuideHub", templateData{
		Heading:  "Welcome aboard",
		Name:     user.Name,
		Body:     "<p>Your account is ready. Browse the guide library and see what the community is writing.</p>",
		LinkURL:  m.baseURL + "/guides",
		LinkText: "Browse guides",
	})
}

func (m *Mailer) SendVerification(user *models.User, token string) {
	m.send(user.Email, "Verify your email", templateData{
		Heading:  "Confirm your email address",
		Name:     user.Name,
		Body:     "<p>Click the button below to verify your email address.</p>",
		LinkURL:  fmt.Sprintf("%s/verify-email?token=%s", m.baseURL, token),
		LinkText: "Verify email",
	})
}

func (m *Mailer) SendPaymentReceived(admin string, userEmail string, plan models.PlanName, amount float64, currency string) {
	body := fmt.Sprintf(
		"<p>%s submitted a manual payment for the <b>%s</b> plan (%.2f %s). The payment is waiting for verification.</p>",
		template.HTMLEscapeString(userEmail), plan, amount, currency)
	m.send(admin, "Payment awaiting verification", templateData{
		Heading:  "New payment to review",
		Name:     "admin",
		Body:     template.HTML(body),
		LinkURL:  m.baseURL + "/admin/subscriptions?status=pending_manual_verification",
		LinkText: "Review payments",
	})
}

func (m *Mailer) SendSubscriptionActivated(user *models.User, plan models.PlanName, endDate *time.Time) {
	body := fmt.Sprintf("<p>Your <b>%s</b> subscription is now active.</p>", plan)
	if endDate != nil {
		body += fmt.Sprintf("<p>It runs until %s.</p>", endDate.Format("2 January 2006"))
	}
	m.send(user.Email, "Your subscription is active", templateData{
		Heading:  "Payment verified",
		Name:     user.Name,
		Body:     template.HTML(body),
		LinkURL:  m.baseURL + "/guides",
		LinkText: "Read premium guides",
	})
}

func (m *Mailer) SendSubscriptionRejected(user *models.User, notes string) {
	body := "<p>We could not verify your payment.</p>"
	if notes != "" {
		body += fmt.Sprintf("<p>Reviewer notes: %s</p>", template.HTMLEscapeString(notes))
	}
	body += "<p>You can resubmit the payment details from your account page.</p>"
	m.send(user.Email, "Payment verification failed", templateData{
		Heading: "Payment not verified",
		Name:    user.Name,
		Body:    template.HTML(body),
	})
}

func (m *Mailer) SendSubscriptionCancelled(user *models.User) {
	m.send(user.Email, "Subscription cancelled", templateData{
		Heading: "Your subscription was cancelled",
		Name:    user.Name,
		Body:    "<p>Your premium access has ended. You can subscribe again at any time.</p>",
	})
}

func (m *Mailer) SendExpiryReminder(user *models.User, endDate time.Time) {
	body := fmt.Sprintf("<p>Your premium subscription expires on %s. Renew to keep access to premium guides.</p>",
		endDate.Format("2 January 2006"))
	m.send(user.Email, "Your subscription expires soon", templateData{
		Heading:  "Subscription expiring",
		Name:     user.Name,
		Body:     template.HTML(body),
		LinkURL:  m.baseURL + "/premium",
		LinkText: "Renew now",
	})
}

func (m *Mailer) SendNewsletter(to, subject, htmlBody, unsubscribeToken string) error {
	footer := fmt.Sprintf(
		`<p style="color: #888; font-size: 12px;"><a href="%s/newsletter/unsubscribe?token=%s">Unsubscribe</a></p>`,
		m.baseURL, unsubscribeToken)
	return m.sender.Send(to, subject, htmlBody+footer)
}
