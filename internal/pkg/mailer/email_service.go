package mailer

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"
)

// LeadConfirmation is what the confirmation mail tells the prospect.
type LeadConfirmation struct {
	Name         string
	PropertyType string
	Location     string
	Budget       string
	Timeline     string
}

type IEmailService interface {
	SendLeadConfirmation(toEmail string, lead LeadConfirmation) error
	SendFollowUpNotice(toEmail, taskTitle string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderName string) IEmailService {
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: username,
		senderName:  senderName,
	}
}

func (s *emailService) SendLeadConfirmation(toEmail string, lead LeadConfirmation) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "We received your commercial property request")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Thank you, %s!</h2>
			<p>Your commercial real estate requirements have been received.</p>
			<ul>
				<li>Property type: %s</li>
				<li>Location: %s</li>
				<li>Budget: %s</li>
				<li>Timeline: %s</li>
			</ul>
			<p>Our experts will analyze your needs and send personalized property recommendations within 24 hours.</p>
		</div>
	`, escape(lead.Name), escape(lead.PropertyType), escape(lead.Location), escape(lead.Budget), escape(lead.Timeline))

	m.SetBody("text/html", body)
	return s.send(m, toEmail)
}

func (s *emailService) SendFollowUpNotice(toEmail, taskTitle string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "New follow-up task")
	m.SetBody("text/plain", "A follow-up task was created: "+taskTitle)
	return s.send(m, toEmail)
}

func (s *emailService) send(m *gomail.Message, to string) error {
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string {
	return htmlEscaper.Replace(s)
}
