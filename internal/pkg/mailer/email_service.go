package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendAssessmentReport(toEmail, patientName, patientEmail, summary, urgency string, riskScore int) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: username,
		senderName:  senderName,
	}
}

func (s *emailService) SendAssessmentReport(toEmail, patientName, patientEmail, summary, urgency string, riskScore int) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Mental Assessment Report for %s", patientName))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Assessment Report</h2>
			<p><strong>Patient:</strong> %s (%s)</p>
			<p><strong>Urgency:</strong> %s</p>
			<p><strong>Risk Score:</strong> %d</p>
			<h3>Summary</h3>
			<p>%s</p>
		</div>
	`, patientName, patientEmail, urgency, riskScore, summary)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send assessment report to %s: %w", toEmail, err)
	}

	return nil
}
