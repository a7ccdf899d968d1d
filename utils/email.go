package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// EmailService sends transactional wallet emails over SMTP. It satisfies the
// notification contract consumed by the transaction service.
type EmailService struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// NewEmailService builds an EmailService from environment variables
func NewEmailService() *EmailService {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port == 0 {
		port = 587
	}
	return &EmailService{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

func (s *EmailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.Host, s.Port, s.Username, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}

// SendTopUpSuccessEmail notifies a user that their wallet top-up settled
func (s *EmailService) SendTopUpSuccessEmail(email, name string, amount float64, ref string, newBalance float64) error {
	subject := "Wallet Top-up Successful"
	body := fmt.Sprintf(`
		<h2>Hi %s,</h2>
		<p>Your wallet top-up of <b>%.2f</b> was successful.</p>
		<p>Reference: %s</p>
		<p>Your available balance is now <b>%.2f</b>.</p>
		<p>Thank you for riding with CampusRide!</p>
	`, name, amount, ref, newBalance)

	return s.send(email, subject, body)
}

// SendPaymentFailedEmail notifies a user that their top-up payment failed
func (s *EmailService) SendPaymentFailedEmail(email, name string, amount float64, ref, reason string) error {
	subject := "Wallet Top-up Failed"
	body := fmt.Sprintf(`
		<h2>Hi %s,</h2>
		<p>Your wallet top-up of <b>%.2f</b> could not be completed.</p>
		<p>Reference: %s</p>
		<p>Reason: %s</p>
		<p>No money has been added to your wallet. You can retry the top-up at any time.</p>
	`, name, amount, ref, reason)

	return s.send(email, subject, body)
}
