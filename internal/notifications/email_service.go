package notifications

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net/smtp"
	"strconv"
	"time"
)

// EmailService delivers seat-block notices to recipients.
type EmailService interface {
	SendSeatBlockNotice(ctx context.Context, notification *SeatBlockNotification) error
}

// SMTPConfig holds SMTP configuration
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	UseTLS    bool
}

// SMTPEmailService sends notices over SMTP with STARTTLS.
type SMTPEmailService struct {
	config *SMTPConfig
}

func NewSMTPEmailService(config *SMTPConfig) (*SMTPEmailService, error) {
	if err := validateSMTPConfig(config); err != nil {
		return nil, fmt.Errorf("invalid SMTP configuration: %w", err)
	}
	return &SMTPEmailService{config: config}, nil
}

func validateSMTPConfig(config *SMTPConfig) error {
	if config == nil {
		return fmt.Errorf("SMTP config is nil")
	}
	if config.Host == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if config.Port <= 0 || config.Port > 65535 {
		return fmt.Errorf("SMTP port must be between 1 and 65535")
	}
	if config.Username == "" {
		return fmt.Errorf("SMTP username is required")
	}
	if config.FromEmail == "" {
		return fmt.Errorf("from email is required")
	}
	return nil
}

func (s *SMTPEmailService) SendSeatBlockNotice(ctx context.Context, notification *SeatBlockNotification) error {
	subject := fmt.Sprintf("Seat %s unavailable on %s", notification.SeatCode, notification.BookingDate.Format("2006-01-02"))
	htmlBody, textBody := renderSeatBlockContent(notification)

	return s.sendHTML(notification.RecipientEmail, subject, htmlBody, textBody)
}

func (s *SMTPEmailService) sendHTML(to, subject, htmlBody, textBody string) error {
	message := s.buildMessage(to, subject, htmlBody, textBody)

	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	var err error
	if s.config.UseTLS {
		err = s.sendWithSTARTTLS(addr, auth, to, message)
	} else {
		err = smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	}

	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *SMTPEmailService) sendWithSTARTTLS(addr string, auth smtp.Auth, to string, message []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Quit()

	tlsconfig := &tls.Config{
		ServerName: s.config.Host,
	}

	if err = client.StartTLS(tlsconfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	if auth != nil {
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err = client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return w.Close()
}

func (s *SMTPEmailService) buildMessage(to, subject, htmlBody, textBody string) []byte {
	boundary := "boundary_" + strconv.FormatInt(time.Now().UnixNano(), 10)

	message := fmt.Sprintf("From: %s <%s>\r\n", s.config.FromName, s.config.FromEmail)
	message += fmt.Sprintf("To: %s\r\n", to)
	message += fmt.Sprintf("Subject: %s\r\n", subject)
	message += "MIME-Version: 1.0\r\n"
	message += fmt.Sprintf("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	message += fmt.Sprintf("Content-Type: multipart/alternative; boundary=%s\r\n", boundary)
	message += "\r\n"

	if textBody != "" {
		message += fmt.Sprintf("--%s\r\n", boundary)
		message += "Content-Type: text/plain; charset=UTF-8\r\n\r\n"
		message += textBody + "\r\n"
	}

	if htmlBody != "" {
		message += fmt.Sprintf("--%s\r\n", boundary)
		message += "Content-Type: text/html; charset=UTF-8\r\n\r\n"
		message += htmlBody + "\r\n"
	}

	message += fmt.Sprintf("--%s--\r\n", boundary)

	return []byte(message)
}

func renderSeatBlockContent(n *SeatBlockNotification) (string, string) {
	date := n.BookingDate.Format("Monday, 02 Jan 2006")

	htmlBody := fmt.Sprintf(`
		<h2>Your booked seat is no longer available</h2>
		<p>Hi %s,</p>
		<p>Seat <strong>%s</strong> has been taken out of service and your booking for <strong>%s</strong> (%s) is affected.</p>
		<p>Reason: %s</p>
		<p>Please pick another seat for that day.</p>
	`, n.RecipientName, n.SeatCode, date, n.Slot, n.Reason)

	textBody := fmt.Sprintf(
		"Hi %s,\n\nSeat %s has been taken out of service and your booking for %s (%s) is affected.\nReason: %s\n\nPlease pick another seat for that day.",
		n.RecipientName, n.SeatCode, date, n.Slot, n.Reason,
	)

	return htmlBody, textBody
}

// LogEmailService is the fallback delivery channel when SMTP is not
// configured; notices are written to the application log instead of sent.
type LogEmailService struct{}

func NewLogEmailService() *LogEmailService {
	return &LogEmailService{}
}

func (s *LogEmailService) SendSeatBlockNotice(ctx context.Context, notification *SeatBlockNotification) error {
	log.Printf("[notify] seat %s blocked, booking %s on %s (%s) for %s: %s",
		notification.SeatCode,
		notification.BookingID,
		notification.BookingDate.Format("2006-01-02"),
		notification.Slot,
		notification.RecipientEmail,
		notification.Reason,
	)
	return nil
}
