package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/zwennpay/statements/src/config"
	"github.com/zwennpay/statements/src/logger"
	"github.com/zwennpay/statements/src/models"
)

// NewStatementNotifier selects the notification transport from config.
// Incomplete provider configuration falls back to the mock transport so a
// batch run never breaks on delivery plumbing.
func NewStatementNotifier() StatementNotifier {
	if config.Cfg == nil {
		slog.Error("Configuration (config.Cfg) is nil. Statement notifier will default to mock.")
		return &MockNotifier{}
	}

	provider := strings.ToLower(config.Cfg.EmailServiceProvider)
	logger.L.Info("Initializing statement notifier", "provider", provider)

	switch provider {
	case "mailgun":
		if config.Cfg.MailgunDomain == "" || config.Cfg.MailgunPrivateAPIKey == "" || config.Cfg.SenderEmail == "" {
			logger.L.Warn("Mailgun configuration incomplete (Domain, API Key, or SenderEmail missing). Falling back to MockNotifier.")
			return &MockNotifier{}
		}
		mg := mailgun.NewMailgun(config.Cfg.MailgunDomain, config.Cfg.MailgunPrivateAPIKey)
		logger.L.Info("Mailgun client initialized", "domain", config.Cfg.MailgunDomain)
		return &MailgunNotifier{
			mg:          mg,
			senderEmail: config.Cfg.SenderEmail,
			senderName:  config.Cfg.SenderName,
		}
	case "smtp":
		if config.Cfg.SMTPServer == "" || config.Cfg.SMTPUser == "" || config.Cfg.SMTPPassword == "" || config.Cfg.SenderEmail == "" {
			logger.L.Warn("SMTP configuration incomplete. Falling back to MockNotifier.")
			return &MockNotifier{}
		}
		return &SMTPNotifier{
			SMTPServer:   config.Cfg.SMTPServer,
			SMTPPort:     config.Cfg.SMTPPort,
			SMTPUser:     config.Cfg.SMTPUser,
			SMTPPassword: config.Cfg.SMTPPassword,
			SenderEmail:  config.Cfg.SenderEmail,
		}
	default:
		logger.L.Info("Defaulting to MockNotifier.")
		return &MockNotifier{}
	}
}

func statementSubject(period models.PeriodWindow) string {
	return fmt.Sprintf("Your Statement of Account: %s - %s", period.StartLabel(), period.EndLabel())
}

func statementPlainBody(recipientName string, period models.PeriodWindow) string {
	return fmt.Sprintf(`Dear %s,

Please find attached your statement of account for the period %s to %s.

For inquiries or disputes, reply to this email.

Regards,
%s`, recipientName, period.StartLabel(), period.EndLabel(), config.Cfg.IssuerName)
}

func statementHTMLBody(recipientName string, period models.PeriodWindow) string {
	return fmt.Sprintf(`
	<html>
		<body style="font-family: Arial, sans-serif; line-height: 1.6;">
			<p>Dear %s,</p>
			<p>Please find attached your <b>statement of account</b> for the period <b>%s</b> to <b>%s</b>.</p>
			<p>For inquiries or disputes, reply to this email.</p>
			<p>Regards,<br>%s</p>
		</body>
	</html>`, recipientName, period.StartLabel(), period.EndLabel(), config.Cfg.IssuerName)
}

type MailgunNotifier struct {
	mg          mailgun.Mailgun
	senderEmail string
	senderName  string
}

func (s *MailgunNotifier) Notify(recipientEmail, recipientName string, document *models.StatementDocument, period models.PeriodWindow) error {
	from := fmt.Sprintf("%s <%s>", s.senderName, s.senderEmail)

	message := s.mg.NewMessage(from, statementSubject(period), statementPlainBody(recipientName, period), recipientEmail)
	message.SetHtml(statementHTMLBody(recipientName, period))
	message.AddBufferAttachment(document.Filename, document.Content)
	message.AddTag("statement-of-account")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*20)
	defer cancel()

	resp, id, err := s.mg.Send(ctx, message)
	if err != nil {
		logger.L.Error("Failed to send statement via Mailgun", "error", err, "to", recipientEmail, "mailgunResp", resp, "mailgunId", id)
		return fmt.Errorf("mailgun send failed: %w", err)
	}
	logger.L.Info("Statement sent successfully via Mailgun", "to", recipientEmail, "filename", document.Filename, "id", id)
	return nil
}

type SMTPNotifier struct {
	SMTPServer   string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SenderEmail  string
}

func (s *SMTPNotifier) Notify(recipientEmail, recipientName string, document *models.StatementDocument, period models.PeriodWindow) error {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	// header lines precede the multipart content, so assemble them separately
	msg := &bytes.Buffer{}
	fmt.Fprintf(msg, "From: %s\r\n", s.SenderEmail)
	fmt.Fprintf(msg, "To: %s\r\n", recipientEmail)
	fmt.Fprintf(msg, "Subject: %s\r\n", statementSubject(period))
	fmt.Fprintf(msg, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(msg, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", mw.Boundary())

	htmlHeader := textproto.MIMEHeader{}
	htmlHeader.Set("Content-Type", "text/html; charset=\"UTF-8\"")
	htmlPart, err := mw.CreatePart(htmlHeader)
	if err != nil {
		return fmt.Errorf("failed to build email body: %w", err)
	}
	fmt.Fprint(htmlPart, statementHTMLBody(recipientName, period))

	attachHeader := textproto.MIMEHeader{}
	attachHeader.Set("Content-Type", "application/pdf; name="+document.Filename)
	attachHeader.Set("Content-Transfer-Encoding", "base64")
	attachHeader.Set("Content-Disposition", "attachment; filename="+document.Filename)
	attachPart, err := mw.CreatePart(attachHeader)
	if err != nil {
		return fmt.Errorf("failed to build email attachment: %w", err)
	}
	fmt.Fprint(attachPart, base64.StdEncoding.EncodeToString(document.Content))

	if err := mw.Close(); err != nil {
		return fmt.Errorf("failed to finalize email message: %w", err)
	}
	msg.Write(body.Bytes())

	auth := smtp.PlainAuth("", s.SMTPUser, s.SMTPPassword, s.SMTPServer)
	addr := fmt.Sprintf("%s:%d", s.SMTPServer, s.SMTPPort)
	if err := smtp.SendMail(addr, auth, s.SenderEmail, []string{recipientEmail}, msg.Bytes()); err != nil {
		logger.L.Error("Failed to send statement via SMTP", "error", err, "to", recipientEmail)
		return fmt.Errorf("failed to send statement via SMTP: %w", err)
	}
	logger.L.Info("Statement sent successfully via SMTP", "to", recipientEmail, "filename", document.Filename)
	return nil
}

type MockNotifier struct{}

func (m *MockNotifier) Notify(recipientEmail, recipientName string, document *models.StatementDocument, period models.PeriodWindow) error {
	logger.L.Info("MockNotifier: Would send statement email.",
		"to", recipientEmail, "recipientName", recipientName,
		"filename", document.Filename, "period", period.StartLabel()+" - "+period.EndLabel())
	return nil
}
