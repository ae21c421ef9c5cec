package client

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"go.uber.org/zap"

	"taskboard-api/internal/metrics"
)

// EmailMessage is one outbound HTML email
type EmailMessage struct {
	To       string
	Subject  string
	HTMLBody string
}

// EmailClient sends transactional email
type EmailClient interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// SMTPConfig holds outbound mail settings
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// smtpEmailClient implements EmailClient over SMTP with STARTTLS when the server offers it
type smtpEmailClient struct {
	cfg      SMTPConfig
	logger   *zap.Logger
	metrics  *metrics.Metrics
	sendMail sendMailFunc
}

// NewSMTPEmailClient creates a new SMTP email client
func NewSMTPEmailClient(cfg SMTPConfig, logger *zap.Logger, m *metrics.Metrics) EmailClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &smtpEmailClient{
		cfg:      cfg,
		logger:   logger,
		metrics:  m,
		sendMail: smtp.SendMail,
	}
}

func (c *smtpEmailClient) Send(ctx context.Context, msg EmailMessage) error {
	addr := net.JoinHostPort(c.cfg.Host, strconv.Itoa(c.cfg.Port))
	endpoint := "smtp://" + addr

	var auth smtp.Auth
	if c.cfg.Username != "" {
		auth = smtp.PlainAuth("", c.cfg.Username, c.cfg.Password, c.cfg.Host)
	}

	body := buildMIMEMessage(c.cfg.From, msg)

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	startTime := time.Now()
	done := make(chan error, 1)
	go func() {
		done <- c.sendMail(addr, auth, c.cfg.From, []string{msg.To}, body)
	}()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		err = fmt.Errorf("smtp send: %w", ctx.Err())
	}
	duration := time.Since(startTime)

	statusCode := 250
	if err != nil {
		statusCode = 0
	}
	if c.metrics != nil {
		c.metrics.RecordExternalAPICall(endpoint, "SEND", statusCode, duration, err)
	}

	if err != nil {
		c.logger.Error("Failed to send email",
			zap.Error(err),
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject),
			zap.Duration("duration", duration),
		)
		return fmt.Errorf("failed to send email: %w", err)
	}

	c.logger.Debug("Email sent",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Duration("duration", duration),
	)
	return nil
}

func buildMIMEMessage(from string, msg EmailMessage) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", msg.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(msg.HTMLBody)
	return buf.Bytes()
}

// noOpEmailClient logs instead of sending; used when SMTP is not configured
type noOpEmailClient struct {
	logger *zap.Logger
}

// NewNoOpEmailClient creates an EmailClient that only logs
func NewNoOpEmailClient(logger *zap.Logger) EmailClient {
	return &noOpEmailClient{logger: logger}
}

func (c *noOpEmailClient) Send(ctx context.Context, msg EmailMessage) error {
	c.logger.Info("SMTP not configured, email skipped",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}
