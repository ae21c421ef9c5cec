package client

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"taskboard-api/internal/metrics"
)

func newTestSMTPClient(send sendMailFunc, timeout time.Duration) *smtpEmailClient {
	c := NewSMTPEmailClient(SMTPConfig{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "user",
		Password: "pass",
		From:     "noreply@example.com",
		Timeout:  timeout,
	}, zap.NewNop(), metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())).(*smtpEmailClient)
	c.sendMail = send
	return c
}

func TestSMTPEmailClient_Send(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	c := newTestSMTPClient(func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		assert.NotNil(t, a)
		return nil
	}, time.Second)

	msg, err := VerificationEmail("x@example.com", "123456", "24 hours")
	require.NoError(t, err)
	require.NoError(t, c.Send(context.Background(), msg))

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "noreply@example.com", gotFrom)
	assert.Equal(t, []string{"x@example.com"}, gotTo)
	body := string(gotMsg)
	assert.Contains(t, body, "To: x@example.com\r\n")
	assert.Contains(t, body, "Content-Type: text/html")
	assert.Contains(t, body, "123456")
	assert.True(t, strings.HasSuffix(body, msg.HTMLBody))
}

func TestSMTPEmailClient_SendFailure(t *testing.T) {
	c := newTestSMTPClient(func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("535 authentication failed")
	}, time.Second)

	err := c.Send(context.Background(), EmailMessage{To: "x@example.com", Subject: "s"})
	assert.ErrorContains(t, err, "authentication failed")
}

func TestSMTPEmailClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	c := newTestSMTPClient(func(string, smtp.Auth, string, []string, []byte) error {
		<-release
		return nil
	}, 20*time.Millisecond)

	err := c.Send(context.Background(), EmailMessage{To: "x@example.com", Subject: "s"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNoOpEmailClient(t *testing.T) {
	c := NewNoOpEmailClient(zap.NewNop())
	assert.NoError(t, c.Send(context.Background(), EmailMessage{To: "x@example.com"}))
}

func TestInvitationEmail(t *testing.T) {
	msg, err := InvitationEmail("y@example.com", "Sprint <1>", "http://localhost:5173")
	require.NoError(t, err)
	assert.Equal(t, "y@example.com", msg.To)
	assert.Contains(t, msg.HTMLBody, "Sprint &lt;1&gt;", "board names are escaped")
	assert.Contains(t, msg.HTMLBody, "http://localhost:5173/invitations")
}
