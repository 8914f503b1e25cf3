package email

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/mail.v2"
)

type recordingDialer struct {
	sent []*mail.Message
	err  error
}

func (d *recordingDialer) DialAndSend(m ...*mail.Message) error {
	d.sent = append(d.sent, m...)
	return d.err
}

func TestSMTPSender_WithoutCredentialsOnlyLogs(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{BaseURL: "http://localhost:3000"}, zerolog.Nop())

	err := s.SendPasswordReset(context.Background(), "ada@uni.edu", "Ada", "tok")

	assert.NoError(t, err)
	assert.Nil(t, s.dialer)
}

func TestSMTPSender_SendsResetLink(t *testing.T) {
	d := &recordingDialer{}
	s := &SMTPSender{
		config: SMTPConfig{FromEmail: "no-reply@studyhub.app", FromName: "StudyHub", BaseURL: "http://app.test"},
		dialer: d,
		logger: zerolog.Nop(),
	}

	require.NoError(t, s.SendPasswordReset(context.Background(), "ada@uni.edu", "Ada", "tok-123"))

	require.Len(t, d.sent, 1)
	assert.Equal(t, []string{"ada@uni.edu"}, d.sent[0].GetHeader("To"))
	assert.Equal(t, "http://app.test/reset-password?token=tok-123", s.ResetURL("tok-123"))
}

func TestSMTPSender_PropagatesDialError(t *testing.T) {
	s := &SMTPSender{dialer: &recordingDialer{err: errors.New("connection refused")}, logger: zerolog.Nop()}

	err := s.SendPasswordReset(context.Background(), "ada@uni.edu", "Ada", "tok")

	assert.ErrorContains(t, err, "connection refused")
}
