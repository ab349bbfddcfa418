package smtpgate

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-smtp"
	"github.com/mikey/email-classifier/internal/adapters/api/apitest"
	"github.com/mikey/email-classifier/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestGate(rejectDisposable, checkRecipients bool) *Gate {
	return NewGate(apitest.NewService(), zap.NewNop(), config.SMTPConfig{
		ListenAddress:    "127.0.0.1:0",
		Domain:           "localhost",
		RejectDisposable: rejectDisposable,
		CheckRecipients:  checkRecipients,
		ReadTimeout:      5 * time.Second,
		WriteTimeout:     5 * time.Second,
	})
}

func newSession(t *testing.T, g *Gate) smtp.Session {
	t.Helper()
	sess, err := (&backend{gate: g}).NewSession(nil)
	require.NoError(t, err)
	return sess
}

func smtpCode(t *testing.T, err error) (int, smtp.EnhancedCode) {
	t.Helper()
	var smtpErr *smtp.SMTPError
	require.True(t, errors.As(err, &smtpErr), "expected *smtp.SMTPError, got %v", err)
	return smtpErr.Code, smtpErr.EnhancedCode
}

func TestMailRejectsDisposableSender(t *testing.T) {
	sess := newSession(t, newTestGate(true, false))

	code, enhanced := smtpCode(t, sess.Mail("someone@mailinator.com", nil))
	assert.Equal(t, 550, code)
	assert.Equal(t, smtp.EnhancedCode{5, 7, 1}, enhanced)
}

func TestMailRejectsInvalidSender(t *testing.T) {
	sess := newSession(t, newTestGate(true, false))

	code, enhanced := smtpCode(t, sess.Mail("not-an-email", nil))
	assert.Equal(t, 550, code)
	assert.Equal(t, smtp.EnhancedCode{5, 1, 7}, enhanced)
}

func TestMailAcceptsValidAndNullSender(t *testing.T) {
	sess := newSession(t, newTestGate(true, false))

	assert.NoError(t, sess.Mail("user@company.org", nil))
	sess.Reset()
	assert.NoError(t, sess.Mail("", nil))
}

func TestMailAllowsDisposableWhenNotRejecting(t *testing.T) {
	sess := newSession(t, newTestGate(false, false))

	assert.NoError(t, sess.Mail("someone@mailinator.com", nil))
}

func TestRcptChecks(t *testing.T) {
	unchecked := newSession(t, newTestGate(true, false))
	require.NoError(t, unchecked.Mail("user@company.org", nil))
	assert.NoError(t, unchecked.Rcpt("x@yopmail.com", nil))

	checked := newSession(t, newTestGate(true, true))
	require.NoError(t, checked.Mail("user@company.org", nil))
	assert.NoError(t, checked.Rcpt("dest@company.org", nil))

	code, enhanced := smtpCode(t, checked.Rcpt("bad recipient", nil))
	assert.Equal(t, 550, code)
	assert.Equal(t, smtp.EnhancedCode{5, 1, 3}, enhanced)

	code, _ = smtpCode(t, checked.Rcpt("x@yopmail.com", nil))
	assert.Equal(t, 550, code)
}

func TestDataDiscardsMessage(t *testing.T) {
	sess := newSession(t, newTestGate(true, false))
	require.NoError(t, sess.Mail("user@company.org", nil))
	require.NoError(t, sess.Rcpt("dest@company.org", nil))

	assert.NoError(t, sess.Data(strings.NewReader("Subject: hi\r\n\r\nbody\r\n")))
	assert.NoError(t, sess.Logout())
}

func TestGateOverTheWire(t *testing.T) {
	g := newTestGate(true, false)
	require.NoError(t, g.Start())
	t.Cleanup(func() { _ = g.Stop() })

	c, err := smtp.Dial(g.Addr())
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Hello("client.example"))

	code, _ := smtpCode(t, c.Mail("spammer@guerrillamail.com", nil))
	assert.Equal(t, 550, code)

	require.NoError(t, c.Mail("user@company.org", nil))
	require.NoError(t, c.Rcpt("dest@company.org", nil))

	w, err := c.Data()
	require.NoError(t, err)
	_, err = w.Write([]byte("Subject: hi\r\n\r\nbody\r\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.NoError(t, c.Quit())
}

func TestStopBeforeStart(t *testing.T) {
	assert.NoError(t, newTestGate(true, false).Stop())
}
