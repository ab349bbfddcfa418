package smtpgate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/emersion/go-smtp"
	"github.com/mikey/email-classifier/internal/config"
	"github.com/mikey/email-classifier/internal/core"
	"go.uber.org/zap"
)

// Verifier classifies a single address
type Verifier interface {
	Verify(ctx context.Context, email string) (core.ClassificationResult, error)
}

// Gate is an SMTP listener that rejects invalid or disposable envelope addresses.
// Accepted messages are read and discarded.
type Gate struct {
	verifier Verifier
	logger   *zap.Logger
	cfg      config.SMTPConfig
	server   *smtp.Server
	addr     net.Addr
}

// NewGate creates a new SMTP sender gate
func NewGate(verifier Verifier, logger *zap.Logger, cfg config.SMTPConfig) *Gate {
	return &Gate{
		verifier: verifier,
		logger:   logger,
		cfg:      cfg,
	}
}

// Name identifies the front end
func (g *Gate) Name() string {
	return "smtp-gate"
}

// Start starts the SMTP gate in the background
func (g *Gate) Start() error {
	ln, err := net.Listen("tcp", g.cfg.ListenAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", g.cfg.ListenAddress, err)
	}
	g.addr = ln.Addr()

	g.server = smtp.NewServer(&backend{gate: g})
	g.server.Addr = ln.Addr().String()
	g.server.Domain = g.cfg.Domain
	g.server.ReadTimeout = g.cfg.ReadTimeout
	g.server.WriteTimeout = g.cfg.WriteTimeout
	g.server.MaxMessageBytes = 1024 * 1024
	g.server.MaxRecipients = 50

	g.logger.Info("SMTP gate starting",
		zap.String("address", ln.Addr().String()),
		zap.Bool("reject_disposable", g.cfg.RejectDisposable),
		zap.Bool("check_recipients", g.cfg.CheckRecipients))

	go func() {
		if err := g.server.Serve(ln); err != nil && !errors.Is(err, smtp.ErrServerClosed) {
			g.logger.Error("SMTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Addr returns the bound address once started
func (g *Gate) Addr() string {
	if g.addr == nil {
		return ""
	}
	return g.addr.String()
}

// Stop stops the SMTP gate
func (g *Gate) Stop() error {
	if g.server == nil {
		return nil
	}
	return g.server.Close()
}

// check returns an SMTP error when the address must be refused
func (g *Gate) check(role, address string) error {
	result, err := g.verifier.Verify(context.Background(), address)
	if err != nil {
		return &smtp.SMTPError{
			Code:         451,
			EnhancedCode: smtp.EnhancedCode{4, 3, 0},
			Message:      "Temporary classification failure",
		}
	}

	if !result.ValidFormat {
		g.logger.Info("Rejecting invalid address", zap.String("role", role), zap.String("address", address))
		code := smtp.EnhancedCode{5, 1, 7}
		if role == "recipient" {
			code = smtp.EnhancedCode{5, 1, 3}
		}
		return &smtp.SMTPError{
			Code:         550,
			EnhancedCode: code,
			Message:      fmt.Sprintf("Invalid %s address", role),
		}
	}

	if result.Disposable && g.cfg.RejectDisposable {
		g.logger.Info("Rejecting disposable address",
			zap.String("role", role),
			zap.String("address", address),
			zap.String("domain", result.Domain))
		return &smtp.SMTPError{
			Code:         550,
			EnhancedCode: smtp.EnhancedCode{5, 7, 1},
			Message:      fmt.Sprintf("Disposable %s domain rejected", role),
		}
	}

	return nil
}

// backend implements the go-smtp Backend interface
type backend struct {
	gate *Gate
}

// NewSession creates a new SMTP session
func (b *backend) NewSession(_ *smtp.Conn) (smtp.Session, error) {
	return &session{gate: b.gate}, nil
}

// session implements the go-smtp Session interface
type session struct {
	gate       *Gate
	sender     string
	recipients []string
}

// Reset resets the session state
func (s *session) Reset() {
	s.sender = ""
	s.recipients = nil
}

// Mail checks the envelope sender. The null reverse path is accepted for bounces.
func (s *session) Mail(from string, _ *smtp.MailOptions) error {
	if from != "" {
		if err := s.gate.check("sender", from); err != nil {
			return err
		}
	}
	s.sender = from
	return nil
}

// Rcpt checks a recipient when recipient checks are enabled
func (s *session) Rcpt(to string, _ *smtp.RcptOptions) error {
	if s.gate.cfg.CheckRecipients {
		if err := s.gate.check("recipient", to); err != nil {
			return err
		}
	}
	s.recipients = append(s.recipients, to)
	return nil
}

// Data discards the message
func (s *session) Data(r io.Reader) error {
	n, err := io.Copy(io.Discard, r)
	if err != nil {
		return err
	}
	s.gate.logger.Info("Accepted message",
		zap.String("sender", s.sender),
		zap.Int("recipients", len(s.recipients)),
		zap.Int64("bytes", n))
	return nil
}

// Logout ends the session
func (s *session) Logout() error {
	return nil
}
