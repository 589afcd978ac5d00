// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package mail

import (
	"crypto/tls"
	"errors"
	"io"
	"mime"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/telekom/exmailer/pkg/config"
)

// Connector opens connections to the mail server described by a
// configuration.
type Connector interface {
	Connect(cfg config.Config) (Connection, error)
}

// Connection transmits messages over an established, authenticated
// session.
type Connection interface {
	Send(msg *Message) error
	Close() error
}

// SMTPConnector connects to the server over SMTP using gomail. Port 465
// uses implicit TLS; any other port upgrades with STARTTLS when offered.
type SMTPConnector struct {
	logger *zap.SugaredLogger
}

// NewSMTPConnector creates a connector that logs through logger.
func NewSMTPConnector(logger *zap.SugaredLogger) *SMTPConnector {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &SMTPConnector{logger: logger.Named("smtp")}
}

func (c *SMTPConnector) Connect(cfg config.Config) (Connection, error) {
	server := cfg.Address()
	auth, err := newAuth(cfg)
	if err != nil {
		return nil, &AuthenticationError{Server: server, Err: err}
	}

	d := gomail.NewDialer(cfg.Server, cfg.Port, "", "")
	d.Auth = auth
	if cfg.InsecureSkipVerify {
		c.logger.Warnw("TLS certificate verification is disabled", "server", server)
		d.TLSConfig = &tls.Config{ServerName: cfg.Server, InsecureSkipVerify: true} // #nosec G402 -- opt-in via insecure_skip_verify
	}

	c.logger.Debugw("Connecting to mail server", "server", server, "account", cfg.Account(), "auth", cfg.AuthType)
	sc, err := d.Dial()
	if err != nil {
		return nil, classify(server, err, func(err error) error {
			return &ConnectionError{Server: server, Err: err}
		})
	}
	c.logger.Infow("Connected to mail server", "server", server, "auth", cfg.AuthType)
	return &smtpConnection{sender: sc, server: server, logger: c.logger}, nil
}

type smtpConnection struct {
	sender gomail.SendCloser
	server string
	logger *zap.SugaredLogger
	closed bool
}

func (c *smtpConnection) Send(msg *Message) error {
	if c.closed {
		return &ConnectionError{Server: c.server, Err: errors.New("connection is closed")}
	}
	m := buildMessage(msg)
	err := c.sender.Send(msg.From, msg.Recipients(), m)
	return classify(c.server, err, func(err error) error {
		return &SendError{Err: err}
	})
}

func (c *smtpConnection) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	if err := c.sender.Close(); err != nil {
		c.logger.Debugw("Error while closing SMTP session", "server", c.server, "error", err)
		return &ConnectionError{Server: c.server, Err: err}
	}
	return nil
}

// buildMessage renders msg as a gomail message. Bcc recipients, including
// the sender when a copy is requested, never appear in the headers.
func buildMessage(msg *Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To...)
	if len(msg.Cc) > 0 {
		m.SetHeader("Cc", msg.Cc...)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetHeader("Importance", msg.Importance.String())
	m.SetHeader("X-Priority", msg.Importance.xPriority())
	m.SetBody("text/html", msg.HTMLBody)

	for _, att := range msg.Attachments {
		content := att.Content
		m.Attach(att.Name,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(content)
				return err
			}),
			gomail.SetHeader(map[string][]string{
				"Content-Type": {mime.FormatMediaType(att.ContentType, map[string]string{"name": att.Name})},
			}),
		)
	}
	return m
}
