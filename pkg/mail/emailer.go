// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package mail

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/telekom/exmailer/pkg/config"
	"github.com/telekom/exmailer/pkg/metrics"
	"github.com/telekom/exmailer/pkg/system"
	"github.com/telekom/exmailer/pkg/templates"
)

// Options configure an Emailer.
type Options struct {
	// ConfigPath, Values, SkipEnvironment and UseKeyring select the
	// configuration layers, see config.Sources.
	ConfigPath      string
	Values          map[string]any
	SkipEnvironment bool
	UseKeyring      bool

	// Loader resolves the configuration. Defaults to config.NewLoader().
	Loader *config.Loader
	// Registry holds custom layouts. Defaults to a fresh registry.
	Registry *templates.Registry
	// Connector opens the mail server connection. Defaults to SMTP.
	Connector Connector
	Logger    *zap.SugaredLogger
}

// SendRequest describes one message.
type SendRequest struct {
	Subject string
	Body    string
	To      []string
	Cc      []string
	Bcc     []string
	// Template wraps the body. The zero Selector sends the body as is.
	Template templates.Selector
	// Vars are substituted into the body and the layout.
	Vars        map[string]any
	Attachments []string
	Importance  Importance
}

// Emailer sends messages from one account over one connection.
type Emailer struct {
	cfg      config.Config
	registry *templates.Registry
	logger   *zap.SugaredLogger

	mu   sync.Mutex
	conn Connection
}

// New resolves the configuration and connects to the mail server.
func New(opts Options) (*Emailer, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	loader := opts.Loader
	if loader == nil {
		loader = config.NewLoader()
	}
	loader = loader.WithLogger(logger)

	cfg, err := loader.Resolve(config.Sources{
		Path:            opts.ConfigPath,
		Values:          opts.Values,
		SkipEnvironment: opts.SkipEnvironment,
		UseKeyring:      opts.UseKeyring,
	})
	if err != nil {
		return nil, err
	}

	registry := opts.Registry
	if registry == nil {
		registry = templates.NewRegistry()
	}
	connector := opts.Connector
	if connector == nil {
		connector = NewSMTPConnector(logger)
	}

	conn, err := connector.Connect(cfg)
	if err != nil {
		metrics.MailSendFailure.WithLabelValues(cfg.Server, failureReason(err)).Inc()
		return nil, err
	}

	return &Emailer{
		cfg:      cfg,
		registry: registry,
		logger:   logger.Named("mail").With(system.AccountFields(cfg.Account(), cfg.Address())...),
		conn:     conn,
	}, nil
}

// Config returns the resolved configuration.
func (e *Emailer) Config() config.Config {
	return e.cfg
}

// Registry returns the layout registry used by Send.
func (e *Emailer) Registry() *templates.Registry {
	return e.registry
}

// Compose builds the message for req without sending it. Unusable
// attachments are logged and left out.
func (e *Emailer) Compose(req SendRequest) (*Message, error) {
	if len(req.To) == 0 {
		return nil, errors.New("at least one recipient is required")
	}

	layout := templates.Plain.HTML()
	if !req.Template.IsZero() {
		var err error
		layout, err = e.registry.Resolve(req.Template)
		if err != nil {
			return nil, err
		}
	}
	body := templates.Render(layout, req.Body, req.Vars)

	attachments, skipped := PrepareAttachments(req.Attachments)
	for _, s := range skipped {
		e.logger.Warnw("Skipping attachment", "path", s.Path, "reason", s.Reason, "error", s.Err)
	}
	for _, a := range attachments {
		e.logger.Infow("Attached file", "name", a.Name, "sizeKB", len(a.Content)/1024, "contentType", a.ContentType)
	}

	return &Message{
		From:        e.cfg.Sender(),
		To:          req.To,
		Cc:          req.Cc,
		Bcc:         req.Bcc,
		Subject:     req.Subject,
		HTMLBody:    body,
		Importance:  req.Importance,
		Attachments: attachments,
		SaveCopy:    e.cfg.SaveCopy,
	}, nil
}

// Send composes and transmits one message.
func (e *Emailer) Send(req SendRequest) error {
	msg, err := e.Compose(req)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.conn == nil {
		return &ConnectionError{Server: e.cfg.Address(), Err: errors.New("emailer is closed")}
	}

	e.logger.Debugw("Sending email", "subject", msg.Subject, "recipients", len(msg.Recipients()), "template", req.Template.String())
	if err := e.conn.Send(msg); err != nil {
		metrics.MailSendFailure.WithLabelValues(e.cfg.Server, failureReason(err)).Inc()
		e.logger.Errorw("Failed to send email", "error", err)
		return err
	}
	metrics.MailSendSuccess.WithLabelValues(e.cfg.Server).Inc()
	e.logger.Infow("Email sent successfully", "to", strings.Join(msg.To, ", "))
	return nil
}

// Close ends the session with the mail server. It is safe to call more
// than once.
func (e *Emailer) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.conn == nil {
		return nil
	}
	err := e.conn.Close()
	e.conn = nil
	if err != nil {
		return fmt.Errorf("failed to close mail connection: %w", err)
	}
	return nil
}
