package mail

import (
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/Azure/go-ntlmssp"

	"github.com/telekom/exmailer/pkg/config"
)

// newAuth returns the SASL mechanism for cfg.AuthType.
func newAuth(cfg config.Config) (smtp.Auth, error) {
	switch cfg.AuthType {
	case config.AuthNTLM:
		return &ntlmAuth{domain: cfg.Domain, username: cfg.Username, password: cfg.Password, host: cfg.Server}, nil
	case config.AuthBasic:
		return &loginAuth{username: cfg.Account(), password: cfg.Password, host: cfg.Server}, nil
	}
	return nil, fmt.Errorf("unsupported auth type %q", cfg.AuthType)
}

// loginAuth implements the LOGIN mechanism Exchange offers for basic
// authentication.
type loginAuth struct {
	username string
	password string
	host     string
}

func (a *loginAuth) Start(server *smtp.ServerInfo) (string, []byte, error) {
	if err := checkServer(server, a.host); err != nil {
		return "", nil, &authMechanismError{mechanism: "LOGIN", err: err}
	}
	return "LOGIN", nil, nil
}

func (a *loginAuth) Next(fromServer []byte, more bool) ([]byte, error) {
	if !more {
		return nil, nil
	}
	switch strings.ToLower(strings.TrimSpace(string(fromServer))) {
	case "username:", "user:", "user name":
		return []byte(a.username), nil
	case "password:", "pass:":
		return []byte(a.password), nil
	}
	return nil, &authMechanismError{mechanism: "LOGIN", err: fmt.Errorf("unexpected challenge %q", fromServer)}
}

// ntlmAuth implements the NTLM SASL exchange: negotiate, then answer the
// server challenge.
type ntlmAuth struct {
	domain   string
	username string
	password string
	host     string
	answered bool
}

func (a *ntlmAuth) Start(server *smtp.ServerInfo) (string, []byte, error) {
	if err := checkServer(server, a.host); err != nil {
		return "", nil, &authMechanismError{mechanism: "NTLM", err: err}
	}
	negotiate, err := ntlmssp.NewNegotiateMessage(a.domain, "")
	if err != nil {
		return "", nil, &authMechanismError{mechanism: "NTLM", err: err}
	}
	a.answered = false
	return "NTLM", negotiate, nil
}

func (a *ntlmAuth) Next(fromServer []byte, more bool) ([]byte, error) {
	if !more {
		return nil, nil
	}
	if a.answered {
		return nil, &authMechanismError{mechanism: "NTLM", err: errors.New("unexpected second challenge")}
	}
	a.answered = true
	resp, err := ntlmssp.ProcessChallenge(fromServer, a.username, a.password, a.domain != "")
	if err != nil {
		return nil, &authMechanismError{mechanism: "NTLM", err: err}
	}
	return resp, nil
}

// checkServer refuses to send credentials over an unencrypted connection
// to anything but localhost, like smtp.PlainAuth.
func checkServer(server *smtp.ServerInfo, host string) error {
	if server.Name != host {
		return fmt.Errorf("wrong host name %s, expected %s", server.Name, host)
	}
	if !server.TLS && !isLocalhost(server.Name) {
		return errors.New("unencrypted connection")
	}
	return nil
}

func isLocalhost(name string) bool {
	if name == "localhost" {
		return true
	}
	ip := net.ParseIP(name)
	return ip != nil && ip.IsLoopback()
}
