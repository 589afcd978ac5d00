// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"net"
	"strconv"
	"strings"
)

// AuthType is the authentication mechanism used against the mail server.
type AuthType string

const (
	AuthNTLM  AuthType = "NTLM"
	AuthBasic AuthType = "BASIC"
)

// ValidAuthTypes lists the accepted auth types in display order.
var ValidAuthTypes = []AuthType{AuthNTLM, AuthBasic}

// ParseAuthType matches s case-insensitively against ValidAuthTypes.
func ParseAuthType(s string) (AuthType, bool) {
	for _, t := range ValidAuthTypes {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, true
		}
	}
	return "", false
}

const (
	DefaultAuthType = AuthNTLM
	DefaultSaveCopy = true
	DefaultPort     = 587
)

// Source identifies the layer a configuration value came from.
type Source string

const (
	SourceProgrammatic Source = "programmatic"
	SourceFile         Source = "file"
	SourceDiscovered   Source = "discovered"
	SourceEnvironment  Source = "environment"
	SourceKeyring      Source = "keyring"
	SourceDefaults     Source = "defaults"
)

// Config is the validated mail account configuration. It is produced once
// by Resolve and not modified afterwards.
type Config struct {
	Domain             string   `json:"domain" yaml:"domain"`
	Username           string   `json:"username" yaml:"username"`
	Password           string   `json:"password" yaml:"password"`
	Server             string   `json:"server" yaml:"server"`
	EmailDomain        string   `json:"email_domain" yaml:"email_domain"`
	AuthType           AuthType `json:"auth_type" yaml:"auth_type"`
	SaveCopy           bool     `json:"save_copy" yaml:"save_copy"`
	Port               int      `json:"port" yaml:"port"`
	InsecureSkipVerify bool     `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`

	// Origins records which layer supplied each canonical key.
	Origins map[Key]Source `json:"origins,omitempty" yaml:"origins,omitempty"`
}

// Account returns the logon name in domain\username form.
func (c Config) Account() string {
	return c.Domain + `\` + c.Username
}

// Sender returns the mailbox address the messages are sent from.
func (c Config) Sender() string {
	return c.Username + "@" + c.EmailDomain
}

// Address returns the server address in host:port form.
func (c Config) Address() string {
	return net.JoinHostPort(c.Server, strconv.Itoa(c.Port))
}

// Redacted returns a copy of the configuration that is safe to print.
func (c Config) Redacted() Config {
	out := c
	if out.Password != "" {
		out.Password = "********"
	}
	if c.Origins != nil {
		out.Origins = make(map[Key]Source, len(c.Origins))
		for k, v := range c.Origins {
			out.Origins[k] = v
		}
	}
	return out
}
