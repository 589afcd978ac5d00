package config

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// KeyringService is the service name under which passwords are stored.
const KeyringService = "exmailer"

// SecretStore reads and writes account passwords. The default store is the
// OS keyring.
type SecretStore interface {
	Get(service, account string) (string, error)
	Set(service, account, secret string) error
}

type osKeyring struct{}

func (osKeyring) Get(service, account string) (string, error) {
	return keyring.Get(service, account)
}

func (osKeyring) Set(service, account, secret string) error {
	return keyring.Set(service, account, secret)
}

// NewKeyringStore returns a SecretStore backed by the OS keyring.
func NewKeyringStore() SecretStore {
	return osKeyring{}
}

// StorePassword saves the password for domain\username in store.
func StorePassword(store SecretStore, domain, username, password string) error {
	if domain == "" || username == "" {
		return invalidValueError(string(KeyUsername), "domain and username are required to store a password")
	}
	if password == "" {
		return invalidValueError(string(KeyPassword), "refusing to store an empty password")
	}
	if err := store.Set(KeyringService, domain+`\`+username, password); err != nil {
		return fmt.Errorf("failed to store password in keyring: %w", err)
	}
	return nil
}

// keyringLayer looks up the password for the account assembled so far. It
// yields an empty layer when the account is not yet known or no entry
// exists.
func (l *Loader) keyringLayer(acc Layer) (Layer, error) {
	if acc.Password != nil || acc.Domain == nil || acc.Username == nil {
		return Layer{}, nil
	}
	account := *acc.Domain + `\` + *acc.Username
	secret, err := l.secrets.Get(KeyringService, account)
	if errors.Is(err, keyring.ErrNotFound) {
		l.logger.Debugw("No keyring entry for account", "account", account)
		return Layer{}, nil
	}
	if err != nil {
		return Layer{}, &Error{
			Fields: []string{string(KeyPassword)},
			Detail: "failed to read password for " + account + " from keyring",
			Err:    ErrInvalidValue,
			Cause:  err,
		}
	}
	return Layer{Password: &secret}, nil
}
