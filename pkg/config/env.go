package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by the environment layer.
const (
	EnvDomain             = "EXCHANGE_DOMAIN"
	EnvUser               = "EXCHANGE_USER"
	EnvPass               = "EXCHANGE_PASS"
	EnvServer             = "EXCHANGE_SERVER"
	EnvEmailDomain        = "EXCHANGE_EMAIL_DOMAIN"
	EnvAuthType           = "EXCHANGE_AUTH_TYPE"
	EnvSaveCopy           = "EXCHANGE_SAVE_COPY"
	EnvPort               = "EXCHANGE_PORT"
	EnvInsecureSkipVerify = "EXCHANGE_INSECURE_SKIP_VERIFY"
)

var envTable = []struct {
	key  Key
	name string
}{
	{KeyDomain, EnvDomain},
	{KeyUsername, EnvUser},
	{KeyPassword, EnvPass},
	{KeyServer, EnvServer},
	{KeyEmailDomain, EnvEmailDomain},
	{KeyAuthType, EnvAuthType},
	{KeySaveCopy, EnvSaveCopy},
	{KeyPort, EnvPort},
	{KeyInsecureSkipVerify, EnvInsecureSkipVerify},
}

// EnvVar returns the environment variable that feeds key.
func EnvVar(key Key) string {
	for _, entry := range envTable {
		if entry.key == key {
			return entry.name
		}
	}
	return ""
}

// environmentLayer builds a layer from the process environment. Variables
// missing from the environment are looked up in the dotenv file, if one
// can be read; a missing or unreadable dotenv file is ignored.
func (l *Loader) environmentLayer() (Layer, error) {
	var dotenv map[string]string
	if l.dotenvPath != "" {
		values, err := godotenv.Read(l.dotenvPath)
		if err != nil {
			l.logger.Debugw("No dotenv file loaded", "path", l.dotenvPath, "error", err)
		} else {
			l.logger.Debugw("Loaded dotenv file", "path", l.dotenvPath, "variables", len(values))
			dotenv = values
		}
	}

	raw := make(map[string]any)
	for _, entry := range envTable {
		value, ok := l.lookupEnv(entry.name)
		if !ok || value == "" {
			value, ok = dotenv[entry.name]
		}
		if !ok || value == "" {
			continue
		}
		switch entry.key {
		case KeySaveCopy, KeyInsecureSkipVerify:
			b, recognized := parseBoolToken(value)
			if !recognized {
				l.logger.Warnw("Ignoring unrecognized boolean environment value", "variable", entry.name, "value", value)
				continue
			}
			raw[string(entry.key)] = b
		default:
			raw[string(entry.key)] = strings.TrimRight(value, "\r\n")
		}
	}
	return Normalize(raw)
}

func defaultLookupEnv(name string) (string, bool) {
	return os.LookupEnv(name)
}
