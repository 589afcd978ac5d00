package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Key is a canonical configuration key.
type Key string

const (
	KeyDomain             Key = "domain"
	KeyUsername           Key = "username"
	KeyPassword           Key = "password"
	KeyServer             Key = "server"
	KeyEmailDomain        Key = "email_domain"
	KeyAuthType           Key = "auth_type"
	KeySaveCopy           Key = "save_copy"
	KeyPort               Key = "port"
	KeyInsecureSkipVerify Key = "insecure_skip_verify"
)

// RequiredKeys are the keys that must be non-blank after resolution, in
// the order they are reported.
var RequiredKeys = []Key{KeyDomain, KeyUsername, KeyPassword, KeyServer, KeyEmailDomain}

// aliasTable maps every canonical key to its accepted spellings. Aliases
// are probed in order and the first one present in a mapping wins.
var aliasTable = []struct {
	key     Key
	aliases []string
}{
	{KeyDomain, []string{"domain", "exchange_domain", "ad_domain"}},
	{KeyUsername, []string{"username", "user", "exchange_user"}},
	{KeyPassword, []string{"password", "pass", "exchange_pass"}},
	{KeyServer, []string{"server", "exchange_server", "host"}},
	{KeyEmailDomain, []string{"email_domain", "domain_name", "smtp_domain"}},
	{KeyAuthType, []string{"auth_type", "authentication", "auth"}},
	{KeySaveCopy, []string{"save_copy", "save", "save_sent"}},
	{KeyPort, []string{"port", "smtp_port", "exchange_port"}},
	{KeyInsecureSkipVerify, []string{"insecure_skip_verify", "skip_tls_verify", "insecure"}},
}

// Aliases returns the accepted spellings of key.
func Aliases(key Key) []string {
	for _, entry := range aliasTable {
		if entry.key == key {
			return append([]string(nil), entry.aliases...)
		}
	}
	return nil
}

var (
	trueTokens  = map[string]bool{"true": true, "1": true, "yes": true, "on": true, "y": true}
	falseTokens = map[string]bool{"false": true, "0": true, "no": true, "off": true, "n": true}
)

// Layer is a partial configuration produced by one source. A nil field
// means the source did not provide that key.
type Layer struct {
	Domain             *string
	Username           *string
	Password           *string
	Server             *string
	EmailDomain        *string
	AuthType           *string
	SaveCopy           *bool
	Port               *int
	InsecureSkipVerify *bool
}

// Has reports whether the layer provides key.
func (l Layer) Has(key Key) bool {
	switch key {
	case KeyDomain:
		return l.Domain != nil
	case KeyUsername:
		return l.Username != nil
	case KeyPassword:
		return l.Password != nil
	case KeyServer:
		return l.Server != nil
	case KeyEmailDomain:
		return l.EmailDomain != nil
	case KeyAuthType:
		return l.AuthType != nil
	case KeySaveCopy:
		return l.SaveCopy != nil
	case KeyPort:
		return l.Port != nil
	case KeyInsecureSkipVerify:
		return l.InsecureSkipVerify != nil
	}
	return false
}

// Keys returns the canonical keys the layer provides, in table order.
func (l Layer) Keys() []Key {
	var keys []Key
	for _, entry := range aliasTable {
		if l.Has(entry.key) {
			keys = append(keys, entry.key)
		}
	}
	return keys
}

// Normalize maps a raw, possibly aliased mapping onto a Layer. Unknown keys
// are dropped. A present alias holding nil counts as absent.
func Normalize(raw map[string]any) (Layer, error) {
	var l Layer
	for _, entry := range aliasTable {
		value, ok := lookupAlias(raw, entry.aliases)
		if !ok || value == nil {
			continue
		}
		if err := l.set(entry.key, value); err != nil {
			return Layer{}, err
		}
	}
	return l, nil
}

func lookupAlias(raw map[string]any, aliases []string) (any, bool) {
	for _, alias := range aliases {
		if v, ok := raw[alias]; ok {
			return v, true
		}
	}
	return nil, false
}

func (l *Layer) set(key Key, value any) error {
	switch key {
	case KeySaveCopy:
		b, err := coerceBool(key, value)
		if err != nil {
			return err
		}
		l.SaveCopy = &b
	case KeyInsecureSkipVerify:
		b, err := coerceBool(key, value)
		if err != nil {
			return err
		}
		l.InsecureSkipVerify = &b
	case KeyPort:
		p, err := coercePort(value)
		if err != nil {
			return err
		}
		l.Port = &p
	default:
		s, err := coerceString(key, value)
		if err != nil {
			return err
		}
		*l.stringField(key) = &s
	}
	return nil
}

func (l *Layer) stringField(key Key) **string {
	switch key {
	case KeyDomain:
		return &l.Domain
	case KeyUsername:
		return &l.Username
	case KeyPassword:
		return &l.Password
	case KeyServer:
		return &l.Server
	case KeyEmailDomain:
		return &l.EmailDomain
	case KeyAuthType:
		return &l.AuthType
	}
	panic(fmt.Sprintf("config: %s is not a string key", key))
}

func coerceString(key Key, value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	}
	return "", invalidValueError(string(key), fmt.Sprintf("invalid %s: expected a string, got %T", key, value))
}

// coerceBool accepts native booleans, the usual yes/no tokens and falls
// back to truthiness for any other string or number.
func coerceBool(key Key, value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return ParseBool(v), nil
	case int:
		return v != 0, nil
	case int64:
		return v != 0, nil
	case uint64:
		return v != 0, nil
	case float64:
		return v != 0, nil
	}
	return false, invalidValueError(string(key), fmt.Sprintf("invalid %s: expected a boolean, got %T", key, value))
}

// ParseBool interprets s as a boolean. Unrecognized non-empty strings are
// true.
func ParseBool(s string) bool {
	b, ok := parseBoolToken(s)
	if ok {
		return b
	}
	return s != ""
}

func parseBoolToken(s string) (value, ok bool) {
	token := strings.ToLower(strings.TrimSpace(s))
	if trueTokens[token] {
		return true, true
	}
	if falseTokens[token] {
		return false, true
	}
	return false, false
}

func coercePort(value any) (int, error) {
	var port int
	switch v := value.(type) {
	case int:
		port = v
	case int64:
		port = int(v)
	case uint64:
		port = int(v)
	case float64:
		if v != math.Trunc(v) {
			return 0, invalidValueError(string(KeyPort), fmt.Sprintf("invalid port %v: not an integer", v))
		}
		port = int(v)
	case string:
		p, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, invalidValueError(string(KeyPort), fmt.Sprintf("invalid port %q: not an integer", v))
		}
		port = p
	default:
		return 0, invalidValueError(string(KeyPort), fmt.Sprintf("invalid port: expected an integer, got %T", value))
	}
	if port < 1 || port > 65535 {
		return 0, invalidValueError(string(KeyPort), fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}
	return port, nil
}
