// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"strings"

	"dario.cat/mergo"
	"go.uber.org/zap"

	"github.com/telekom/exmailer/pkg/metrics"
)

// Sources selects the layers a Resolve call draws from.
type Sources struct {
	// Path is an explicit config file. It disables discovery.
	Path string
	// Values are programmatic settings keyed by canonical name or alias.
	// They take precedence over every other layer and disable discovery.
	Values map[string]any
	// SkipEnvironment disables the environment layer.
	SkipEnvironment bool
	// UseKeyring enables the keyring layer, which fills a missing password
	// from the OS keyring.
	UseKeyring bool
}

// Loader resolves configurations. The zero value is not usable; create one
// with NewLoader.
type Loader struct {
	logger     *zap.SugaredLogger
	lookupEnv  func(string) (string, bool)
	dotenvPath string
	candidates func() []string
	secrets    SecretStore
}

// NewLoader creates a Loader that reads the process environment, the .env
// file of the working directory, the standard discovery locations and the
// OS keyring.
func NewLoader() *Loader {
	return &Loader{
		logger:     zap.NewNop().Sugar(),
		lookupEnv:  defaultLookupEnv,
		dotenvPath: defaultDotenvFile,
		candidates: CandidatePaths,
		secrets:    NewKeyringStore(),
	}
}

// WithLogger sets the logger for this loader
func (l *Loader) WithLogger(logger *zap.SugaredLogger) *Loader {
	if logger != nil {
		l.logger = logger.Named("config")
	}
	return l
}

// WithEnvLookup replaces os.LookupEnv.
func (l *Loader) WithEnvLookup(lookup func(string) (string, bool)) *Loader {
	l.lookupEnv = lookup
	return l
}

// WithDotenvFile sets the dotenv file consulted by the environment layer.
// An empty path disables dotenv support.
func (l *Loader) WithDotenvFile(path string) *Loader {
	l.dotenvPath = path
	return l
}

// WithCandidatePaths replaces the discovery locations.
func (l *Loader) WithCandidatePaths(candidates func() []string) *Loader {
	l.candidates = candidates
	return l
}

// WithSecretStore replaces the OS keyring.
func (l *Loader) WithSecretStore(store SecretStore) *Loader {
	l.secrets = store
	return l
}

// Resolve merges the default loader's layers for src.
func Resolve(src Sources) (Config, error) {
	return NewLoader().Resolve(src)
}

// Resolve merges all selected layers and validates the result. Layers are
// applied from highest to lowest priority and each one only fills keys
// that are still absent.
func (l *Loader) Resolve(src Sources) (Config, error) {
	cfg, err := l.resolve(src)
	if err != nil {
		metrics.ConfigResolutions.WithLabelValues("failure").Inc()
		l.logger.Debugw("Configuration resolution failed", "error", err)
		return Config{}, err
	}
	metrics.ConfigResolutions.WithLabelValues("success").Inc()
	return cfg, nil
}

func (l *Loader) resolve(src Sources) (Config, error) {
	m := newMerger()

	if len(src.Values) > 0 {
		layer, err := Normalize(src.Values)
		if err != nil {
			return Config{}, err
		}
		if err := m.overlay(SourceProgrammatic, layer); err != nil {
			return Config{}, err
		}
		l.logger.Debugw("Loaded configuration from programmatic values", "keys", layer.Keys())
	}

	switch {
	case src.Path != "":
		layer, err := loadFileLayer(src.Path)
		if err != nil {
			return Config{}, err
		}
		if err := m.overlay(SourceFile, layer); err != nil {
			return Config{}, err
		}
		l.logger.Infow("Loaded configuration file", "path", src.Path, "keys", layer.Keys())
	case len(src.Values) == 0:
		if err := l.discover(m); err != nil {
			return Config{}, err
		}
	}

	if !src.SkipEnvironment {
		layer, err := l.environmentLayer()
		if err != nil {
			return Config{}, err
		}
		if err := m.overlay(SourceEnvironment, layer); err != nil {
			return Config{}, err
		}
	}

	if src.UseKeyring {
		layer, err := l.keyringLayer(m.acc)
		if err != nil {
			return Config{}, err
		}
		if err := m.overlay(SourceKeyring, layer); err != nil {
			return Config{}, err
		}
	}

	if err := m.overlay(SourceDefaults, defaultsLayer()); err != nil {
		return Config{}, err
	}

	return m.finish()
}

// discover loads the first existing candidate file, if any.
func (l *Loader) discover(m *merger) error {
	for _, path := range l.candidates() {
		if !fileExists(path) {
			continue
		}
		layer, err := loadFileLayer(path)
		if err != nil {
			return err
		}
		if err := m.overlay(SourceDiscovered, layer); err != nil {
			return err
		}
		l.logger.Infow("Loaded configuration from discovered file", "path", path, "keys", layer.Keys())
		return nil
	}
	l.logger.Debugw("No configuration file discovered")
	return nil
}

func loadFileLayer(path string) (Layer, error) {
	raw, err := ReadFile(path)
	if err != nil {
		return Layer{}, err
	}
	layer, err := Normalize(raw)
	if err != nil {
		if cfgErr, ok := err.(*Error); ok {
			cfgErr.Path = path
			cfgErr.Detail = fmt.Sprintf("%s (in %s)", cfgErr.Detail, path)
		}
		return Layer{}, err
	}
	return layer, nil
}

func defaultsLayer() Layer {
	authType := string(DefaultAuthType)
	saveCopy := DefaultSaveCopy
	port := DefaultPort
	insecure := false
	return Layer{
		AuthType:           &authType,
		SaveCopy:           &saveCopy,
		Port:               &port,
		InsecureSkipVerify: &insecure,
	}
}

// merger accumulates layers and remembers which layer supplied each key.
type merger struct {
	acc     Layer
	origins map[Key]Source
}

func newMerger() *merger {
	return &merger{origins: make(map[Key]Source)}
}

func (m *merger) overlay(src Source, layer Layer) error {
	before := m.acc
	// Without dereferencing, a key that is already set is never touched,
	// even when its value is empty.
	if err := mergo.Merge(&m.acc, layer, mergo.WithoutDereference); err != nil {
		return fmt.Errorf("failed to merge %s configuration: %w", src, err)
	}
	for _, key := range m.acc.Keys() {
		if !before.Has(key) {
			m.origins[key] = src
		}
	}
	return nil
}

func (m *merger) finish() (Config, error) {
	acc := m.acc
	var missing []string
	for _, key := range RequiredKeys {
		v := *acc.stringField(key)
		if v == nil || strings.TrimSpace(*v) == "" {
			missing = append(missing, string(key))
		}
	}
	if len(missing) > 0 {
		return Config{}, missingFieldsError(missing)
	}

	authType, ok := ParseAuthType(*acc.AuthType)
	if !ok {
		names := make([]string, len(ValidAuthTypes))
		for i, t := range ValidAuthTypes {
			names[i] = string(t)
		}
		return Config{}, invalidValueError(string(KeyAuthType),
			fmt.Sprintf("invalid auth_type %q: valid values: %s", *acc.AuthType, strings.Join(names, ", ")))
	}

	return Config{
		Domain:             *acc.Domain,
		Username:           *acc.Username,
		Password:           *acc.Password,
		Server:             *acc.Server,
		EmailDomain:        *acc.EmailDomain,
		AuthType:           authType,
		SaveCopy:           *acc.SaveCopy,
		Port:               *acc.Port,
		InsecureSkipVerify: *acc.InsecureSkipVerify,
		Origins:            m.origins,
	}, nil
}

func missingFieldsError(missing []string) *Error {
	var b strings.Builder
	fmt.Fprintf(&b, "missing required configuration fields: %s\n\n", strings.Join(missing, ", "))
	b.WriteString("Provide configuration via one of these methods:\n")
	b.WriteString("1. Programmatic: mail.Options{Values: map[string]any{...}} or config.Sources{Values: ...}\n")
	formats := "JSON or YAML"
	if !yamlSupported {
		formats = "JSON"
	}
	fmt.Fprintf(&b, "2. Config file: exmailer --config path/to/config.json (%s)\n", formats)
	envs := make([]string, len(RequiredKeys))
	for i, key := range RequiredKeys {
		envs[i] = EnvVar(key)
	}
	fmt.Fprintf(&b, "3. Environment variables: %s\n", strings.Join(envs, ", "))
	b.WriteString("4. Place a config file in one of these locations (first found wins):\n")
	for _, path := range CandidatePaths() {
		fmt.Fprintf(&b, "   %s\n", path)
	}
	b.WriteString("\n")
	b.WriteString("Example config.json:\n")
	b.WriteString(ExampleJSON())
	return &Error{
		Fields: missing,
		Detail: b.String(),
		Err:    ErrMissingFields,
	}
}
