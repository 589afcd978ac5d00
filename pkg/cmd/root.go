package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/telekom/exmailer/pkg/config"
	"github.com/telekom/exmailer/pkg/mail"
	"github.com/telekom/exmailer/pkg/metrics"
	"github.com/telekom/exmailer/pkg/system"
)

// Config wires the CLI to its surroundings. Zero fields fall back to the
// process defaults.
type Config struct {
	ConfigPath   string
	OutputWriter io.Writer
	ErrorWriter  io.Writer
	Input        io.Reader
	// Args replaces os.Args[1:] when non-nil.
	Args []string

	// Loader, Connector and Secrets replace the config loader, the SMTP
	// connector and the OS keyring.
	Loader    *config.Loader
	Connector mail.Connector
	Secrets   config.SecretStore
}

type runtimeState struct {
	configPath      string
	verbose         bool
	noEnv           bool
	useKeyring      bool
	metricsTextfile string

	writer    io.Writer
	errWriter io.Writer
	input     io.Reader
	logger    *zap.SugaredLogger

	loader    *config.Loader
	connector mail.Connector
	secrets   config.SecretStore
}

type runtimeKey struct{}

func DefaultConfig() Config {
	return Config{
		OutputWriter: os.Stdout,
		ErrorWriter:  os.Stderr,
		Input:        os.Stdin,
	}
}

func NewRootCommand(cfg Config) *cobra.Command {
	rt := &runtimeState{
		configPath: cfg.ConfigPath,
		writer:     cfg.OutputWriter,
		errWriter:  cfg.ErrorWriter,
		input:      cfg.Input,
		loader:     cfg.Loader,
		connector:  cfg.Connector,
		secrets:    cfg.Secrets,
	}
	send := &sendOptions{}

	root := &cobra.Command{
		Use:   "exmailer",
		Short: "Send templated HTML email through a corporate mail server",
		Long: `exmailer sends one HTML email, wrapped in a built-in or custom template,
through an Exchange-style SMTP server using NTLM or basic authentication.

Account settings come from --config, exmailer.json/.yaml in the current
directory or the user config directory, EXCHANGE_* environment variables
(and a local .env file) and, with --keyring, the OS keyring.`,
		Example: `  exmailer --to alice@example.com -s "Report" -b @report.html -t default
  exmailer --to a@example.com,b@example.com -s "سلام" -b "متن {date}" --template-vars '{"date":"14/08/1404"}'`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if rt.writer == nil {
				rt.writer = os.Stdout
			}
			if rt.errWriter == nil {
				rt.errWriter = os.Stderr
			}
			if rt.input == nil {
				rt.input = os.Stdin
			}
			if rt.configPath == "" {
				rt.configPath = os.Getenv("EXMAILER_CONFIG")
			}
			if !rt.verbose {
				rt.verbose = config.ParseBool(os.Getenv("EXMAILER_VERBOSE"))
			}
			if rt.metricsTextfile == "" {
				rt.metricsTextfile = os.Getenv("EXMAILER_METRICS_TEXTFILE")
			}
			rt.logger = system.NewLogger(rt.verbose, rt.errWriter)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSend(cmd, send)
		},
	}

	root.PersistentFlags().StringVarP(&rt.configPath, "config", "c", rt.configPath, "Path to a JSON or YAML config file")
	root.PersistentFlags().BoolVarP(&rt.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().BoolVar(&rt.noEnv, "no-env", false, "Ignore EXCHANGE_* environment variables and .env")
	root.PersistentFlags().BoolVar(&rt.useKeyring, "keyring", false, "Read a missing password from the OS keyring")
	root.PersistentFlags().StringVar(&rt.metricsTextfile, "metrics-textfile", "", "Write Prometheus metrics to this file on exit")

	send.bindFlags(root)

	root.SetContext(context.WithValue(context.Background(), runtimeKey{}, rt))
	if cfg.Args != nil {
		root.SetArgs(cfg.Args)
	}

	root.AddCommand(
		NewConfigCommand(),
		NewTemplatesCommand(),
		NewCompletionCommand(),
		NewVersionCommand(),
	)

	return root
}

// Execute runs the CLI and returns the process exit code. Failures are
// reported as a single "error:" line on the error writer.
func Execute(cfg Config) int {
	root := NewRootCommand(cfg)
	err := root.Execute()

	rt, _ := getRuntime(root)
	if rt != nil {
		if merr := rt.flushMetrics(); merr != nil && err == nil {
			err = merr
		}
	}
	if err == nil {
		return 0
	}

	if rt != nil {
		rt.Logger().Debugw("Command failed", "error", err.Error())
	}
	w := cfg.ErrorWriter
	if w == nil {
		w = os.Stderr
	}
	_, _ = fmt.Fprintf(w, "error: %s\n", oneLine(err))
	return 1
}

func getRuntime(cmd *cobra.Command) (*runtimeState, error) {
	rt, ok := cmd.Context().Value(runtimeKey{}).(*runtimeState)
	if !ok || rt == nil {
		return nil, errors.New("runtime not initialized")
	}
	return rt, nil
}

func (rt *runtimeState) Writer() io.Writer {
	if rt.writer != nil {
		return rt.writer
	}
	return os.Stdout
}

func (rt *runtimeState) Logger() *zap.SugaredLogger {
	if rt.logger != nil {
		return rt.logger
	}
	return zap.NewNop().Sugar()
}

// newLoader returns the configured loader, or a fresh default one.
func (rt *runtimeState) newLoader() *config.Loader {
	loader := rt.loader
	if loader == nil {
		loader = config.NewLoader()
	}
	if rt.secrets != nil {
		loader = loader.WithSecretStore(rt.secrets)
	}
	return loader.WithLogger(rt.Logger())
}

func (rt *runtimeState) secretStore() config.SecretStore {
	if rt.secrets != nil {
		return rt.secrets
	}
	return config.NewKeyringStore()
}

func (rt *runtimeState) sources() config.Sources {
	return config.Sources{
		Path:            rt.configPath,
		SkipEnvironment: rt.noEnv,
		UseKeyring:      rt.useKeyring,
	}
}

func (rt *runtimeState) flushMetrics() error {
	if rt.metricsTextfile == "" {
		return nil
	}
	if err := metrics.WriteTextfile(rt.metricsTextfile); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", rt.metricsTextfile, err)
	}
	return nil
}

// oneLine keeps the first line of a multi-line error and points at the
// rest with a hint when there is more.
func oneLine(err error) string {
	msg := strings.TrimSpace(err.Error())
	first, rest, found := strings.Cut(msg, "\n")
	if !found {
		return msg
	}
	if errors.Is(err, config.ErrMissingFields) && strings.TrimSpace(rest) != "" {
		return first + " (run 'exmailer config init' to create a config file)"
	}
	return first
}
