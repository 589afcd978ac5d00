package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/telekom/exmailer/pkg/config"
	"github.com/telekom/exmailer/pkg/output"
)

func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the exmailer configuration",
	}

	cmd.AddCommand(
		newConfigInitCommand(),
		newConfigViewCommand(),
		newConfigSetPasswordCommand(),
	)

	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var (
		force  bool
		format string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write an example config file",
		Long: `Write an example config file to --config, or to the user config directory
when no path is given. Existing files are kept unless --force is set.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			path := rt.configPath
			switch strings.ToLower(format) {
			case "json":
				if path == "" {
					path = config.DefaultConfigPath()
				}
			case "yaml", "yml":
				if path == "" {
					path = config.DefaultYAMLConfigPath()
				}
			default:
				return fmt.Errorf("unsupported format %q: valid values: json, yaml", format)
			}
			if err := config.WriteExample(path, force); err != nil {
				return err
			}
			rt.Logger().Infow("Wrote example config", "path", path)
			_, _ = fmt.Fprintf(rt.Writer(), "Wrote example config to %s\n", path)
			_, _ = fmt.Fprintln(rt.Writer(), "Fill in your account, or keep the password out of the file with 'exmailer config set-password'.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	cmd.Flags().StringVar(&format, "format", "json", "File format when no --config path is given: json, yaml")

	return cmd
}

func newConfigViewCommand() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Show the resolved configuration with the password redacted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			fallback := output.FormatYAML
			if !config.YAMLSupported() {
				fallback = output.FormatJSON
			}
			format, err := output.ParseFormat(outputFormat, fallback)
			if err != nil {
				return err
			}
			cfg, err := rt.newLoader().Resolve(rt.sources())
			if err != nil {
				return err
			}
			redacted := cfg.Redacted()
			if format == output.FormatTable {
				return output.WriteTable(rt.Writer(), []string{"KEY", "VALUE", "SOURCE"}, configRows(redacted))
			}
			return output.WriteObject(rt.Writer(), format, redacted)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "", "Output format: yaml, json, table (default yaml, json in builds without YAML)")

	return cmd
}

func configRows(cfg config.Config) [][]string {
	values := map[config.Key]string{
		config.KeyDomain:             cfg.Domain,
		config.KeyUsername:           cfg.Username,
		config.KeyPassword:           cfg.Password,
		config.KeyServer:             cfg.Server,
		config.KeyEmailDomain:        cfg.EmailDomain,
		config.KeyAuthType:           string(cfg.AuthType),
		config.KeySaveCopy:           fmt.Sprint(cfg.SaveCopy),
		config.KeyPort:               fmt.Sprint(cfg.Port),
		config.KeyInsecureSkipVerify: fmt.Sprint(cfg.InsecureSkipVerify),
	}
	keys := []config.Key{
		config.KeyDomain, config.KeyUsername, config.KeyPassword, config.KeyServer, config.KeyEmailDomain,
		config.KeyAuthType, config.KeySaveCopy, config.KeyPort, config.KeyInsecureSkipVerify,
	}
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{string(k), values[k], string(cfg.Origins[k])})
	}
	return rows
}

func newConfigSetPasswordCommand() *cobra.Command {
	var domain, username string

	cmd := &cobra.Command{
		Use:   "set-password",
		Short: "Store the account password in the OS keyring",
		Long: `Read the password from standard input and store it in the OS keyring under
the service "exmailer" and the account DOMAIN\username. Use --keyring when
sending to pick it up.`,
		Example: `  printf '%s' "$PASSWORD" | exmailer config set-password --domain CORP --username john.doe`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			password, err := readPassword(rt)
			if err != nil {
				return err
			}
			if err := config.StorePassword(rt.secretStore(), domain, username, password); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(rt.Writer(), "Password stored in keyring for %s\\%s\n", domain, username)
			return nil
		},
	}

	cmd.Flags().StringVar(&domain, "domain", "", "Active Directory domain")
	cmd.Flags().StringVar(&username, "username", "", "Account name")
	_ = cmd.MarkFlagRequired("domain")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func readPassword(rt *runtimeState) (string, error) {
	line, err := bufio.NewReader(rt.input).ReadString('\n')
	if err != nil && line == "" {
		return "", errors.New("no password on standard input")
	}
	return strings.TrimRight(line, "\r\n"), nil
}
