package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/telekom/exmailer/pkg/config"
	"github.com/telekom/exmailer/pkg/output"
	"github.com/telekom/exmailer/pkg/version"
)

func NewVersionCommand() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show exmailer version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.GetBuildInfo(config.YAMLSupported())

			rt, _ := getRuntime(cmd)
			writer := cmd.OutOrStdout()
			if rt != nil {
				writer = rt.Writer()
			}

			switch outputFormat {
			case "json":
				return output.WriteObject(writer, output.FormatJSON, info)
			case "yaml":
				return output.WriteObject(writer, output.FormatYAML, info)
			case "":
				_, _ = fmt.Fprintln(writer, info.String())
				return nil
			default:
				return fmt.Errorf("unknown output format: %s (valid: json, yaml)", outputFormat)
			}
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "", "Output format: json, yaml")

	return cmd
}
