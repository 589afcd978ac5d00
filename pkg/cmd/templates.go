package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/telekom/exmailer/pkg/output"
	"github.com/telekom/exmailer/pkg/templates"
)

type templateInfo struct {
	Name    string   `json:"name" yaml:"name"`
	Aliases []string `json:"aliases" yaml:"aliases"`
}

func NewTemplatesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Inspect the built-in templates",
	}
	cmd.AddCommand(newTemplatesListCommand())
	return cmd
}

func newTemplatesListCommand() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the built-in templates and their aliases",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			format, err := output.ParseFormat(outputFormat, output.FormatTable)
			if err != nil {
				return err
			}
			var infos []templateInfo
			for _, b := range templates.BuiltIns() {
				infos = append(infos, templateInfo{Name: b.String(), Aliases: templates.Aliases(b)})
			}
			if format != output.FormatTable {
				return output.WriteObject(rt.Writer(), format, infos)
			}
			rows := make([][]string, 0, len(infos))
			for _, info := range infos {
				rows = append(rows, []string{info.Name, strings.Join(info.Aliases, ", ")})
			}
			return output.WriteTable(rt.Writer(), []string{"NAME", "ALIASES"}, rows)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "", "Output format: table, json, yaml")

	return cmd
}
