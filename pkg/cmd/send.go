package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/telekom/exmailer/pkg/mail"
	"github.com/telekom/exmailer/pkg/templates"
)

const defaultTemplate = "persian"

type sendOptions struct {
	template     string
	templateFile string
	templateVars string
	subject      string
	body         string
	to           []string
	cc           []string
	bcc          []string
	attachments  []string
	importance   string
}

func (o *sendOptions) bindFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.template, "template", "t", defaultTemplate, "Built-in template: persian, default, minimal, plain (or an alias)")
	f.StringVar(&o.templateFile, "template-file", "", "Path to a custom HTML template containing {body}")
	f.StringVar(&o.templateVars, "template-vars", "", `Template variables as a JSON object, e.g. '{"date": "14/08/1404"}'`)
	f.StringVarP(&o.subject, "subject", "s", "", "Email subject")
	f.StringVarP(&o.body, "body", "b", "", "Email body, or @path to read it from a file")
	f.StringSliceVar(&o.to, "to", nil, "Recipient addresses (repeatable or comma separated)")
	f.StringSliceVar(&o.cc, "cc", nil, "CC addresses")
	f.StringSliceVar(&o.bcc, "bcc", nil, "BCC addresses")
	f.StringSliceVarP(&o.attachments, "attach", "a", nil, "Files to attach")
	f.StringVar(&o.importance, "importance", "normal", "Importance: low, normal, high")

	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("body")
	_ = cmd.MarkFlagRequired("to")
	cmd.MarkFlagsMutuallyExclusive("template", "template-file")

	_ = cmd.RegisterFlagCompletionFunc("template", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		var names []string
		for _, b := range templates.BuiltIns() {
			names = append(names, templates.Aliases(b)...)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("importance", cobra.FixedCompletions([]string{"low", "normal", "high"}, cobra.ShellCompDirectiveNoFileComp))
}

func runSend(cmd *cobra.Command, o *sendOptions) error {
	rt, err := getRuntime(cmd)
	if err != nil {
		return err
	}
	log := rt.Logger()

	body, err := readBody(o.body)
	if err != nil {
		return err
	}
	vars, err := parseTemplateVars(o.templateVars)
	if err != nil {
		return err
	}
	importance, err := mail.ParseImportance(o.importance)
	if err != nil {
		return err
	}

	registry := templates.NewRegistry()
	selector, err := o.selector(registry)
	if err != nil {
		return err
	}

	src := rt.sources()
	emailer, err := mail.New(mail.Options{
		ConfigPath:      src.Path,
		SkipEnvironment: src.SkipEnvironment,
		UseKeyring:      src.UseKeyring,
		Loader:          rt.newLoader(),
		Registry:        registry,
		Connector:       rt.connector,
		Logger:          log,
	})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := emailer.Close(); cerr != nil {
			log.Debugw("Failed to close mail connection", "error", cerr)
		}
	}()

	if err := emailer.Send(mail.SendRequest{
		Subject:     o.subject,
		Body:        body,
		To:          splitAddresses(o.to),
		Cc:          splitAddresses(o.cc),
		Bcc:         splitAddresses(o.bcc),
		Template:    selector,
		Vars:        vars,
		Attachments: o.attachments,
		Importance:  importance,
	}); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(rt.Writer(), "Email sent successfully")
	return nil
}

// selector picks the layout. A --template-file is registered under a
// throwaway name so it cannot collide with built-in aliases.
func (o *sendOptions) selector(registry *templates.Registry) (templates.Selector, error) {
	if o.templateFile != "" {
		content, err := os.ReadFile(expandHome(o.templateFile))
		if err != nil {
			return templates.Selector{}, fmt.Errorf("failed to read template file: %w", err)
		}
		name := "file-" + uuid.NewString()
		if err := registry.Register(name, string(content)); err != nil {
			return templates.Selector{}, fmt.Errorf("invalid template file %s: %w", o.templateFile, err)
		}
		return templates.Named(name), nil
	}
	b, ok := templates.ParseBuiltIn(o.template)
	if !ok {
		return templates.Selector{}, fmt.Errorf("unknown template %q: run 'exmailer templates list' for valid names", o.template)
	}
	return b.Selector(), nil
}

// readBody returns text, or the content of the file named after a leading @.
func readBody(text string) (string, error) {
	path, ok := strings.CutPrefix(text, "@")
	if !ok {
		return text, nil
	}
	content, err := os.ReadFile(expandHome(path))
	if err != nil {
		return "", fmt.Errorf("failed to read body file: %w", err)
	}
	return string(content), nil
}

func parseTemplateVars(raw string) (map[string]any, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var vars map[string]any
	if err := json.Unmarshal([]byte(raw), &vars); err != nil {
		return nil, fmt.Errorf("invalid --template-vars: expected a JSON object: %w", err)
	}
	return vars, nil
}

func splitAddresses(values []string) []string {
	var out []string
	for _, v := range values {
		out = append(out, strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ';' || r == ' ' })...)
	}
	return out
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
