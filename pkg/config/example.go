package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// exampleFile is the document written by `config init` and quoted in the
// missing-fields error. Field order is the order users see.
type exampleFile struct {
	Domain      string `json:"domain" yaml:"domain"`
	Username    string `json:"username" yaml:"username"`
	Password    string `json:"password" yaml:"password"`
	Server      string `json:"server" yaml:"server"`
	EmailDomain string `json:"email_domain" yaml:"email_domain"`
	AuthType    string `json:"auth_type" yaml:"auth_type"`
	SaveCopy    bool   `json:"save_copy" yaml:"save_copy"`
}

func example() exampleFile {
	return exampleFile{
		Domain:      "your-domain",
		Username:    "john.doe",
		Password:    "your-password",
		Server:      "mail.yourcompany.com",
		EmailDomain: "yourcompany.com",
		AuthType:    string(DefaultAuthType),
		SaveCopy:    DefaultSaveCopy,
	}
}

// ExampleJSON returns an indented example config file.
func ExampleJSON() string {
	data, err := json.MarshalIndent(example(), "", "  ")
	if err != nil {
		panic(err)
	}
	return string(data)
}

// WriteExample writes an example config file to path, as YAML when the
// extension asks for it and JSON otherwise. Existing files are only
// replaced when force is set.
func WriteExample(path string, force bool) error {
	resolved, err := expandPath(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if !force {
		if _, err := os.Stat(resolved); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}

	var content []byte
	if isYAMLPath(resolved) {
		content, err = encodeYAML(path, example())
	} else {
		content, err = json.MarshalIndent(example(), "", "  ")
		content = append(content, '\n')
	}
	if err != nil {
		return fmt.Errorf("failed to marshal example config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	return os.WriteFile(resolved, content, 0o600)
}
