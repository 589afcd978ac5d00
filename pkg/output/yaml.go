//go:build !noyaml

package output

import "gopkg.in/yaml.v3"

func marshalYAML(obj any) ([]byte, error) {
	return yaml.Marshal(obj)
}
