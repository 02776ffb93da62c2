package catalog

import (
	_ "embed"
)

//go:embed builtin.yaml
var builtinYAML []byte

// Builtin returns the units shipped with the binary.
// The reference session service and the CLI use it when no catalog file is configured.
func Builtin() (*Catalog, error) {
	units, err := ParseYAML(builtinYAML)
	if err != nil {
		return nil, err
	}
	return New(units)
}
