// Package challenges ships the builtin challenge bank. The six
// exercises are embedded as YAML bank files so the binary works
// without any external data directory.
package challenges

import (
	"embed"
	"fmt"
	"io/fs"

	"digital.vasic.exercises/pkg/catalog"
	"digital.vasic.exercises/pkg/challenge"
)

//go:embed banks/*.yaml
var bankFS embed.FS

// Builtin returns the builtin challenge definitions in menu
// order: Medium first, Expert last.
func Builtin() ([]challenge.Definition, error) {
	sub, err := fs.Sub(bankFS, "banks")
	if err != nil {
		return nil, fmt.Errorf("open embedded banks: %w", err)
	}
	defs, err := catalog.LoadBankFS(sub)
	if err != nil {
		return nil, fmt.Errorf("load embedded banks: %w", err)
	}
	return defs, nil
}

// BuiltinCatalog builds a catalog from the builtin definitions.
func BuiltinCatalog() (*catalog.Catalog, error) {
	defs, err := Builtin()
	if err != nil {
		return nil, err
	}
	return catalog.New(defs...)
}
