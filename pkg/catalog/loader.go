package catalog

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"digital.vasic.exercises/pkg/challenge"
)

// BankFile is the on-disk structure of a challenge bank. Banks
// are YAML by convention; JSON banks use the same field names.
type BankFile struct {
	Version    string                 `json:"version" yaml:"version"`
	Name       string                 `json:"name" yaml:"name"`
	Challenges []challenge.Definition `json:"challenges" yaml:"challenges"`
}

// decodeBank parses bank file bytes, choosing the codec from the
// file extension. YAML is the default.
func decodeBank(data []byte, path string) (*BankFile, error) {
	var bank BankFile
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, &bank); err != nil {
			return nil, fmt.Errorf(
				"parse bank %s: %w", path, err,
			)
		}
		return &bank, nil
	}
	if err := yaml.Unmarshal(data, &bank); err != nil {
		return nil, fmt.Errorf("parse bank %s: %w", path, err)
	}
	return &bank, nil
}

// LoadBankFile reads a single bank file from disk and returns its
// definitions in file order.
func LoadBankFile(path string) ([]challenge.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank %s: %w", path, err)
	}
	bank, err := decodeBank(data, path)
	if err != nil {
		return nil, err
	}
	return bank.Challenges, nil
}

// LoadBankDir loads every .yaml/.yml/.json bank file in dir, in
// lexical filename order. It does not recurse.
func LoadBankDir(dir string) ([]challenge.Definition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf(
			"read bank directory %s: %w", dir, err,
		)
	}

	var defs []challenge.Definition
	for _, entry := range entries {
		if entry.IsDir() || !isBankFile(entry.Name()) {
			continue
		}
		loaded, err := LoadBankFile(
			filepath.Join(dir, entry.Name()),
		)
		if err != nil {
			return nil, err
		}
		defs = append(defs, loaded...)
	}
	return defs, nil
}

// LoadBankFS loads every bank file from an fs.FS, in lexical path
// order. Used for the embedded builtin banks.
func LoadBankFS(fsys fs.FS) ([]challenge.Definition, error) {
	var paths []string
	err := fs.WalkDir(fsys, ".",
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isBankFile(path) {
				paths = append(paths, path)
			}
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("walk bank fs: %w", err)
	}
	sort.Strings(paths)

	var defs []challenge.Definition
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf(
				"read bank %s: %w", path, err,
			)
		}
		bank, err := decodeBank(data, path)
		if err != nil {
			return nil, err
		}
		defs = append(defs, bank.Challenges...)
	}
	return defs, nil
}

func isBankFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}
