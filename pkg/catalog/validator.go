package catalog

import (
	"fmt"
	"os"
)

// ValidationError describes one problem found in a bank file.
// Index is the challenge's position in the file, or -1 for
// file-level problems.
type ValidationError struct {
	Field   string
	Message string
	Index   int
}

func (e ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf(
			"challenges[%d].%s: %s",
			e.Index, e.Field, e.Message,
		)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateBankFile checks a bank file's structure and every
// definition in it, returning all problems found. An empty slice
// means the file is well formed.
func ValidateBankFile(path string) []ValidationError {
	data, err := os.ReadFile(path)
	if err != nil {
		return []ValidationError{{
			Field: "file", Message: err.Error(), Index: -1,
		}}
	}

	bank, err := decodeBank(data, path)
	if err != nil {
		return []ValidationError{{
			Field: "format", Message: err.Error(), Index: -1,
		}}
	}

	var problems []ValidationError
	if bank.Version == "" {
		problems = append(problems, ValidationError{
			Field: "version", Message: "version is required",
			Index: -1,
		})
	}

	seen := make(map[string]bool)
	for i := range bank.Challenges {
		def := &bank.Challenges[i]
		if err := def.Validate(); err != nil {
			problems = append(problems, ValidationError{
				Field: "definition", Message: err.Error(),
				Index: i,
			})
		}
		id := string(def.ID)
		if id == "" {
			continue
		}
		if seen[id] {
			problems = append(problems, ValidationError{
				Field: "id",
				Message: fmt.Sprintf(
					"duplicate id: %s", id,
				),
				Index: i,
			})
		}
		seen[id] = true
	}

	return problems
}
