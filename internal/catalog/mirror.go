package catalog

import (
	"os"
	"path/filepath"
	"strings"
)

// The browse state is mirrored to a query-string file so it survives a
// restart and back-navigation re-seeds it, the same contract the storefront
// keeps with its URL bar. External edits to the file win on the next load.

// SaveQuery writes the canonical query string for f. The default state
// writes an empty file rather than deleting it, so a watcher sees the change.
func SaveQuery(path string, f Filters) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(f.Query().Encode()), 0644)
}

// LoadQuery reads the persisted query string. A missing or unreadable file
// seeds the default state.
func LoadQuery(path string) Filters {
	data, err := os.ReadFile(path)
	if err != nil {
		return Filters{Page: 1}
	}
	return ParseQueryString(strings.TrimSpace(string(data)))
}
