// Package store persists users and orders as flat JSON record lists under
// a configurable data directory. Each store performs a full
// read-modify-write of its backing file; a mutex keeps one process's
// writes consistent, but there is no cross-process coordination (accepted
// for the scale this system targets).
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// readList loads a JSON array from path. A missing, empty or corrupt file
// degrades silently to an empty list: the store favors availability over
// strictness, and a fresh deployment simply has no files yet.
func readList[T any](path string) []T {
	b, err := os.ReadFile(path)
	if err != nil || len(b) == 0 {
		return nil
	}
	var list []T
	if err := json.Unmarshal(b, &list); err != nil {
		return nil
	}
	return list
}

// writeList persists a JSON array to path, creating the parent directory
// when needed. The file is pretty-printed so operators can inspect and
// hand-edit it.
func writeList[T any](path string, list []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
