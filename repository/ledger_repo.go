package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// LedgerRepo persists the set of already-processed identifiers (ingested
// filenames or seen mail UIDs) as a JSON array of strings. The file is the
// single source of truth for "was this sent to the index"; the remote index
// is never queried for membership.
//
// No concurrent-writer protection is provided. The caller must guarantee a
// single writer per ledger file.
type LedgerRepo struct {
	path string
}

func NewLedgerRepo(path string) *LedgerRepo {
	return &LedgerRepo{path: path}
}

// Load reads the ledger. A missing file is an empty set, not an error.
func (r *LedgerRepo) Load() (map[string]struct{}, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]struct{}{}, nil
		}
		return nil, fmt.Errorf("failed to read ledger %s: %w", r.path, err)
	}
	var entries []string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse ledger %s: %w", r.path, err)
	}
	set := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		set[e] = struct{}{}
	}
	return set, nil
}

// Save replaces the ledger contents entirely. The write goes through a
// temporary file and a rename so a crash mid-save never corrupts committed
// history.
func (r *LedgerRepo) Save(entries map[string]struct{}) error {
	sorted := make([]string, 0, len(entries))
	for e := range entries {
		sorted = append(sorted, e)
	}
	sort.Strings(sorted)

	data, err := json.Marshal(sorted)
	if err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create ledger directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".ledger-*")
	if err != nil {
		return fmt.Errorf("failed to create ledger temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close ledger temp file: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace ledger: %w", err)
	}
	return nil
}
