package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Backing document names inside the data directory.
const (
	UsersFile        = "users.json"
	TransactionsFile = "transactions.json"
	ChatsFile        = "chats.json"
	AdminFile        = "admin.json"
)

var ErrNotFound = errors.New("record not found")

// EnsureDataFiles creates the data directory and seeds the collection
// documents with empty arrays so that first boot starts from a clean state.
// The admin document is seeded separately because it needs a password hash.
func EnsureDataFiles(dataDir string) error {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	for _, name := range []string{UsersFile, TransactionsFile, ChatsFile} {
		path := filepath.Join(dataDir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("stat %s: %w", name, err)
		}
		if err := writeDocument(path, []any{}); err != nil {
			return err
		}
	}
	return nil
}

// readDocument decodes the whole JSON document at path into dest. A missing
// file is treated as an empty collection; any other failure is surfaced.
func readDocument(path string, dest any) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(dest); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

// writeDocument rewrites the whole document atomically: encode into a .tmp
// sibling, then rename over the real file so a crash mid-write cannot leave
// a truncated document behind.
func writeDocument(path string, value any) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
