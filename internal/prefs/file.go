package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const fileVersion = "1.0"

// document is the on-disk layout of a File store.
type document struct {
	Version string            `json:"version"`
	Values  map[string]string `json:"values"`
}

// File keeps preferences in a JSON document that is rewritten atomically on every put.
type File struct {
	path   string
	mu     sync.RWMutex
	values map[string]string
}

// OpenFile loads the document at path, creating its directory when needed. A missing
// file starts an empty store.
func OpenFile(path string) (*File, error) {
	f := &File{path: path, values: make(map[string]string)}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create preferences directory: %w", err)
	}

	if err := f.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return f, nil
}

func (f *File) load() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return err
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse preferences %s: %w", f.path, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if doc.Values != nil {
		f.values = doc.Values
	}
	return nil
}

// save writes the document through a temporary file and renames it into place.
// Callers hold f.mu.
func (f *File) save() error {
	data, err := json.MarshalIndent(document{Version: fileVersion, Values: f.values}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	tmpPath := f.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}
	return nil
}

// Path returns the document location.
func (f *File) Path() string {
	return f.path
}

func (f *File) GetString(key, def string) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if v, ok := f.values[key]; ok {
		return v
	}
	return def
}

func (f *File) PutString(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	previous, existed := f.values[key]
	f.values[key] = value
	if err := f.save(); err != nil {
		if existed {
			f.values[key] = previous
		} else {
			delete(f.values, key)
		}
		return err
	}
	return nil
}

func (f *File) GetBool(key string, def bool) bool {
	f.mu.RLock()
	raw, ok := f.values[key]
	f.mu.RUnlock()
	if !ok {
		return def
	}
	return parseBool(raw, def)
}

func (f *File) PutBool(key string, value bool) error {
	return f.PutString(key, formatBool(value))
}

func (f *File) Close() error { return nil }
