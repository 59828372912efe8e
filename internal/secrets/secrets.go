// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets resolves API credentials by name. Credentials live either in
// a directory of plain-text files (the filename is the key name, the trimmed
// contents are the value) or in environment variables.
//
// Known key names: anthropic-api-key, groq-api-key.
package secrets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Source looks up a credential by name. A missing or empty credential reports
// ok == false.
type Source interface {
	Lookup(name string) (value string, ok bool)
}

// Map is a Source backed by an in-memory map, typically the result of Load.
type Map map[string]string

// Lookup implements Source.
func (m Map) Lookup(name string) (string, bool) {
	v, ok := m[name]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Env is a Source backed by environment variables. The key name is converted
// to upper snake case, so "anthropic-api-key" reads ANTHROPIC_API_KEY.
type Env struct {
	// Getenv replaces os.Getenv when set. Tests use it to avoid touching the
	// process environment.
	Getenv func(string) string
}

// Lookup implements Source.
func (e Env) Lookup(name string) (string, bool) {
	get := e.Getenv
	if get == nil {
		get = os.Getenv
	}
	v := strings.TrimSpace(get(EnvName(name)))
	return v, v != ""
}

// EnvName returns the environment variable consulted for key name.
func EnvName(name string) string {
	return strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(name))
}

// Chain is a Source that returns the first hit among its members.
type Chain []Source

// Lookup implements Source.
func (c Chain) Lookup(name string) (string, bool) {
	for _, s := range c {
		if s == nil {
			continue
		}
		if v, ok := s.Lookup(name); ok {
			return v, true
		}
	}
	return "", false
}

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files produce a warning on warn but do not abort.
func Load(dir string, warn io.Writer) (Map, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Map{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(Map)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			if warn != nil {
				fmt.Fprintf(warn, "warning: could not read secret %s: %v\n", name, err)
			}
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}
