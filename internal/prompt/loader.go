// Package prompt deterministically renders complete instruction strings for
// every generation artifact kind. Templates are stored as JSON files and
// embedded at compile time; composition is a pure function of its inputs.
package prompt

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// cache stores parsed prompt files to avoid repeated JSON parsing
var (
	cache   = make(map[string]map[string]string)
	cacheMu sync.RWMutex
)

// get retrieves a prompt template by filename and key.
func get(filename, key string) (string, error) {
	templates, err := loadFile(filename)
	if err != nil {
		return "", err
	}

	tmpl, exists := templates[key]
	if !exists {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return tmpl, nil
}

// mustGet retrieves a prompt template, panicking if not found. Templates are
// embedded, so a miss is a programming error caught by any test run.
func mustGet(filename, key string) string {
	tmpl, err := get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return tmpl
}

// format replaces template placeholders in the form {{.Key}} with values
// from data. The template is scanned exactly once and substituted values are
// never rescanned, so placeholder syntax inside a value stays literal.
func format(template string, data map[string]string) string {
	pairs := make([]string, 0, len(data)*2)
	for key, value := range data {
		pairs = append(pairs, fmt.Sprintf("{{.%s}}", key), value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// loadFile loads and caches a prompt file.
func loadFile(filename string) (map[string]string, error) {
	cacheMu.RLock()
	if templates, exists := cache[filename]; exists {
		cacheMu.RUnlock()
		return templates, nil
	}
	cacheMu.RUnlock()

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}

	var templates map[string]string
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	cacheMu.Lock()
	cache[filename] = templates
	cacheMu.Unlock()

	return templates, nil
}
