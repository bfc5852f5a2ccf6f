// Package visitor counts visits with a best-effort fallback chain.
package visitor

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrNotConfigured is returned by counters missing their backing store.
var ErrNotConfigured = errors.New("visitor: counter not configured")

// Counter increments and returns the visit count.
type Counter interface {
	Increment() (int, error)
}

// MemoryCounter counts in-process only.
type MemoryCounter struct {
	count int
}

// Increment adds one visit.
func (m *MemoryCounter) Increment() (int, error) {
	m.count++
	return m.count, nil
}

// FileCounter persists the count in a small YAML file.
type FileCounter struct {
	Path string
}

type fileState struct {
	Count int `yaml:"count"`
}

// Increment reads, increments and writes back the stored count.
// A missing file counts as zero.
func (f FileCounter) Increment() (int, error) {
	if f.Path == "" {
		return 0, ErrNotConfigured
	}

	var st fileState
	data, err := os.ReadFile(f.Path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return 0, fmt.Errorf("reading visitor file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &st); err != nil {
			return 0, fmt.Errorf("parsing visitor file: %w", err)
		}
	}
	if st.Count < 0 {
		st.Count = 0
	}
	st.Count++

	out, err := yaml.Marshal(st)
	if err != nil {
		return 0, fmt.Errorf("marshaling visitor state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0755); err != nil {
		return 0, fmt.Errorf("creating visitor directory: %w", err)
	}
	if err := os.WriteFile(f.Path, out, 0644); err != nil {
		return 0, fmt.Errorf("writing visitor file: %w", err)
	}
	return st.Count, nil
}

// Chain tries counters in order and falls back to an in-memory count.
type Chain struct {
	counters []Counter
	memory   MemoryCounter
}

// NewChain creates a chain over the given counters.
func NewChain(counters ...Counter) *Chain {
	return &Chain{counters: counters}
}

// Visit records a visit and returns a count that is always at least 1.
// Failures are logged and never returned.
func (c *Chain) Visit() int {
	for _, counter := range c.counters {
		n, err := counter.Increment()
		if err == nil && n > 0 {
			return n
		}
		if err != nil && !errors.Is(err, ErrNotConfigured) {
			slog.Warn("visitor counter failed, falling back", "error", err)
		}
	}
	n, _ := c.memory.Increment()
	return max(n, 1)
}

// Ordinal formats n with its English ordinal suffix: 1st, 2nd, 11th, 23rd.
func Ordinal(n int) string {
	suffix := "th"
	switch j, k := n%10, n%100; {
	case j == 1 && k != 11:
		suffix = "st"
	case j == 2 && k != 12:
		suffix = "nd"
	case j == 3 && k != 13:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
