// Package motion tracks the reduced-motion accessibility preference.
package motion

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Preference is the live reduced-motion flag. Subscribers are notified only
// when the value changes.
type Preference struct {
	reduced bool
	subs    []func(bool)
}

// NewPreference creates a preference with an initial value.
func NewPreference(reduced bool) *Preference {
	return &Preference{reduced: reduced}
}

// Reduced reports whether reduced motion is on.
func (p *Preference) Reduced() bool {
	return p.reduced
}

// Set updates the preference and notifies subscribers on change.
func (p *Preference) Set(reduced bool) {
	if p.reduced == reduced {
		return
	}
	p.reduced = reduced
	for _, fn := range p.subs {
		fn(reduced)
	}
}

// Toggle flips the preference.
func (p *Preference) Toggle() {
	p.Set(!p.reduced)
}

// Subscribe registers fn for changes and returns a function removing it.
func (p *Preference) Subscribe(fn func(bool)) (unsubscribe func()) {
	p.subs = append(p.subs, fn)
	idx := len(p.subs) - 1
	removed := false
	return func() {
		if removed {
			return
		}
		removed = true
		// Replace with a no-op so indices held by other closures stay valid.
		p.subs[idx] = func(bool) {}
	}
}

// Detect reads the host preference from the first set environment variable
// that parses. Unparseable values are logged and skipped; when nothing
// decides, fallback is returned.
func Detect(envVars []string, fallback bool) bool {
	for _, name := range envVars {
		raw, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		on, err := parse(raw)
		if err != nil {
			slog.Warn("ignoring reduced-motion setting", "var", name, "value", raw, "error", err)
			continue
		}
		return on
	}
	return fallback
}

func parse(raw string) (bool, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	switch v {
	case "reduce", "reduced", "on", "yes":
		return true, nil
	case "no-preference", "off", "no", "":
		return false, nil
	}
	return strconv.ParseBool(v)
}
