package config

import "sync"

var (
	defaultsMu sync.RWMutex
	defaults   = Builtin()
)

// Defaults returns a copy of the process-wide defaults
func Defaults() Options {
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()
	return defaults.Clone()
}

// SetDefault overrides a single process-wide default by key. Controllers
// created afterwards start from the new value.
func SetDefault(key string, value any) error {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()

	next := defaults.Clone()
	if err := next.Set(key, value); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}
	defaults = next
	return nil
}

// ReplaceDefaults swaps the whole default configuration
func ReplaceDefaults(o Options) error {
	next := o.Clone()
	if err := next.Validate(); err != nil {
		return err
	}

	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaults = next
	return nil
}

// ResetDefaults restores the builtin defaults
func ResetDefaults() {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaults = Builtin()
}
