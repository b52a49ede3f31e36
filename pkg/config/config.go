// Package config provides YAML-based configuration loading with
// environment variable expansion and optional change watching.
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// Validator is an interface for configuration validation.
type Validator interface {
	Validate() error
}

// Load loads configuration from a YAML file with environment variable expansion.
func Load[T any](filename string, target *T) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	expandedData := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expandedData), target); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}

	if validator, ok := any(target).(Validator); ok {
		if err := validator.Validate(); err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}
	}

	return nil
}

// LoadWithDefaults loads configuration with fallback to a default file.
func LoadWithDefaults[T any](filename, defaultFile string, target *T) error {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		if defaultFile != "" {
			return Load(defaultFile, target)
		}
		return fmt.Errorf("config file not found: %s", filename)
	}
	return Load(filename, target)
}

// MustLoad loads configuration and panics on failure.
func MustLoad[T any](filename string, target *T) {
	if err := Load(filename, target); err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
}

// Watch re-loads the config file whenever it changes and hands the fresh
// value to onReload. The watch covers the file's directory, so editors
// that replace the file on save (rename + create) are still seen. A file
// that fails to load or validate is skipped; the previous config stays
// active. Watch blocks until ctx is done.
func Watch[T any](ctx context.Context, filename string, onReload func(*T)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config watch: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(filename)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("config watch %s: %w", dir, err)
	}

	target := filepath.Clean(filename)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			fresh := new(T)
			if err := Load(filename, fresh); err != nil {
				slog.Warn("config reload skipped", slog.String("error", err.Error()))
				continue
			}
			slog.Info("config reloaded", slog.String("file", filename))
			onReload(fresh)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("config watch error", slog.String("error", err.Error()))
		}
	}
}
