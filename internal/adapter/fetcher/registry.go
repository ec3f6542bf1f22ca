package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/rl1809/updatechecker/internal/common"
)

type SourceKind string

const (
	SourceGitHub SourceKind = "github"
	SourceJSON   SourceKind = "json"
	SourceStatic SourceKind = "static"
)

// Source tells the fetcher where the current version of a software lives.
type Source struct {
	Kind SourceKind `yaml:"kind"`

	// Repo is "owner/name" for github sources
	Repo string `yaml:"repo,omitempty"`

	// URL and Field locate the version in a JSON document; Field is a dotted
	// path where numeric segments index arrays, e.g. "0.version".
	URL   string `yaml:"url,omitempty"`
	Field string `yaml:"field,omitempty"`

	// Version is the fixed answer of a static source
	Version string `yaml:"version,omitempty"`

	TrimPrefix string `yaml:"trim_prefix,omitempty"`
}

type Entry struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Source Source `yaml:"source"`
}

type registryFile struct {
	Software []Entry `yaml:"software"`
}

// Registry is the set of tracked software loaded from a YAML file.
type Registry struct {
	mu      sync.RWMutex
	path    string
	entries map[string]Entry
}

func NewRegistry(entries ...Entry) *Registry {
	r := &Registry{entries: make(map[string]Entry)}
	for _, e := range entries {
		r.entries[e.ID] = e
	}
	return r
}

// LoadRegistry reads and validates the registry file at path.
func LoadRegistry(path string) (*Registry, error) {
	r := &Registry{path: path}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) Reload() error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return fmt.Errorf("read registry %s: %w", r.path, err)
	}
	// a truncated file is seen mid-write; keep the current entries
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("registry %s is empty", r.path)
	}
	entries, err := parseRegistry(data)
	if err != nil {
		return fmt.Errorf("parse registry %s: %w", r.path, err)
	}

	r.mu.Lock()
	r.entries = entries
	r.mu.Unlock()
	return nil
}

func parseRegistry(data []byte) (map[string]Entry, error) {
	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	entries := make(map[string]Entry, len(file.Software))
	for i, e := range file.Software {
		e.ID = strings.TrimSpace(e.ID)
		if e.ID == "" {
			return nil, fmt.Errorf("entry %d: missing id", i)
		}
		if _, dup := entries[e.ID]; dup {
			return nil, fmt.Errorf("entry %d: duplicate id %q", i, e.ID)
		}
		if err := e.Source.validate(); err != nil {
			return nil, fmt.Errorf("entry %q: %w", e.ID, err)
		}
		entries[e.ID] = e
	}
	return entries, nil
}

func (s Source) validate() error {
	switch s.Kind {
	case SourceGitHub:
		if !strings.Contains(s.Repo, "/") {
			return fmt.Errorf("github source needs repo as owner/name, got %q", s.Repo)
		}
	case SourceJSON:
		if s.URL == "" || s.Field == "" {
			return fmt.Errorf("json source needs url and field")
		}
	case SourceStatic:
		if s.Version == "" {
			return fmt.Errorf("static source needs version")
		}
	default:
		return fmt.Errorf("unknown source kind %q", s.Kind)
	}
	return nil
}

func (r *Registry) SoftwareIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (r *Registry) Entry(id string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	return e, ok
}

// Watch reloads the registry whenever its file changes, until ctx is done.
// The parent directory is watched so editors that replace the file are seen.
// A file that fails to parse leaves the previous entries in place.
func (r *Registry) Watch(ctx context.Context) error {
	if r.path == "" {
		return fmt.Errorf("registry has no backing file")
	}
	logger := common.Logger()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(r.path)); err != nil {
		return fmt.Errorf("watch %s: %w", r.path, err)
	}

	target := filepath.Clean(r.path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := r.Reload(); err != nil {
				logger.Error("registry: reload failed, keeping previous entries", "path", r.path, "error", err)
				continue
			}
			logger.Info("registry: reloaded", "path", r.path, "software", len(r.SoftwareIDs()))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("registry: watcher error", "error", err)
		}
	}
}
