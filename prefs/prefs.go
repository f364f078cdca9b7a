// Package prefs serializes preference values. It is very simple (prefs
// are a mapping of regions to key/value mappings, stored as YAML) and
// forgiving: missing files start empty, and corrupt files reset to empty
// rather than failing.
package prefs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"
)

// Prefs handles the serialization of preference values. Every Set writes
// the whole store back to disk, so prefs survive crashes without an
// explicit save step
type Prefs struct {
	mu          sync.Mutex
	filename    string
	data        map[string]map[string]interface{}
	onLoadError func(error)
}

// Option adjusts how a Prefs store is opened
type Option func(p *Prefs)

// WithLoadErrorFunc routes load errors to fn instead of logging them.
// Load errors never fail Open, the store just resets to empty
func WithLoadErrorFunc(fn func(error)) Option {
	return func(p *Prefs) { p.onLoadError = fn }
}

// Open loads the preference store at filename, creating parent
// directories if they do not exist. A missing file yields an empty store;
// a corrupt or wrongly-shaped file resets to empty and reports the load
// error via WithLoadErrorFunc or the log
func Open(filename string, opts ...Option) (*Prefs, error) {
	p := &Prefs{filename: filename}
	for _, opt := range opts {
		opt(p)
	}
	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	p.load()
	return p, nil
}

// Filename returns the path the store persists to
func (p *Prefs) Filename() string { return p.filename }

// Get returns the value stored at region/key, or def if either does not
// exist
func (p *Prefs) Get(region, key string, def interface{}) interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	if vals, ok := p.data[region]; ok {
		if v, ok := vals[key]; ok {
			return v
		}
	}
	return def
}

// Set stores value at region/key and persists the store
func (p *Prefs) Set(region, key string, value interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.data[region]; !ok {
		p.data[region] = map[string]interface{}{}
	}
	p.data[region][key] = value
	return p.save()
}

// SetDefault returns the value at region/key if present, and otherwise
// stores and returns def
func (p *Prefs) SetDefault(region, key string, def interface{}) (interface{}, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if vals, ok := p.data[region]; ok {
		if v, ok := vals[key]; ok {
			return v, nil
		}
	}
	if _, ok := p.data[region]; !ok {
		p.data[region] = map[string]interface{}{}
	}
	p.data[region][key] = def
	return def, p.save()
}

func (p *Prefs) load() {
	p.data = map[string]map[string]interface{}{}
	raw, err := os.ReadFile(p.filename)
	if errors.Is(err, fs.ErrNotExist) {
		return
	}
	if err == nil {
		var data map[string]map[string]interface{}
		if err = yaml.Unmarshal(raw, &data); err == nil {
			if data != nil {
				p.data = data
			}
			return
		}
	}
	if p.onLoadError != nil {
		p.onLoadError(err)
		return
	}
	log.WithError(err).WithField("filename", p.filename).
		Error("could not load preferences, resetting")
}

func (p *Prefs) save() error {
	raw, err := yaml.Marshal(p.data)
	if err != nil {
		return err
	}
	return os.WriteFile(p.filename, raw, 0o644)
}
