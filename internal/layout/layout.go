// Package layout computes and resets the output directories a preset is
// configured into.
//
// Directories are removed and recreated without any locking. Two processes
// preparing the same preset at the same time will race on the same paths.
package layout

import (
	"log/slog"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"

	"github.com/Norgate-AV/presetgen/internal/preset"
)

// Dir is one output directory of a layout
type Dir struct {
	// Config is empty for multi-configuration platforms
	Config preset.Config `json:"config,omitempty" yaml:"config,omitempty"`

	// Path is absolute
	Path string `json:"path" yaml:"path"`
}

// Layout is the set of output directories implied by a preset
type Layout struct {
	Preset      string `json:"preset" yaml:"preset"`
	MultiConfig bool   `json:"multi_config" yaml:"multi_config"`
	Dirs        []Dir  `json:"dirs" yaml:"dirs"`
}

// Paths returns the directory paths in generation order
func (l Layout) Paths() []string {
	paths := make([]string, len(l.Dirs))
	for i, d := range l.Dirs {
		paths[i] = d.Path
	}

	return paths
}

// Manager owns the output directories under a base directory
type Manager struct {
	base string
	log  *slog.Logger

	removeAll func(path string) error
	mkdirAll  func(path string, perm os.FileMode) error
}

// NewManager creates a manager rooted at base, normally <root>/compiler
func NewManager(base string, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Manager{
		base:      base,
		log:       log,
		removeAll: os.RemoveAll,
		mkdirAll:  os.MkdirAll,
	}
}

// Base returns the directory the layouts are anchored at
func (m *Manager) Base() string {
	return m.base
}

// Plan returns the layout of p without touching the filesystem
func (m *Manager) Plan(p *preset.Preset) Layout {
	l := Layout{Preset: p.Name, MultiConfig: p.Platform.MultiConfig()}

	if l.MultiConfig {
		l.Dirs = []Dir{{Path: filepath.Join(m.base, p.Name)}}
		return l
	}

	l.Dirs = make([]Dir, 0, len(preset.Configs))
	for _, cfg := range preset.Configs {
		l.Dirs = append(l.Dirs, Dir{
			Config: cfg,
			Path:   filepath.Join(m.base, p.Name+"-"+cfg.String()),
		})
	}

	return l
}

// Reset deletes dir recursively if present and recreates it empty
func (m *Manager) Reset(dir string) error {
	m.log.Debug("resetting output directory", "dir", dir)

	if err := m.removeAll(dir); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove output directory "+dir), "dir", dir)
	}

	if err := m.mkdirAll(dir, 0o755); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create output directory "+dir), "dir", dir)
	}

	return nil
}
