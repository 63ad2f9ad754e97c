package preset

import (
	"encoding/xml"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.trai.ch/zerr"

	"github.com/Norgate-AV/presetgen/internal/codes"
	"github.com/Norgate-AV/presetgen/internal/utils"
)

const (
	// Extension of preset definition files
	Extension = ".xml"

	// PublicDir is the fallback search location below the presets directory
	PublicDir = "public"
)

// windowsMarkers identify presets that can only be configured from a Windows host
var windowsMarkers = []string{"win", "switch", "crosscompile"}

// Applicable reports whether a preset name can be configured on host.
// A name containing any Windows marker is applicable only on Windows hosts,
// any other name only on non-Windows hosts.
func Applicable(name string, host utils.HostClass) bool {
	marked := false
	for _, marker := range windowsMarkers {
		if strings.Contains(name, marker) {
			marked = true
			break
		}
	}

	if host == utils.HostWindows {
		return marked
	}

	return !marked
}

// Summary describes a preset for selection menus
type Summary struct {
	Name    string
	Comment string
	Path    string
}

// Catalog enumerates preset definitions below a presets directory
type Catalog struct {
	dir string
	log *slog.Logger
}

// NewCatalog creates a catalog rooted at dir
func NewCatalog(dir string) *Catalog {
	return &Catalog{dir: dir, log: slog.New(slog.DiscardHandler)}
}

// WithLogger sets the logger used to report unreadable definitions
func (c *Catalog) WithLogger(log *slog.Logger) *Catalog {
	if log != nil {
		c.log = log
	}

	return c
}

// Dir returns the primary search location
func (c *Catalog) Dir() string {
	return c.dir
}

// searchDirs returns the primary location followed by the public fallback
func (c *Catalog) searchDirs() []string {
	return []string{c.dir, filepath.Join(c.dir, PublicDir)}
}

// files returns the definition files of the primary location, or of the
// public location when the primary one holds none
func (c *Catalog) files() ([]string, error) {
	for _, dir := range c.searchDirs() {
		matches, err := filepath.Glob(filepath.Join(dir, "*"+Extension))
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to scan presets directory"), "path", dir)
		}

		if len(matches) > 0 {
			sort.Slice(matches, func(i, j int) bool {
				return nameOf(matches[i]) < nameOf(matches[j])
			})
			return matches, nil
		}
	}

	return nil, nil
}

// ListApplicable returns the names of all presets applicable on host.
// An empty result is not an error.
func (c *Catalog) ListApplicable(host utils.HostClass) ([]string, error) {
	files, err := c.files()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(files))
	for _, file := range files {
		name := nameOf(file)
		if Applicable(name, host) {
			names = append(names, name)
		}
	}

	return names, nil
}

// Summaries returns name and comment of every preset applicable on host.
// Definitions whose root element cannot be read are skipped with a warning.
func (c *Catalog) Summaries(host utils.HostClass) ([]Summary, error) {
	names, err := c.ListApplicable(host)
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(names))
	for _, name := range names {
		path, err := c.Locate(name)
		if err != nil {
			return nil, err
		}

		comment, err := readComment(path)
		if err != nil {
			c.log.Warn("skipping unreadable preset", "preset", name, "path", path, "error", err)
			continue
		}

		summaries = append(summaries, Summary{Name: name, Comment: comment, Path: path})
	}

	return summaries, nil
}

// Locate returns the definition file for name. The primary location wins
// over the public one.
func (c *Catalog) Locate(name string) (string, error) {
	if name == "" {
		return "", zerr.Wrap(codes.ErrNotFound, "preset name is empty")
	}

	for _, dir := range c.searchDirs() {
		path := filepath.Join(dir, name+Extension)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}

	publicPath := filepath.Join(c.dir, PublicDir, name+Extension)
	return "", zerr.With(
		zerr.With(zerr.Wrap(codes.ErrNotFound, "preset "+name+" not found: "+publicPath), "preset", name),
		"path", publicPath,
	)
}

// nameOf returns the selectable preset name of a definition file
func nameOf(file string) string {
	return strings.TrimSuffix(filepath.Base(file), Extension)
}

// readComment reads only the root element attributes of a definition
func readComment(file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to open preset"), "path", file)
	}
	defer f.Close()

	dec := xml.NewDecoder(f)
	for {
		tok, err := dec.Token()
		if err != nil {
			var syntaxErr *xml.SyntaxError
			if errors.Is(err, io.EOF) || errors.As(err, &syntaxErr) {
				return "", zerr.With(zerr.Wrap(codes.ErrInvalidPreset, "no root element in "+file+": "+err.Error()), "path", file)
			}

			return "", zerr.With(zerr.Wrap(err, "failed to read preset "+file), "path", file)
		}

		if start, ok := tok.(xml.StartElement); ok {
			for _, attr := range start.Attr {
				if attr.Name.Local == "comment" {
					return attr.Value, nil
				}
			}

			return "", nil
		}
	}
}
