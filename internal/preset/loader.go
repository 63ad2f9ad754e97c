package preset

import (
	"encoding/xml"
	"log/slog"
	"os"
	"strings"

	"go.trai.ch/zerr"

	"github.com/Norgate-AV/presetgen/internal/codes"
	"github.com/Norgate-AV/presetgen/internal/env"
)

type document struct {
	XMLName   xml.Name
	Name      string            `xml:"name,attr"`
	Comment   string            `xml:"comment,attr"`
	Platforms []platformElement `xml:"platform"`
	Switches  entryList         `xml:"CMakeSwitches"`
	Params    entryList         `xml:"CMakeParams"`
}

type platformElement struct {
	TargetPlatform string `xml:"targetPlatform,attr"`
	Compiler       string `xml:"compiler,attr"`
}

type entryList struct {
	Entries []entryElement `xml:",any"`
}

type entryElement struct {
	XMLName xml.Name
	Name    string `xml:"name,attr"`
	Value   string `xml:"value,attr"`
}

// Loader resolves preset names through a catalog and parses them
type Loader struct {
	catalog *Catalog
	env     env.Snapshot
	log     *slog.Logger
}

// NewLoader creates a loader reading definitions from catalog
func NewLoader(catalog *Catalog, snap env.Snapshot, log *slog.Logger) *Loader {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Loader{catalog: catalog, env: snap, log: log}
}

// Load locates and parses the preset called name. A missing definition is
// reported before any environment binding is read.
func (l *Loader) Load(name string) (*Preset, error) {
	path, err := l.catalog.Locate(name)
	if err != nil {
		return nil, err
	}

	return l.LoadFile(path)
}

// LoadFile parses the definition at path, usually one returned by Locate
func (l *Loader) LoadFile(path string) (*Preset, error) {
	l.log.Info("using preset definition", "path", path)

	p, err := Parse(path, l.env)
	if err != nil {
		return nil, err
	}

	l.log.Info("target platform", "platform", p.Platform, "compiler", p.Compiler)
	return p, nil
}

// Parse reads the definition at path
func Parse(path string, snap env.Snapshot) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read preset definition"), "path", path)
	}

	return decode(data, path, snap)
}

func decode(data []byte, path string, snap env.Snapshot) (*Preset, error) {
	var doc document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, invalid(path, "malformed document: "+err.Error())
	}

	name := strings.TrimSpace(doc.Name)
	if name == "" {
		name = nameOf(path)
	}

	if len(doc.Platforms) == 0 {
		return nil, invalid(path, "no platform block")
	}

	// the last platform block wins
	platform := doc.Platforms[len(doc.Platforms)-1]
	if platform.TargetPlatform == "" || platform.Compiler == "" {
		return nil, invalid(path, "platform block needs targetPlatform and compiler")
	}

	p := &Preset{
		Name:     name,
		Comment:  doc.Comment,
		Path:     path,
		Platform: Platform(platform.TargetPlatform),
		Compiler: Compiler(platform.Compiler),
	}

	for _, e := range doc.Switches.Entries {
		if e.Name == "" {
			return nil, invalid(path, "switch without a name")
		}

		p.Switches = append(p.Switches, Entry{Name: e.Name, Value: strings.ToUpper(e.Value)})
	}

	for _, e := range doc.Params.Entries {
		if e.Name == "" {
			return nil, invalid(path, "param without a name")
		}

		if IsReservedPath(e.Name) {
			if _, err := snap.Root(); err != nil {
				return nil, zerr.With(zerr.With(err, "param", e.Name), "path", path)
			}
		}

		p.Params = append(p.Params, Entry{Name: e.Name, Value: e.Value})
	}

	return p, nil
}

func invalid(path, reason string) error {
	return zerr.With(zerr.Wrap(codes.ErrInvalidPreset, path+": "+reason), "path", path)
}
