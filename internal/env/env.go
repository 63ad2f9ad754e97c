// Package env provides a frozen snapshot of the environment bindings read
// while resolving a preset.
package env

import (
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"go.trai.ch/zerr"

	"github.com/Norgate-AV/presetgen/internal/codes"
)

// Binding names consumed by preset resolution
const (
	RootDir              = "PHYSX_ROOT_DIR"
	CudaPath             = "PM_CUDA_PATH"
	VS15HostCompiler     = "VS150CLPATH"
	VS16HostCompiler     = "VS160CLPATH"
	VS17HostCompiler     = "VS170CLPATH"
	GenerateSourceDistro = "GENERATE_SOURCE_DISTRO"
	ClangRoot            = "PM_clang_PATH"
	CMakeRoot            = "PM_cmake_PATH"
	PackmanPaths         = "PM_PATHS"
)

// Snapshot is an immutable set of environment bindings
type Snapshot struct {
	vars map[string]string
}

// New creates a snapshot from a map of bindings. The map is copied.
func New(vars map[string]string) Snapshot {
	cp := make(map[string]string, len(vars))
	for k, v := range vars {
		cp[k] = v
	}

	return Snapshot{vars: cp}
}

// FromEnviron creates a snapshot from "KEY=VALUE" entries
func FromEnviron(environ []string) Snapshot {
	vars := make(map[string]string, len(environ))
	for _, entry := range environ {
		k, v, ok := strings.Cut(entry, "=")
		if ok && k != "" {
			vars[k] = v
		}
	}

	return Snapshot{vars: vars}
}

// Capture snapshots the process environment, filling absent bindings from
// envFile when one is given.
func Capture(envFile string) (Snapshot, error) {
	snap := FromEnviron(os.Environ())
	if envFile == "" {
		return snap, nil
	}

	fileVars, err := godotenv.Read(envFile)
	if err != nil {
		return Snapshot{}, zerr.With(zerr.Wrap(err, "failed to read env file"), "path", envFile)
	}

	return snap.Overlay(fileVars), nil
}

// Overlay returns a new snapshot where vars fill bindings absent from s
func (s Snapshot) Overlay(vars map[string]string) Snapshot {
	merged := make(map[string]string, len(s.vars)+len(vars))
	for k, v := range vars {
		merged[k] = v
	}

	for k, v := range s.vars {
		merged[k] = v
	}

	return Snapshot{vars: merged}
}

// Lookup returns a binding and whether it is set
func (s Snapshot) Lookup(name string) (string, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// Get returns a binding or the empty string
func (s Snapshot) Get(name string) string {
	return s.vars[name]
}

// Require returns a binding or a configuration error naming it
func (s Snapshot) Require(name string) (string, error) {
	v, ok := s.vars[name]
	if !ok || v == "" {
		return "", zerr.With(zerr.Wrap(codes.ErrConfiguration, "environment variable "+name+" is not set"), "binding", name)
	}

	return v, nil
}

// Root returns the root directory binding
func (s Snapshot) Root() (string, error) {
	return s.Require(RootDir)
}

// Names returns the sorted binding names
func (s Snapshot) Names() []string {
	names := make([]string, 0, len(s.vars))
	for k := range s.vars {
		names = append(names, k)
	}

	sort.Strings(names)
	return names
}
