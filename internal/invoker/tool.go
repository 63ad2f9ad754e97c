package invoker

import (
	"os"
	"path/filepath"

	"github.com/Norgate-AV/presetgen/internal/env"
	"github.com/Norgate-AV/presetgen/internal/utils"
)

// PSPPreset is configured with its own wrapper of the tool
const PSPPreset = "psp"

// ResolveTool picks the configuration tool for a preset. An explicit
// override wins, then the packaged install named by the snapshot, then the
// tool on PATH.
func ResolveTool(override string, snap env.Snapshot, presetName string, host utils.HostClass) string {
	if override != "" {
		return override
	}

	if root, ok := snap.Lookup(env.CMakeRoot); ok && root != "" {
		return filepath.Join(root, "bin", utils.ExecutableName("cmake", host))
	}

	if presetName == PSPPreset {
		return "psp-cmake"
	}

	return utils.ExecutableName("cmake", host)
}

// SourceDir returns the source tree the tool is pointed at: the internal
// tree when it carries a CMakeLists.txt, the public one otherwise.
func SourceDir(root string) string {
	internal := filepath.Join(root, "compiler", "internal")
	if _, err := os.Stat(filepath.Join(internal, "CMakeLists.txt")); err == nil {
		return internal
	}

	return filepath.Join(root, "compiler", "public")
}
