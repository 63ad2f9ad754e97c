package journal

import (
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/Norgate-AV/presetgen/internal/cmake"
)

// Fingerprint hashes a configure invocation. Identical tool, source
// directory and flags always give the same fingerprint.
func Fingerprint(tool, sourceDir string, flags cmake.Flags) string {
	d := xxhash.New()

	_, _ = d.WriteString(tool)
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(sourceDir)

	for _, arg := range flags.Args() {
		_, _ = d.WriteString("\x00")
		_, _ = d.WriteString(arg)
	}

	return strconv.FormatUint(d.Sum64(), 16)
}
