package journal

import (
	"os"
	"sort"

	"go.trai.ch/zerr"
)

// CollectOutputs returns the names of the regular files at the top of dir,
// sorted. A missing directory has no outputs.
func CollectOutputs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, zerr.With(zerr.Wrap(err, "failed to read output directory "+dir), "dir", dir)
	}

	var outputs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		outputs = append(outputs, entry.Name())
	}

	sort.Strings(outputs)

	return outputs, nil
}
