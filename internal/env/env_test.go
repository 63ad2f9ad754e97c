package env

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/presetgen/internal/codes"
)

func TestFromEnviron(t *testing.T) {
	snap := FromEnviron([]string{"A=1", "B=two=2", "EMPTY=", "=ignored", "NOEQUALS"})

	v, ok := snap.Lookup("A")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
	assert.Equal(t, "two=2", snap.Get("B"))

	v, ok = snap.Lookup("EMPTY")
	assert.True(t, ok)
	assert.Empty(t, v)

	_, ok = snap.Lookup("NOEQUALS")
	assert.False(t, ok)
	assert.Equal(t, []string{"A", "B", "EMPTY"}, snap.Names())
}

func TestNew_CopiesInput(t *testing.T) {
	vars := map[string]string{RootDir: "/root"}
	snap := New(vars)
	vars[RootDir] = "/changed"

	assert.Equal(t, "/root", snap.Get(RootDir))
}

func TestRequire(t *testing.T) {
	snap := New(map[string]string{RootDir: "/root", CudaPath: ""})

	root, err := snap.Root()
	require.NoError(t, err)
	assert.Equal(t, "/root", root)

	_, err = snap.Require(CudaPath)
	require.Error(t, err)
	assert.True(t, errors.Is(err, codes.ErrConfiguration))
	assert.Contains(t, err.Error(), CudaPath)

	_, err = snap.Require(VS16HostCompiler)
	require.Error(t, err)
	assert.Contains(t, err.Error(), VS16HostCompiler)
}

func TestOverlay_ProcessWins(t *testing.T) {
	snap := New(map[string]string{RootDir: "/from/process"})
	merged := snap.Overlay(map[string]string{RootDir: "/from/file", CudaPath: "/cuda"})

	assert.Equal(t, "/from/process", merged.Get(RootDir))
	assert.Equal(t, "/cuda", merged.Get(CudaPath))
	_, ok := snap.Lookup(CudaPath)
	assert.False(t, ok, "overlay must not mutate the original snapshot")
}

func TestCapture(t *testing.T) {
	t.Run("reads process environment", func(t *testing.T) {
		t.Setenv(RootDir, "/physx")

		snap, err := Capture("")
		require.NoError(t, err)
		assert.Equal(t, "/physx", snap.Get(RootDir))
	})

	t.Run("fills absent bindings from env file", func(t *testing.T) {
		t.Setenv(RootDir, "/physx")

		envFile := filepath.Join(t.TempDir(), ".env")
		err := os.WriteFile(envFile, []byte("PHYSX_ROOT_DIR=/ignored\nPRESETGEN_TEST_CLANG=/opt/clang\n"), 0o644)
		require.NoError(t, err)

		snap, err := Capture(envFile)
		require.NoError(t, err)
		assert.Equal(t, "/physx", snap.Get(RootDir))
		assert.Equal(t, "/opt/clang", snap.Get("PRESETGEN_TEST_CLANG"))
	})

	t.Run("missing env file", func(t *testing.T) {
		_, err := Capture(filepath.Join(t.TempDir(), "missing.env"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read env file")
	})
}
