package cmake

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/presetgen/internal/codes"
	"github.com/Norgate-AV/presetgen/internal/env"
	"github.com/Norgate-AV/presetgen/internal/preset"
)

func newPreset(platform preset.Platform, compiler preset.Compiler) *preset.Preset {
	return &preset.Preset{Name: string(platform), Platform: platform, Compiler: compiler}
}

func TestBuilder_PlatformFlags(t *testing.T) {
	root := map[string]string{env.RootDir: "/root"}

	tests := []struct {
		name     string
		platform preset.Platform
		compiler preset.Compiler
		vars     map[string]string
		want     string
	}{
		{
			name:     "win64 vc15",
			platform: preset.Win64, compiler: preset.VC15, vars: root,
			want: `-G "Visual Studio 15 2017" -Ax64 -DTARGET_BUILD_PLATFORM=windows -DPX_OUTPUT_ARCH=x86`,
		},
		{
			name:     "win64 vc16",
			platform: preset.Win64, compiler: preset.VC16, vars: root,
			want: `-G "Visual Studio 16 2019" -Ax64 -DTARGET_BUILD_PLATFORM=windows -DPX_OUTPUT_ARCH=x86`,
		},
		{
			name:     "win64 vc17",
			platform: preset.Win64, compiler: preset.VC17, vars: root,
			want: `-G "Visual Studio 17 2022" -Ax64 -DTARGET_BUILD_PLATFORM=windows -DPX_OUTPUT_ARCH=x86`,
		},
		{
			name:     "switch64 vc16",
			platform: preset.Switch64, compiler: preset.VC16, vars: root,
			want: `-G "Visual Studio 16 2019" -DTARGET_BUILD_PLATFORM=switch ` +
				`-DCMAKE_TOOLCHAIN_FILE="/root/compiler/modules/switch/NX64Toolchain.txt" ` +
				`-DCMAKE_GENERATOR_PLATFORM=NX64 ` +
				`-DCMAKE_VS_USER_PROPS="/root/compiler/modules/switch/Microsoft.Cpp.NX-NXFP2-a64.user.props"`,
		},
		{
			name:     "psp",
			platform: preset.PSP, compiler: preset.GCC, vars: root,
			want: `-G "Unix Makefiles" -DTARGET_BUILD_PLATFORM=psp`,
		},
		{
			name:     "linux clang without compiler root",
			platform: preset.Linux, compiler: preset.Clang, vars: root,
			want: `-G "Unix Makefiles" -DTARGET_BUILD_PLATFORM=linux -DPX_OUTPUT_ARCH=x86 -DCMAKE_C_COMPILER=clang -DCMAKE_CXX_COMPILER=clang++`,
		},
		{
			name:     "linux clang with compiler root",
			platform: preset.Linux, compiler: preset.Clang,
			vars: map[string]string{env.RootDir: "/root", env.ClangRoot: "/opt/clang"},
			want: `-G "Unix Makefiles" -DTARGET_BUILD_PLATFORM=linux -DPX_OUTPUT_ARCH=x86 ` +
				`-DCMAKE_C_COMPILER="/opt/clang/bin/clang" -DCMAKE_CXX_COMPILER="/opt/clang/bin/clang++"`,
		},
		{
			name:     "linux clang crosscompile",
			platform: preset.Linux, compiler: preset.ClangCrossCompile, vars: root,
			want: `-G "Unix Makefiles" -DTARGET_BUILD_PLATFORM=linux -DPX_OUTPUT_ARCH=x86 ` +
				`-DCMAKE_TOOLCHAIN_FILE="/root/compiler/modules/linux/LinuxCrossToolchain.x86_64-unknown-linux-gnu.cmake"`,
		},
		{
			name:     "linux gcc",
			platform: preset.Linux, compiler: preset.GCC, vars: root,
			want: `-G "Unix Makefiles" -DTARGET_BUILD_PLATFORM=linux -DPX_OUTPUT_ARCH=x86`,
		},
		{
			name:     "linuxAarch64 crosscompile",
			platform: preset.LinuxAarch64, compiler: preset.ClangCrossCompile, vars: root,
			want: `-G "Unix Makefiles" -DTARGET_BUILD_PLATFORM=linux -DPX_OUTPUT_ARCH=arm ` +
				`-DCMAKE_TOOLCHAIN_FILE="/root/compiler/modules/linux/LinuxCrossToolchain.aarch64-unknown-linux-gnueabihf.cmake"`,
		},
		{
			name:     "linuxAarch64 gcc",
			platform: preset.LinuxAarch64, compiler: preset.GCC, vars: root,
			want: `-G "Unix Makefiles" -DTARGET_BUILD_PLATFORM=linux -DPX_OUTPUT_ARCH=arm ` +
				`-DCMAKE_TOOLCHAIN_FILE="/root/compiler/modules/linux/LinuxAarch64.cmake"`,
		},
		{
			name:     "linuxAarch64 clang has no toolchain",
			platform: preset.LinuxAarch64, compiler: preset.Clang, vars: root,
			want: `-G "Unix Makefiles" -DTARGET_BUILD_PLATFORM=linux -DPX_OUTPUT_ARCH=arm`,
		},
		{
			name:     "mac64 xcode",
			platform: preset.Mac64, compiler: preset.Xcode, vars: root,
			want: `-G Xcode -DTARGET_BUILD_PLATFORM=mac -DPX_OUTPUT_ARCH=x86`,
		},
		{
			name:     "mac64 clang has no generator",
			platform: preset.Mac64, compiler: preset.Clang, vars: root,
			want: `-DTARGET_BUILD_PLATFORM=mac -DPX_OUTPUT_ARCH=x86`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder(env.New(tt.vars), nil)

			flags, err := b.PlatformFlags(newPreset(tt.platform, tt.compiler))
			require.NoError(t, err)
			assert.Equal(t, tt.want, flags.String())
		})
	}
}

func TestBuilder_PlatformFlags_UnmatchedWarns(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	b := NewBuilder(env.New(map[string]string{env.RootDir: "/root"}), log)

	flags, err := b.PlatformFlags(newPreset("win32", preset.VC16))
	require.NoError(t, err)
	assert.Empty(t, flags)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "platform=win32")
}

func TestBuilder_PlatformFlags_CrossCompileNeedsRoot(t *testing.T) {
	b := NewBuilder(env.New(nil), nil)

	_, err := b.PlatformFlags(newPreset(preset.Switch64, preset.VC16))
	require.Error(t, err)
	assert.True(t, errors.Is(err, codes.ErrConfiguration))
	assert.Contains(t, err.Error(), env.RootDir)
}

func TestBuilder_CommonFlags(t *testing.T) {
	b := NewBuilder(env.New(map[string]string{env.RootDir: "/root"}), nil)
	assert.Equal(t,
		`--no-warn-unused-cli -DCMAKE_PREFIX_PATH="/root/compiler/modules" -DPHYSX_ROOT_DIR="/root" `+
			`-DPX_OUTPUT_LIB_DIR="/root" -DPX_OUTPUT_BIN_DIR="/root"`,
		b.CommonFlags("/root").String())

	b = NewBuilder(env.New(map[string]string{env.RootDir: "/root", env.GenerateSourceDistro: "1"}), nil)
	v, ok := b.CommonFlags("/root").Lookup("PX_GENERATE_SOURCE_DISTRO")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	b = NewBuilder(env.New(map[string]string{env.RootDir: "/root", env.GenerateSourceDistro: "yes"}), nil)
	_, ok = b.CommonFlags("/root").Lookup("PX_GENERATE_SOURCE_DISTRO")
	assert.False(t, ok)
}

func TestBuilder_SwitchFlags_GPU(t *testing.T) {
	gpu := []preset.Entry{{Name: "PX_GENERATE_GPU_PROJECTS", Value: "TRUE"}, {Name: "PX_BUILDSNIPPETS", Value: "FALSE"}}

	t.Run("cuda and host compiler bindings present", func(t *testing.T) {
		b := NewBuilder(env.New(map[string]string{
			env.RootDir:          "/root",
			env.CudaPath:         "/cuda",
			env.VS16HostCompiler: "C:/VS/cl.exe",
		}), nil)
		p := newPreset(preset.Win64, preset.VC16)
		p.Switches = gpu

		flags, err := b.SwitchFlags(p)
		require.NoError(t, err)
		assert.Equal(t,
			`-DPX_GENERATE_GPU_PROJECTS=TRUE -DCUDA_TOOLKIT_ROOT_DIR="/cuda" -DCUDA_HOST_COMPILER="C:/VS/cl.exe" -DPX_BUILDSNIPPETS=FALSE`,
			flags.String())
	})

	t.Run("cuda present, compiler without a versioned host binding", func(t *testing.T) {
		b := NewBuilder(env.New(map[string]string{env.RootDir: "/root", env.CudaPath: "/cuda"}), nil)
		p := newPreset(preset.Linux, preset.Clang)
		p.Switches = gpu

		flags, err := b.SwitchFlags(p)
		require.NoError(t, err)

		_, ok := flags.Lookup("CUDA_TOOLKIT_ROOT_DIR")
		assert.True(t, ok)
		_, ok = flags.Lookup("CUDA_HOST_COMPILER")
		assert.False(t, ok)
	})

	t.Run("no cuda binding", func(t *testing.T) {
		b := NewBuilder(env.New(map[string]string{env.RootDir: "/root"}), nil)
		p := newPreset(preset.Linux, preset.GCC)
		p.Switches = gpu

		flags, err := b.SwitchFlags(p)
		require.NoError(t, err)
		assert.Equal(t, `-DPX_GENERATE_GPU_PROJECTS=TRUE -DPX_BUILDSNIPPETS=FALSE`, flags.String())
	})

	t.Run("visual studio compiler missing its host binding", func(t *testing.T) {
		b := NewBuilder(env.New(map[string]string{env.RootDir: "/root", env.CudaPath: "/cuda"}), nil)
		p := newPreset(preset.Win64, preset.VC17)
		p.Switches = gpu

		_, err := b.SwitchFlags(p)
		require.Error(t, err)
		assert.True(t, errors.Is(err, codes.ErrConfiguration))
		assert.Contains(t, err.Error(), env.VS17HostCompiler)
	})
}

func TestBuilder_ParamFlags(t *testing.T) {
	b := NewBuilder(env.New(map[string]string{env.RootDir: "/root"}), nil)
	p := newPreset(preset.Linux, preset.Clang)
	p.Params = []preset.Entry{
		{Name: "CMAKE_INSTALL_PREFIX", Value: "install/linux/PhysX"},
		{Name: "PX_OUTPUT_LIB_DIR", Value: "bin"},
		{Name: "PX_OUTPUT_EXE_DIR", Value: "bin"},
		{Name: "PX_OUTPUT_DLL_DIR", Value: "bin"},
		{Name: "PX_CUSTOM", Value: "install/relative"},
	}

	assert.Equal(t,
		`-DCMAKE_INSTALL_PREFIX="/root/install/linux/PhysX" -DPX_OUTPUT_LIB_DIR="/root/bin" `+
			`-DPX_OUTPUT_EXE_DIR="/root/bin" -DPX_OUTPUT_DLL_DIR="/root/bin" -DPX_CUSTOM=install/relative`,
		b.ParamFlags(p, "/root").String())
}

func TestBuilder_Build(t *testing.T) {
	snap := env.New(map[string]string{env.RootDir: "/root"})
	p := newPreset(preset.Linux, preset.Clang)
	p.Switches = []preset.Entry{{Name: "PX_BUILDSNIPPETS", Value: "TRUE"}}
	p.Params = []preset.Entry{{Name: "CMAKE_INSTALL_PREFIX", Value: "install"}}

	flags, err := NewBuilder(snap, nil).Build(p, preset.Debug)
	require.NoError(t, err)
	assert.Equal(t,
		`-G "Unix Makefiles" -DTARGET_BUILD_PLATFORM=linux -DPX_OUTPUT_ARCH=x86 `+
			`-DCMAKE_C_COMPILER=clang -DCMAKE_CXX_COMPILER=clang++ `+
			`--no-warn-unused-cli -DCMAKE_PREFIX_PATH="/root/compiler/modules" -DPHYSX_ROOT_DIR="/root" `+
			`-DPX_OUTPUT_LIB_DIR="/root" -DPX_OUTPUT_BIN_DIR="/root" `+
			`-DPX_BUILDSNIPPETS=TRUE -DCMAKE_INSTALL_PREFIX="/root/install" -DCMAKE_BUILD_TYPE=debug`,
		flags.String())

	again, err := NewBuilder(snap, nil).Build(p, preset.Debug)
	require.NoError(t, err)
	assert.Equal(t, flags.String(), again.String(), "identical inputs give identical command lines")

	multi, err := NewBuilder(snap, nil).Build(p, "")
	require.NoError(t, err)
	_, ok := multi.Lookup("CMAKE_BUILD_TYPE")
	assert.False(t, ok)
}

func TestBuilder_Build_RequiresRoot(t *testing.T) {
	_, err := NewBuilder(env.New(nil), nil).Build(newPreset(preset.Mac64, preset.Xcode), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, codes.ErrConfiguration))
	assert.Contains(t, err.Error(), env.RootDir)
}
