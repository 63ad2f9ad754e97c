package cmake

import (
	"log/slog"
	"strings"

	"github.com/Norgate-AV/presetgen/internal/env"
	"github.com/Norgate-AV/presetgen/internal/preset"
)

// GPUProjectsSwitch marks switches that request GPU project generation
const GPUProjectsSwitch = "PX_GENERATE_GPU_PROJECTS"

// Unix Makefiles is the generator for every non-IDE platform
const unixMakefiles = "Unix Makefiles"

var vsGenerators = map[preset.Compiler]string{
	preset.VC15: "Visual Studio 15 2017",
	preset.VC16: "Visual Studio 16 2019",
	preset.VC17: "Visual Studio 17 2022",
}

var vsHostCompilers = map[preset.Compiler]string{
	preset.VC15: env.VS15HostCompiler,
	preset.VC16: env.VS16HostCompiler,
	preset.VC17: env.VS17HostCompiler,
}

// Builder turns presets into configuration tool flags
type Builder struct {
	env env.Snapshot
	log *slog.Logger
}

// NewBuilder creates a builder reading bindings from snap
func NewBuilder(snap env.Snapshot, log *slog.Logger) *Builder {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Builder{env: snap, log: log}
}

// Build assembles platform, common, switch and param flags for p, followed
// by a build type definition when cfg is set
func (b *Builder) Build(p *preset.Preset, cfg preset.Config) (Flags, error) {
	root, err := b.env.Root()
	if err != nil {
		return nil, err
	}

	var flags Flags

	platform, err := b.PlatformFlags(p)
	if err != nil {
		return nil, err
	}
	flags = append(flags, platform...)
	flags = append(flags, b.CommonFlags(root)...)

	switches, err := b.SwitchFlags(p)
	if err != nil {
		return nil, err
	}
	flags = append(flags, switches...)
	flags = append(flags, b.ParamFlags(p, root)...)

	if cfg != "" {
		flags = append(flags, Def("CMAKE_BUILD_TYPE", cfg.String()))
	}

	return flags, nil
}

// PlatformFlags returns the generator and platform flags of p. Unknown
// platforms yield no flags and a warning.
func (b *Builder) PlatformFlags(p *preset.Preset) (Flags, error) {
	var flags Flags

	switch {
	case vsGenerators[p.Compiler] != "":
		flags = append(flags, Gen(vsGenerators[p.Compiler]))
	case p.Compiler == preset.Xcode:
		flags = append(flags, Gen("Xcode"))
	case p.Platform == preset.Linux, p.Platform == preset.LinuxAarch64, p.Platform == preset.PSP:
		flags = append(flags, Gen(unixMakefiles))
	}

	switch p.Platform {
	case preset.Win64:
		flags = append(flags,
			Arch("x64"),
			Def("TARGET_BUILD_PLATFORM", "windows"),
			Def("PX_OUTPUT_ARCH", "x86"),
		)

	case preset.Switch64:
		root, err := b.env.Root()
		if err != nil {
			return nil, err
		}

		flags = append(flags,
			Def("TARGET_BUILD_PLATFORM", "switch"),
			DefPath("CMAKE_TOOLCHAIN_FILE", under(root, "compiler/modules/switch/NX64Toolchain.txt")),
			Def("CMAKE_GENERATOR_PLATFORM", "NX64"),
			DefPath("CMAKE_VS_USER_PROPS", under(root, "compiler/modules/switch/Microsoft.Cpp.NX-NXFP2-a64.user.props")),
		)

	case preset.PSP:
		flags = append(flags, Def("TARGET_BUILD_PLATFORM", "psp"))

	case preset.Linux:
		flags = append(flags,
			Def("TARGET_BUILD_PLATFORM", "linux"),
			Def("PX_OUTPUT_ARCH", "x86"),
		)

		switch p.Compiler {
		case preset.ClangCrossCompile:
			root, err := b.env.Root()
			if err != nil {
				return nil, err
			}

			flags = append(flags, DefPath("CMAKE_TOOLCHAIN_FILE",
				under(root, "compiler/modules/linux/LinuxCrossToolchain.x86_64-unknown-linux-gnu.cmake")))

		case preset.Clang:
			if clangRoot, ok := b.env.Lookup(env.ClangRoot); ok && clangRoot != "" {
				flags = append(flags,
					DefPath("CMAKE_C_COMPILER", under(clangRoot, "bin/clang")),
					DefPath("CMAKE_CXX_COMPILER", under(clangRoot, "bin/clang++")),
				)
			} else {
				flags = append(flags,
					Def("CMAKE_C_COMPILER", "clang"),
					Def("CMAKE_CXX_COMPILER", "clang++"),
				)
			}
		}

	case preset.LinuxAarch64:
		flags = append(flags,
			Def("TARGET_BUILD_PLATFORM", "linux"),
			Def("PX_OUTPUT_ARCH", "arm"),
		)

		var toolchain string
		switch p.Compiler {
		case preset.ClangCrossCompile:
			toolchain = "compiler/modules/linux/LinuxCrossToolchain.aarch64-unknown-linux-gnueabihf.cmake"
		case preset.GCC:
			toolchain = "compiler/modules/linux/LinuxAarch64.cmake"
		}

		if toolchain != "" {
			root, err := b.env.Root()
			if err != nil {
				return nil, err
			}

			flags = append(flags, DefPath("CMAKE_TOOLCHAIN_FILE", under(root, toolchain)))
		}

	case preset.Mac64:
		flags = append(flags,
			Def("TARGET_BUILD_PLATFORM", "mac"),
			Def("PX_OUTPUT_ARCH", "x86"),
		)

	default:
		b.log.Warn("no platform flags for this platform/compiler combination",
			"preset", p.Name, "platform", p.Platform, "compiler", p.Compiler)
		return Flags{}, nil
	}

	return flags, nil
}

// CommonFlags returns the flags shared by every preset
func (b *Builder) CommonFlags(root string) Flags {
	flags := Flags{
		Opt("--no-warn-unused-cli"),
		DefPath("CMAKE_PREFIX_PATH", under(root, "compiler/modules")),
		DefPath("PHYSX_ROOT_DIR", root),
		DefPath("PX_OUTPUT_LIB_DIR", root),
		DefPath("PX_OUTPUT_BIN_DIR", root),
	}

	if b.env.Get(env.GenerateSourceDistro) == "1" {
		flags = append(flags, Def("PX_GENERATE_SOURCE_DISTRO", "1"))
	}

	return flags
}

// SwitchFlags renders the switches of p. A GPU projects switch pulls in
// the CUDA toolkit and, for Visual Studio compilers, the host compiler.
func (b *Builder) SwitchFlags(p *preset.Preset) (Flags, error) {
	flags := make(Flags, 0, len(p.Switches))

	for _, s := range p.Switches {
		flags = append(flags, Def(s.Name, s.Value))

		if !strings.Contains(s.Name, GPUProjectsSwitch) {
			continue
		}

		if cuda, ok := b.env.Lookup(env.CudaPath); ok && cuda != "" {
			flags = append(flags, DefPath("CUDA_TOOLKIT_ROOT_DIR", cuda))
		}

		if binding, ok := vsHostCompilers[p.Compiler]; ok {
			hostCompiler, err := b.env.Require(binding)
			if err != nil {
				return nil, err
			}

			b.log.Debug("cuda host compiler", "binding", binding, "path", hostCompiler)
			flags = append(flags, DefPath("CUDA_HOST_COMPILER", hostCompiler))
		}
	}

	return flags, nil
}

// ParamFlags renders the params of p. Reserved path params are anchored at root.
func (b *Builder) ParamFlags(p *preset.Preset, root string) Flags {
	flags := make(Flags, 0, len(p.Params))

	for _, param := range p.Params {
		if preset.IsReservedPath(param.Name) {
			flags = append(flags, DefPath(param.Name, under(root, param.Value)))
			continue
		}

		flags = append(flags, Def(param.Name, param.Value))
	}

	return flags
}

// under joins a relative fragment to root with a forward slash
func under(root, rel string) string {
	return strings.TrimRight(root, `/\`) + "/" + strings.TrimLeft(rel, `/\`)
}
