// Package preset discovers, filters and loads build preset definitions.
package preset

// Platform is the target platform of a preset
type Platform string

const (
	Win64        Platform = "win64"
	Switch64     Platform = "switch64"
	PSP          Platform = "psp"
	Linux        Platform = "linux"
	LinuxAarch64 Platform = "linuxAarch64"
	Mac64        Platform = "mac64"
)

// MultiConfig reports whether the platform's generators produce all build
// configurations from a single output directory
func (p Platform) MultiConfig() bool {
	switch p {
	case Linux, LinuxAarch64, PSP:
		return false
	}

	return true
}

// String returns the string representation of the Platform
func (p Platform) String() string {
	return string(p)
}

// Compiler is the toolchain a preset is configured for
type Compiler string

const (
	VC15              Compiler = "vc15"
	VC16              Compiler = "vc16"
	VC17              Compiler = "vc17"
	Xcode             Compiler = "xcode"
	Clang             Compiler = "clang"
	ClangCrossCompile Compiler = "clang-crosscompile"
	GCC               Compiler = "gcc"
)

// String returns the string representation of the Compiler
func (c Compiler) String() string {
	return string(c)
}

// Config is a build configuration tag for single-configuration platforms
type Config string

const (
	Debug   Config = "debug"
	Checked Config = "checked"
	Profile Config = "profile"
	Release Config = "release"
)

// Configs lists the build configurations in generation order
var Configs = [...]Config{Debug, Checked, Profile, Release}

// String returns the string representation of the Config
func (c Config) String() string {
	return string(c)
}

// Entry is an ordered name/value pair of a switches or params block
type Entry struct {
	Name  string
	Value string
}

// Preset is a parsed preset definition. It is not modified after Load.
type Preset struct {
	// Name from the document root, used for output directory names
	Name string

	// Free-text description shown in menus
	Comment string

	// Definition file the preset was loaded from
	Path string

	Platform Platform
	Compiler Compiler

	// Switch values are upper-cased at load time
	Switches []Entry

	// Reserved path params keep their relative fragment
	Params []Entry
}

// ReservedPathParams are params whose value is a path fragment relative to
// the root directory binding
var ReservedPathParams = map[string]bool{
	"CMAKE_INSTALL_PREFIX": true,
	"PX_OUTPUT_LIB_DIR":    true,
	"PX_OUTPUT_EXE_DIR":    true,
	"PX_OUTPUT_DLL_DIR":    true,
}

// IsReservedPath reports whether a param name is anchored at the root directory
func IsReservedPath(name string) bool {
	return ReservedPathParams[name]
}
