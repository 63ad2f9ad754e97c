// Package codes holds the failure taxonomy shared by every stage of preset
// resolution, and the exit-code descriptions of the configuration tool.
package codes

import "go.trai.ch/zerr"

var (
	// ErrNotFound is returned when a preset name resolves to no definition file.
	ErrNotFound = zerr.New("preset not found")

	// ErrConfiguration is returned when a required environment binding is absent.
	ErrConfiguration = zerr.New("missing environment binding")

	// ErrPlatformUnsupported is returned when a preset cannot be configured on this host.
	ErrPlatformUnsupported = zerr.New("preset not supported on this build platform")

	// ErrInvalidPreset is returned when a preset document is malformed.
	ErrInvalidPreset = zerr.New("invalid preset definition")

	// ErrExternalTool is returned when the configuration tool fails for at least one configuration.
	ErrExternalTool = zerr.New("configuration tool failed")
)
