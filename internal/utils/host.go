package utils

import (
	"runtime"
	"strings"
)

// HostClass groups host operating systems by which presets they can configure
type HostClass string

const (
	HostWindows HostClass = "windows"
	HostOther   HostClass = "other"
)

// CurrentHost returns the host class of the running process
func CurrentHost() HostClass {
	return HostFor(runtime.GOOS)
}

// HostFor maps a GOOS value to its host class
func HostFor(goos string) HostClass {
	if strings.EqualFold(goos, "windows") {
		return HostWindows
	}

	return HostOther
}

// ExecutableName appends the platform executable suffix to name
func ExecutableName(name string, host HostClass) string {
	if host == HostWindows && !strings.HasSuffix(strings.ToLower(name), ".exe") {
		return name + ".exe"
	}

	return name
}
