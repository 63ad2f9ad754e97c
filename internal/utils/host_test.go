package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHostFor(t *testing.T) {
	tests := []struct {
		goos     string
		expected HostClass
	}{
		{"windows", HostWindows},
		{"Windows", HostWindows},
		{"linux", HostOther},
		{"darwin", HostOther},
		{"", HostOther},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, HostFor(test.goos), "HostFor(%q)", test.goos)
	}
}

func TestExecutableName(t *testing.T) {
	assert.Equal(t, "cmake.exe", ExecutableName("cmake", HostWindows))
	assert.Equal(t, "cmake.exe", ExecutableName("cmake.exe", HostWindows))
	assert.Equal(t, "cmake", ExecutableName("cmake", HostOther))
}
