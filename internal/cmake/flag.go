// Package cmake assembles configuration tool command lines from presets.
package cmake

import (
	"strings"
)

// Kind selects how a flag is rendered
type Kind int

const (
	// Option is a bare switch such as --no-warn-unused-cli
	Option Kind = iota

	// Generator renders as -G <value>
	Generator

	// Architecture renders as -A<value>
	Architecture

	// Define renders as -D<name>=<value>
	Define
)

// Flag is a single command-line flag
type Flag struct {
	Kind  Kind
	Name  string
	Value string

	// Quote forces double quotes around the value in the display form
	Quote bool
}

// Opt returns a bare option flag
func Opt(text string) Flag {
	return Flag{Kind: Option, Name: text}
}

// Gen returns a generator selection flag
func Gen(name string) Flag {
	return Flag{Kind: Generator, Value: name}
}

// Arch returns a generator platform flag
func Arch(name string) Flag {
	return Flag{Kind: Architecture, Value: name}
}

// Def returns a cache definition with a literal value
func Def(name, value string) Flag {
	return Flag{Kind: Define, Name: name, Value: value}
}

// DefPath returns a cache definition whose value is a path
func DefPath(name, path string) Flag {
	return Flag{Kind: Define, Name: name, Value: path, Quote: true}
}

// String returns the display form of the flag, as it would be typed in a shell
func (f Flag) String() string {
	switch f.Kind {
	case Generator:
		return "-G " + quote(f.Value, false)
	case Architecture:
		return "-A" + f.Value
	case Define:
		return "-D" + f.Name + "=" + quote(f.Value, f.Quote)
	default:
		return f.Name
	}
}

// Args returns the argv form of the flag. Values are passed verbatim.
func (f Flag) Args() []string {
	switch f.Kind {
	case Generator:
		return []string{"-G", f.Value}
	case Architecture:
		return []string{"-A" + f.Value}
	case Define:
		return []string{"-D" + f.Name + "=" + f.Value}
	default:
		return []string{f.Name}
	}
}

// Flags is an ordered sequence of flags
type Flags []Flag

// String joins the display forms with single spaces
func (fs Flags) String() string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = f.String()
	}

	return strings.Join(parts, " ")
}

// Args returns the argv form of all flags in order
func (fs Flags) Args() []string {
	args := make([]string, 0, len(fs))
	for _, f := range fs {
		args = append(args, f.Args()...)
	}

	return args
}

// Lookup returns the value of the first definition called name
func (fs Flags) Lookup(name string) (string, bool) {
	for _, f := range fs {
		if f.Kind == Define && f.Name == name {
			return f.Value, true
		}
	}

	return "", false
}

func quote(value string, force bool) string {
	if force || strings.ContainsAny(value, " \t") {
		return `"` + value + `"`
	}

	return value
}
