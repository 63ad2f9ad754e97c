// Package invoker runs the configuration tool in prepared output directories.
package invoker

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"go.trai.ch/zerr"

	"github.com/Norgate-AV/presetgen/internal/cmake"
	"github.com/Norgate-AV/presetgen/internal/codes"
)

// Commander interface for testing
type Commander interface {
	Run() error
}

// exitCoder is satisfied by *exec.ExitError
type exitCoder interface {
	ExitCode() int
}

// Invocation is one run of the configuration tool
type Invocation struct {
	Tool      string
	SourceDir string
	Flags     cmake.Flags
	WorkDir   string
}

// Args returns the argv passed to the tool, source directory first
func (i Invocation) Args() []string {
	return append([]string{i.SourceDir}, i.Flags.Args()...)
}

// CommandLine returns the invocation as it would be typed in a shell
func (i Invocation) CommandLine() string {
	line := i.Tool + ` "` + i.SourceDir + `"`
	if len(i.Flags) > 0 {
		line += " " + i.Flags.String()
	}

	return line
}

// Invoker spawns the configuration tool synchronously
type Invoker struct {
	stdout io.Writer
	stderr io.Writer
	log    *slog.Logger

	execCommand func(dir string, stdout, stderr io.Writer, name string, args ...string) Commander
}

// New creates an invoker that forwards tool output to the process streams
func New(log *slog.Logger) *Invoker {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Invoker{
		stdout: os.Stdout,
		stderr: os.Stderr,
		log:    log,
		execCommand: func(dir string, stdout, stderr io.Writer, name string, args ...string) Commander {
			cmd := exec.Command(name, args...)
			cmd.Dir = dir
			cmd.Stdout = stdout
			cmd.Stderr = stderr
			return cmd
		},
	}
}

// WithOutput redirects tool output
func (iv *Invoker) WithOutput(stdout, stderr io.Writer) *Invoker {
	iv.stdout = stdout
	iv.stderr = stderr
	return iv
}

// Run executes inv and waits for it to exit. The exit code is -1 when the
// process could not be started or did not exit normally.
func (iv *Invoker) Run(inv Invocation) (int, error) {
	iv.log.Debug("running configuration tool", "dir", inv.WorkDir, "command", inv.CommandLine())

	c := iv.execCommand(inv.WorkDir, iv.stdout, iv.stderr, inv.Tool, inv.Args()...)

	err := c.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr exitCoder
	if !errors.As(err, &exitErr) {
		err = zerr.Wrap(codes.ErrExternalTool, fmt.Sprintf("failed to start %s in %s: %v", inv.Tool, inv.WorkDir, err))
		err = zerr.With(err, "path", inv.Tool)
		return -1, zerr.With(err, "dir", inv.WorkDir)
	}

	code := exitErr.ExitCode()
	if codes.IsSuccess(code) {
		return code, nil
	}

	iv.log.Error("configuration tool failed",
		"dir", inv.WorkDir, "exit_code", code, "reason", codes.Describe(code))

	err = zerr.Wrap(codes.ErrExternalTool, fmt.Sprintf("%s exited with code %d in %s: %s",
		inv.Tool, code, inv.WorkDir, codes.Describe(code)))
	err = zerr.With(err, "exit_code", code)
	return code, zerr.With(err, "dir", inv.WorkDir)
}
