package app

import (
	"github.com/Norgate-AV/presetgen/internal/invoker"
	"github.com/Norgate-AV/presetgen/internal/journal"
	"github.com/Norgate-AV/presetgen/internal/layout"
	"github.com/Norgate-AV/presetgen/internal/preset"
)

//go:generate mockgen -source=ports.go -destination=mocks/mock_ports.go -package=mocks

// Runner runs the configuration tool for one leg
type Runner interface {
	Run(inv invoker.Invocation) (int, error)
}

// Preparer plans and resets output directories
type Preparer interface {
	Plan(p *preset.Preset) layout.Layout
	Reset(dir string) error
}

// Recorder keeps the outcome of each leg
type Recorder interface {
	Get(preset, config string) (*journal.Record, error)
	Put(rec journal.Record) error
}

// nopRecorder is used when the journal is disabled
type nopRecorder struct{}

func (nopRecorder) Get(string, string) (*journal.Record, error) { return nil, nil }
func (nopRecorder) Put(journal.Record) error                     { return nil }
