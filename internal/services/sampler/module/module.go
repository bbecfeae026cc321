// Package module provides the sampler module implementation
package module

import (
	"stratsampler/internal/adapters/csvio"
	"stratsampler/internal/core/clean"
	"stratsampler/internal/core/stratify"
	"stratsampler/internal/modkit"
	"stratsampler/internal/services/sampler/domain"
	"stratsampler/internal/services/sampler/service"
)

// Ports defines the sampler module ports
type Ports struct {
	Runner domain.RunnerPort
}

// Adapters swaps the collaborators the module would otherwise build itself
// nil fields keep the default
type Adapters struct {
	Reader  domain.TableReader
	Writer  domain.TableWriter
	Cleaner domain.Cleaner
	Sampler domain.Sampler
}

// WithAdapters injects collaborators, mostly for tests
func WithAdapters(a Adapters) modkit.Option { return modkit.WithPorts(a) }

// Module implements the sampler module
type Module struct {
	deps  modkit.Deps
	opts  Options
	name  string
	ports Ports
}

// New constructs the sampler module from already validated options
// the csv adapters, the cleaner and a seeded sampler are wired unless overridden
func New(deps modkit.Deps, opts Options, extra ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("sampler")}, extra...)...)

	var a Adapters
	if b.Ports != nil {
		v, ok := b.Ports.(Adapters)
		if !ok {
			panic("sampler module: expected WithAdapters(module.Adapters)")
		}
		a = v
	}
	if a.Reader == nil {
		a.Reader = csvio.NewReader()
	}
	if a.Writer == nil {
		a.Writer = csvio.NewWriter(opts.TimeLayout).WithIndex(opts.WriteIndex)
	}
	if a.Cleaner == nil {
		a.Cleaner = clean.New()
	}
	if a.Sampler == nil {
		a.Sampler = stratify.NewSeeded(opts.Seed)
	}

	svc := service.New(a.Reader, a.Writer, a.Cleaner, a.Sampler, deps.Log)

	return &Module{
		deps:  deps,
		opts:  opts,
		name:  b.Name,
		ports: Ports{Runner: svc},
	}
}

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Options returns the options the module was built with
func (m *Module) Options() Options { return m.opts }
