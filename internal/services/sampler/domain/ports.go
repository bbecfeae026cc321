package domain

import "context"

// RunnerPort is the public port exposed by the sampler module
type RunnerPort interface {
	// Run samples every device in an already cleaned table
	Run(ctx context.Context, cleaned Table) (Table, Report)

	// Process reads in, cleans, samples and writes out
	Process(ctx context.Context, in, out string) (Report, error)
}

// TableReader loads an input table from a path
type TableReader interface {
	ReadFile(path string) (Table, error)
}

// TableWriter persists an output table to a path
type TableWriter interface {
	WriteFile(path string, t Table) error
}

// Cleaner removes erroneous rows and types the start timestamp
type Cleaner interface {
	Clean(raw Table) (Table, CleanStats)
}

// Sampler draws one record per hour for a device or explains the rejection
type Sampler interface {
	SampleDevice(t Table, device string) (Sample, *Rejection)
}
