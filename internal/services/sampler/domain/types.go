// Package domain holds the data model and ports for stratified hourly sampling
package domain

import (
	"stratsampler/internal/core/clean"
	"stratsampler/internal/core/stratify"
	"stratsampler/internal/core/table"
)

// Table re-exports the in-memory table shape used by every stage
type Table = table.Table

// Record re-exports a single input row
type Record = table.Record

// Sample re-exports an accepted device's 24 picks
type Sample = stratify.Sample

// Rejection re-exports the reason a device was skipped
type Rejection = stratify.Rejection

// CleanStats re-exports what the cleaner removed or could not parse
type CleanStats = clean.Stats

// Report summarizes one run for logging
type Report struct {
	RowsRead        int
	RowsErroneous   int
	BadTimestamps   int
	Devices         int
	DevicesAccepted int
	DevicesRejected int
	RowsWritten     int
}
