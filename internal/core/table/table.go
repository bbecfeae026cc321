// Package table holds the in-memory model of a recorder log CSV
package table

import (
	"strconv"
	"strings"
	"time"

	ptime "stratsampler/internal/platform/time"
)

// Column names expected in the input CSV
const (
	ColDevice   = "AudioMothCode"
	ColError    = "Error"
	ColDuration = "Duration"
	ColStart    = "StartDateTime"
)

// RequiredColumns lists the columns every input table must carry
var RequiredColumns = []string{ColDevice, ColError, ColDuration, ColStart}

const (
	// MinDurationSeconds is the exclusive lower bound on an eligible recording length
	MinDurationSeconds = 60.0

	// HoursPerDay is the number of hour strata per device
	HoursPerDay = 24
)

// nullTokens mirrors the NA markers pandas treats as missing when reading CSV
var nullTokens = map[string]struct{}{
	"":         {},
	"NA":       {},
	"N/A":      {},
	"n/a":      {},
	"NaN":      {},
	"nan":      {},
	"-NaN":     {},
	"-nan":     {},
	"NULL":     {},
	"null":     {},
	"None":     {},
	"<NA>":     {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"1.#IND":   {},
	"1.#QNAN":  {},
}

// IsNull reports whether a raw cell counts as missing
// matching is exact like pandas: a whitespace-only or padded cell is a value
func IsNull(cell string) bool {
	_, ok := nullTokens[cell]
	return ok
}

// ColumnIndex holds the positions of the required columns within a row
type ColumnIndex struct {
	Device   int
	Error    int
	Duration int
	Start    int
}

// Record is one row of the input table
// Fields is the untouched row; the typed attributes are derived from it
type Record struct {
	Fields []string
	Row    int // zero-based position among the data rows of the source

	DeviceID  string
	HasDevice bool

	ErrorFlag string
	HasError  bool

	Duration    float64
	HasDuration bool

	// StartTime is nil when the cell was missing or could not be parsed
	StartTime *time.Time
}

// NewRecord derives the typed attributes of a row; StartTime is left for the cleaner
func NewRecord(fields []string, idx ColumnIndex) Record {
	r := Record{Fields: fields}

	if v := fields[idx.Device]; !IsNull(v) {
		r.DeviceID, r.HasDevice = v, true
	}
	if v := fields[idx.Error]; !IsNull(v) {
		r.ErrorFlag, r.HasError = v, true
	}
	if v := fields[idx.Duration]; !IsNull(v) {
		if d, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			r.Duration, r.HasDuration = d, true
		}
	}
	return r
}

// Hour returns the hour-of-day of the start timestamp, ok=false when it is missing
func (r Record) Hour() (int, bool) { return ptime.HourOf(r.StartTime) }

// Eligible reports whether the record may be sampled for device
func (r Record) Eligible(device string) bool {
	return r.HasDevice && r.DeviceID == device && r.HasDuration && r.Duration > MinDurationSeconds
}

// Table is an in-memory CSV table with typed views over the required columns
type Table struct {
	Columns []string
	Index   ColumnIndex
	Records []Record
}

// Len returns the number of records
func (t Table) Len() int { return len(t.Records) }

// WithRecords returns a table sharing the schema of t holding recs
func (t Table) WithRecords(recs []Record) Table {
	return Table{Columns: t.Columns, Index: t.Index, Records: recs}
}

// Devices returns distinct non-null device ids in first-appearance order
func (t Table) Devices() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range t.Records {
		if !r.HasDevice {
			continue
		}
		if _, ok := seen[r.DeviceID]; ok {
			continue
		}
		seen[r.DeviceID] = struct{}{}
		out = append(out, r.DeviceID)
	}
	return out
}

// NewIndex locates the required columns in a header row
// missing lists the required names that were not found, in RequiredColumns order
func NewIndex(columns []string) (idx ColumnIndex, missing []string) {
	pos := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := pos[c]; !dup {
			pos[c] = i
		}
	}
	find := func(name string) int {
		if i, ok := pos[name]; ok {
			return i
		}
		missing = append(missing, name)
		return -1
	}
	idx = ColumnIndex{
		Device:   find(ColDevice),
		Error:    find(ColError),
		Duration: find(ColDuration),
		Start:    find(ColStart),
	}
	return idx, missing
}
