// Package clean drops erroneous recorder rows and types their start timestamps
//
// Pipeline order
// 1 drop every row whose Error cell is non-null
// 2 parse StartDateTime with a format-sniffing parser; failures become a nil timestamp
//   numeric dates are month-first, retried day-first when the first number is above 12
//
// Naive timestamps are read as wall clock in UTC and explicit offsets are kept,
// so the hour a row lands in is always the hour written in the file
package clean

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"stratsampler/internal/core/table"

	"github.com/araddon/dateparse"
)

// Stats counts what a pass removed or could not parse
type Stats struct {
	Dropped       int // rows removed for a non-null Error
	Missing       int // retained rows with a null StartDateTime
	BadTimestamps int // retained rows whose StartDateTime did not parse
}

// Cleaner is stateless and safe to reuse
type Cleaner struct {
	loc *time.Location
}

// New constructs a Cleaner
func New() *Cleaner { return &Cleaner{loc: time.UTC} }

// Clean returns a new table without erroneous rows and with StartTime set or nil
// it never fails; unparseable timestamps are data, not errors
func (c *Cleaner) Clean(raw table.Table) (table.Table, Stats) {
	var st Stats
	out := make([]table.Record, 0, len(raw.Records))
	for _, r := range raw.Records {
		if r.HasError {
			st.Dropped++
			continue
		}
		cell := r.Fields[raw.Index.Start]
		r.StartTime = nil
		switch {
		case table.IsNull(cell):
			st.Missing++
		default:
			if ts, ok := c.parse(cell); ok {
				r.StartTime = &ts
			} else {
				st.BadTimestamps++
			}
		}
		out = append(out, r)
	}
	return raw.WithRecords(out), st
}

// Clean runs a default Cleaner over raw
func Clean(raw table.Table) table.Table {
	t, _ := New().Clean(raw)
	return t
}

func (c *Cleaner) parse(cell string) (time.Time, bool) {
	v := strings.TrimSpace(cell)
	if ts, err := dateparse.ParseIn(v, c.loc); err == nil {
		return ts, true
	}
	if swapped, ok := swapDayMonth(v); ok {
		if ts, err := dateparse.ParseIn(swapped, c.loc); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

var numericDate = regexp.MustCompile(`^(\d{1,2})([/.-])(\d{1,2})([/.-])(\d{2,4})(.*)$`)

// swapDayMonth rewrites a leading d/m/y date as m/d/y when the first number cannot be a month
// month-first stays the default, so 05/01/2021 is still the first of May
func swapDayMonth(v string) (string, bool) {
	m := numericDate.FindStringSubmatch(v)
	if m == nil {
		return "", false
	}
	first, _ := strconv.Atoi(m[1])
	second, _ := strconv.Atoi(m[3])
	if first <= 12 || second < 1 || second > 12 {
		return "", false
	}
	return m[3] + m[2] + m[1] + m[4] + m[5] + m[6], true
}
