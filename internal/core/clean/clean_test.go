package clean

import (
	"reflect"
	"testing"
	"time"

	"stratsampler/internal/core/table"
)

var header = []string{table.ColDevice, table.ColError, table.ColDuration, table.ColStart, "Site"}

func mkTable(t *testing.T, rows ...[]string) table.Table {
	t.Helper()
	idx, missing := table.NewIndex(header)
	if len(missing) != 0 {
		t.Fatalf("bad fixture header: %v", missing)
	}
	recs := make([]table.Record, 0, len(rows))
	for _, r := range rows {
		recs = append(recs, table.NewRecord(r, idx))
	}
	return table.Table{Columns: header, Index: idx, Records: recs}
}

func TestClean_DropsErroneousRows(t *testing.T) {
	raw := mkTable(t,
		[]string{"D1", "", "120", "2021-05-01 00:10:00", "north"},
		[]string{"D1", "ERR_SD", "120", "2021-05-01 01:10:00", "north"},
		[]string{"D1", "NaN", "120", "2021-05-01 02:10:00", "north"},
		[]string{"D2", "0", "120", "2021-05-01 03:10:00", "south"},
	)

	got, st := New().Clean(raw)
	if got.Len() != 2 {
		t.Fatalf("Len = %d, want 2", got.Len())
	}
	if st.Dropped != 2 {
		t.Fatalf("Dropped = %d, want 2", st.Dropped)
	}
	for _, r := range got.Records {
		if r.HasError {
			t.Fatalf("erroneous row survived: %+v", r)
		}
	}
	if got.Len() > raw.Len() {
		t.Fatalf("cleaning must never add rows")
	}
	if !reflect.DeepEqual(got.Columns, raw.Columns) {
		t.Fatalf("columns changed")
	}
}

func TestClean_NoErrorsKeepsEveryRow(t *testing.T) {
	raw := mkTable(t,
		[]string{"D1", "", "120", "2021-05-01 00:10:00", "a"},
		[]string{"D1", "NA", "30", "garbage", "b"},
	)
	got := Clean(raw)
	if got.Len() != raw.Len() {
		t.Fatalf("Len = %d, want %d", got.Len(), raw.Len())
	}
}

func TestClean_TimestampParsing(t *testing.T) {
	raw := mkTable(t,
		[]string{"D1", "", "120", "2021-05-01 13:45:00", ""},
		[]string{"D1", "", "120", "05/01/2021 07:05", ""},
		[]string{"D1", "", "120", "2021-05-01T22:00:00+12:00", ""},
		[]string{"D1", "", "120", "not a date", ""},
		[]string{"D1", "", "120", "", ""},
	)

	got, st := New().Clean(raw)
	wantHours := []struct {
		hour int
		ok   bool
	}{
		{13, true},
		{7, true},
		{22, true}, // hour as encoded, offset kept
		{0, false},
		{0, false},
	}
	for i, w := range wantHours {
		h, ok := got.Records[i].Hour()
		if ok != w.ok || (ok && h != w.hour) {
			t.Fatalf("row %d: Hour = (%d,%v), want (%d,%v)", i, h, ok, w.hour, w.ok)
		}
	}
	if st.BadTimestamps != 1 || st.Missing != 1 {
		t.Fatalf("stats = %+v", st)
	}
	// unparseable rows are retained, not dropped
	if got.Len() != 5 {
		t.Fatalf("Len = %d, want 5", got.Len())
	}
}

func TestClean_Idempotent(t *testing.T) {
	raw := mkTable(t,
		[]string{"D1", "", "120", "2021-05-01 13:45:00", "x"},
		[]string{"D1", "E", "120", "2021-05-01 14:45:00", "x"},
		[]string{"D2", "", "20", "bogus", "y"},
		[]string{"NA", "", "200", "2021-05-02 01:00:00", "z"},
	)
	once := Clean(raw)
	twice := Clean(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("Clean is not a fixed point:\n once=%+v\ntwice=%+v", once, twice)
	}
}

func TestClean_DoesNotMutateInput(t *testing.T) {
	raw := mkTable(t, []string{"D1", "", "120", "2021-05-01 13:45:00", "x"})
	_ = Clean(raw)
	if raw.Records[0].StartTime != nil {
		t.Fatalf("input record was mutated")
	}
}

func TestClean_DayFirstFallback(t *testing.T) {
	raw := mkTable(t,
		[]string{"D1", "", "120", "13/05/2021 10:00", ""},
		[]string{"D1", "", "120", "31/12/2021 23:59:00", ""},
		[]string{"D1", "", "120", "05/01/2021 07:05", ""},
		[]string{"D1", "", "120", "13/13/2021 10:00", ""},
	)
	got, st := New().Clean(raw)

	want := []*time.Time{
		ptr(time.Date(2021, 5, 13, 10, 0, 0, 0, time.UTC)),
		ptr(time.Date(2021, 12, 31, 23, 59, 0, 0, time.UTC)),
		ptr(time.Date(2021, 5, 1, 7, 5, 0, 0, time.UTC)), // month-first when ambiguous
		nil,
	}
	for i, w := range want {
		g := got.Records[i].StartTime
		switch {
		case w == nil && g != nil:
			t.Fatalf("row %d: StartTime = %v, want nil", i, g)
		case w != nil && (g == nil || !g.Equal(*w)):
			t.Fatalf("row %d: StartTime = %v, want %v", i, g, w)
		}
	}
	if st.BadTimestamps != 1 {
		t.Fatalf("BadTimestamps = %d, want 1", st.BadTimestamps)
	}
}

func TestClean_WhitespaceErrorIsAValue(t *testing.T) {
	raw := mkTable(t,
		[]string{"D1", "  ", "120", "2021-05-01 00:10:00", "blank-but-set"},
		[]string{"D1", "", "120", "2021-05-01 01:10:00", "empty"},
	)
	got, st := New().Clean(raw)
	if st.Dropped != 1 || got.Len() != 1 {
		t.Fatalf("Dropped = %d, Len = %d, want 1 and 1", st.Dropped, got.Len())
	}
	if got.Records[0].Fields[4] != "empty" {
		t.Fatalf("wrong row kept: %v", got.Records[0].Fields)
	}
}

func ptr(t time.Time) *time.Time { return &t }
