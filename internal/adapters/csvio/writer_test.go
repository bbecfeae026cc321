package csvio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"stratsampler/internal/core/clean"
	"stratsampler/internal/core/table"
	perr "stratsampler/internal/platform/errors"
	"stratsampler/internal/platform/testkit"
)

func cleanedTable(t *testing.T) table.Table {
	t.Helper()
	tb, err := NewReader().Read(strings.NewReader(
		"AudioMothCode,Error,Duration,StartDateTime,Site\n" +
			"D1,,120,2021-05-01T03:00:00Z,\"North, upper\"\n" +
			"D1,,90,nonsense,South\n"))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	ts := time.Date(2021, 5, 1, 3, 0, 0, 0, time.UTC)
	tb.Records[0].StartTime = &ts
	return tb
}

func TestWrite_RendersTimestampsAndPassesCellsThrough(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := NewWriter("").Write(&buf, cleanedTable(t)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := "AudioMothCode,Error,Duration,StartDateTime,Site\n" +
		"D1,,120,2021-05-01 03:00:00,\"North, upper\"\n" +
		"D1,,90,,South\n"
	if buf.String() != want {
		t.Fatalf("output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWrite_CustomLayout(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := NewWriter(time.RFC3339).Write(&buf, cleanedTable(t)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	testkit.MustContain(t, buf.String(), "2021-05-01T03:00:00Z")
}

func TestWrite_HeaderOnlyWhenEmpty(t *testing.T) {
	t.Parallel()

	tb := cleanedTable(t).WithRecords(nil)
	var buf bytes.Buffer
	if err := NewWriter("").Write(&buf, tb); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if buf.String() != "AudioMothCode,Error,Duration,StartDateTime,Site\n" {
		t.Fatalf("output = %q", buf.String())
	}
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("boom") }

func TestWrite_PropagatesIOError(t *testing.T) {
	t.Parallel()

	err := NewWriter("").Write(brokenWriter{}, cleanedTable(t))
	if !perr.IsCode(err, perr.ErrorCodeIO) {
		t.Fatalf("err = %v, want io", err)
	}
}

func TestWriteFile_RoundTrip(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "out.csv")
	if err := NewWriter("").WriteFile(out, cleanedTable(t)); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	rows := testkit.ReadCSV(t, out)
	if len(rows) != 3 || rows[1][4] != "North, upper" {
		t.Fatalf("rows = %q", rows)
	}

	entries, err := os.ReadDir(filepath.Dir(out))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestWriteFile_MissingDirectory(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "nope", "out.csv")
	err := NewWriter("").WriteFile(out, cleanedTable(t))
	if err == nil {
		t.Fatal("expected error")
	}
	if perr.CodeOf(err) == perr.ErrorCodeUnknown {
		t.Fatalf("error should be coded: %v", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Fatalf("no output expected, stat err = %v", statErr)
	}
}

func TestWrite_WithIndex(t *testing.T) {
	t.Parallel()

	tb := cleanedTable(t)
	tb = tb.WithRecords([]table.Record{tb.Records[1]})

	var buf bytes.Buffer
	if err := NewWriter("").WithIndex(true).Write(&buf, tb); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := ",AudioMothCode,Error,Duration,StartDateTime,Site\n" +
		"1,D1,,90,,South\n"
	if buf.String() != want {
		t.Fatalf("output = %q, want %q", buf.String(), want)
	}
}

func TestWrite_DefaultKeepsFractionsAndOffsets(t *testing.T) {
	t.Parallel()

	raw, err := NewReader().Read(strings.NewReader(
		"AudioMothCode,Error,Duration,StartDateTime\n" +
			"D1,,120,2021-05-01 10:15:00.123456\n" +
			"D1,,120,2021-05-01T10:15:00+02:00\n" +
			"D1,,120,2021-05-01 10:15:00\n"))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	cleaned, _ := clean.New().Clean(raw)

	var buf bytes.Buffer
	if err := NewWriter("").Write(&buf, cleaned); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := "AudioMothCode,Error,Duration,StartDateTime\n" +
		"D1,,120,2021-05-01 10:15:00.123456\n" +
		"D1,,120,2021-05-01 10:15:00+02:00\n" +
		"D1,,120,2021-05-01 10:15:00\n"
	if buf.String() != want {
		t.Fatalf("output:\n%s\nwant:\n%s", buf.String(), want)
	}
}
