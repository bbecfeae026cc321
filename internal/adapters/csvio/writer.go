package csvio

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"stratsampler/internal/core/table"
	perr "stratsampler/internal/platform/errors"
	"stratsampler/internal/platform/logger"
	ptime "stratsampler/internal/platform/time"
)

// Writer writes cleaned tables; StartDateTime is rendered from the typed timestamp
type Writer struct {
	layout string
	index  bool
}

// NewWriter returns a Writer rendering StartDateTime with layout
// an empty layout keeps full precision: fractional seconds and offsets survive
func NewWriter(layout string) *Writer {
	return &Writer{layout: layout}
}

// WithIndex toggles a leading unnamed column holding each record's source row number
func (w *Writer) WithIndex(on bool) *Writer {
	w.index = on
	return w
}

// Write renders the header and every record of t to dst
func (w *Writer) Write(dst io.Writer, t table.Table) error {
	cw := csv.NewWriter(dst)

	off := 0
	if w.index {
		off = 1
	}
	row := make([]string, off+len(t.Columns))
	copy(row[off:], t.Columns)
	if err := cw.Write(row); err != nil {
		return perr.Wrap(err, perr.ErrorCodeIO, "write header")
	}
	for _, r := range t.Records {
		if w.index {
			row[0] = strconv.Itoa(r.Row)
		}
		copy(row[off:], r.Fields)
		row[off+t.Index.Start] = w.stamp(r)
		if err := cw.Write(row); err != nil {
			return perr.Wrap(err, perr.ErrorCodeIO, "write row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return perr.Wrap(err, perr.ErrorCodeIO, "flush csv")
	}
	return nil
}

func (w *Writer) stamp(r table.Record) string {
	if w.layout == "" {
		return ptime.FormatPrecise(r.StartTime)
	}
	return ptime.Format(r.StartTime, w.layout)
}

// WriteFile writes t to path via a temp file and rename
func (w *Writer) WriteFile(path string, t table.Table) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".stratsampler-*.csv")
	if err != nil {
		return perr.FromFSf(err, "create output in %s", dir)
	}
	defer func() {
		if err == nil {
			return
		}
		_ = tmp.Close()
		if rerr := os.Remove(tmp.Name()); rerr != nil && !os.IsNotExist(rerr) {
			logger.Named("csvio").Warn().Err(rerr).Str("tmp", tmp.Name()).Msg("remove temp output failed")
		}
	}()

	if err = w.Write(tmp, t); err != nil {
		return perr.WithOp(err, "write "+path)
	}
	if err = tmp.Chmod(0o644); err != nil {
		return perr.FromFSf(err, "chmod output %s", path)
	}
	if err = tmp.Close(); err != nil {
		return perr.FromFSf(err, "close output %s", path)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return perr.FromFSf(err, "move output into %s", path)
	}
	return nil
}
