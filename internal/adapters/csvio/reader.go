package csvio

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	"stratsampler/internal/core/table"
	perr "stratsampler/internal/platform/errors"
	"stratsampler/internal/platform/logger"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Reader loads CSV tables; the zero value is ready to use
type Reader struct{}

// NewReader returns a Reader
func NewReader() *Reader { return &Reader{} }

// ReadFile opens path and reads it as a table
func (r *Reader) ReadFile(path string) (table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return table.Table{}, perr.FromFSf(err, "open input %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logger.Named("csvio").Warn().Err(cerr).Str("path", path).Msg("close input failed")
		}
	}()

	t, err := r.Read(f)
	if err != nil {
		return table.Table{}, perr.WithOp(err, "read "+path)
	}
	return t, nil
}

// Read parses a header row and data rows from src
func (r *Reader) Read(src io.Reader) (table.Table, error) {
	dec := transform.NewReader(src, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	cr := csv.NewReader(dec)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return table.Table{}, perr.InvalidArgf("input has no header row")
		}
		return table.Table{}, wrapCSV(err, "read header")
	}
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = norm.NFC.String(strings.TrimSpace(h))
	}

	idx, missing := table.NewIndex(cols)
	if len(missing) > 0 {
		return table.Table{}, perr.WithField(
			perr.InvalidArgf("input is missing required columns: %s", strings.Join(missing, ", ")),
			missing[0],
		)
	}

	var recs []table.Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return table.Table{}, wrapCSV(err, "read row")
		}
		if len(row) > len(cols) {
			line, _ := cr.FieldPos(0)
			return table.Table{}, perr.InvalidArgf(
				"line %d: expected %d fields, saw %d", line, len(cols), len(row))
		}
		if len(row) < len(cols) {
			row = append(row, make([]string, len(cols)-len(row))...)
		}
		rec := table.NewRecord(row, idx)
		rec.Row = len(recs)
		recs = append(recs, rec)
	}

	return table.Table{Columns: cols, Index: idx, Records: recs}, nil
}

// wrapCSV maps csv parse failures to invalid input and anything else to io
func wrapCSV(err error, msg string) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return perr.Wrap(err, perr.ErrorCodeInvalidArgument, "malformed csv: "+msg)
	}
	return perr.FromFS(err, msg)
}
