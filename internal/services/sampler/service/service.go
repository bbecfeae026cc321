// Package service provides the sampler service implementation
package service

import (
	"context"
	"time"

	perr "stratsampler/internal/platform/errors"
	"stratsampler/internal/platform/logger"
	"stratsampler/internal/services/sampler/domain"
)

// Service drives the cleaner and the per device sampler over one table
type Service struct {
	Reader  domain.TableReader
	Writer  domain.TableWriter
	Cleaner domain.Cleaner
	Sampler domain.Sampler

	log logger.Logger
}

// New constructs the sampler service
func New(
	reader domain.TableReader,
	writer domain.TableWriter,
	cleaner domain.Cleaner,
	sampler domain.Sampler,
	log logger.Logger,
) *Service {
	return &Service{
		Reader:  reader,
		Writer:  writer,
		Cleaner: cleaner,
		Sampler: sampler,
		log:     log.With().Str("component", "sampler").Logger(),
	}
}

var _ domain.RunnerPort = (*Service)(nil)

// Run samples every device of cleaned in first appearance order
// rejected devices are logged and skipped; the output is built once at the end
func (s *Service) Run(ctx context.Context, cleaned domain.Table) (domain.Table, domain.Report) {
	l := logger.From(ctx, &s.log)

	devices := cleaned.Devices()
	rep := domain.Report{Devices: len(devices)}
	l.Debug().Int("devices", len(devices)).Int("rows", cleaned.Len()).Msg("sampling devices")

	groups := make([]domain.Sample, 0, len(devices))
	for _, dev := range devices {
		l.Trace().Str("device", dev).Msg("attempting to sample")
		sample, rej := s.Sampler.SampleDevice(cleaned, dev)
		if rej != nil {
			rep.DevicesRejected++
			l.Info().
				Str("device", dev).
				Int("hour", rej.Hour).
				Int("eligible", rej.Eligible).
				Msgf("skipping device %s: no valid recordings at hour %d", dev, rej.Hour)
			continue
		}
		rep.DevicesAccepted++
		groups = append(groups, sample)
		l.Info().Str("device", dev).Msgf("sampled 24 hours for device %s", dev)
	}

	recs := make([]domain.Record, 0, len(groups)*24)
	for _, g := range groups {
		recs = append(recs, g.Records()...)
	}
	rep.RowsWritten = len(recs)
	return cleaned.WithRecords(recs), rep
}

// Process reads in, cleans, samples and writes the result to out
// nothing is written when reading fails; write failures are returned even though sampling succeeded
func (s *Service) Process(ctx context.Context, in, out string) (domain.Report, error) {
	l := logger.From(ctx, &s.log)
	start := time.Now()

	raw, err := s.Reader.ReadFile(in)
	if err != nil {
		return domain.Report{}, perr.FromFSf(err, "read input %s", in)
	}
	l.Info().Str("path", in).Int("rows", raw.Len()).Int("columns", len(raw.Columns)).Msg("data loaded")

	cleaned, st := s.Cleaner.Clean(raw)
	l.Info().
		Int("rows", cleaned.Len()).
		Int("dropped", st.Dropped).
		Int("missing_start", st.Missing).
		Int("bad_start", st.BadTimestamps).
		Msg("rows cleaned")

	sampled, rep := s.Run(ctx, cleaned)
	rep.RowsRead = raw.Len()
	rep.RowsErroneous = st.Dropped
	rep.BadTimestamps = st.BadTimestamps

	if err := s.Writer.WriteFile(out, sampled); err != nil {
		return rep, perr.FromFSf(err, "write output %s", out)
	}
	l.Info().
		Str("path", out).
		Int("rows", rep.RowsWritten).
		Int("accepted", rep.DevicesAccepted).
		Int("rejected", rep.DevicesRejected).
		Dur("took", time.Since(start)).
		Msg("sample written")
	return rep, nil
}
