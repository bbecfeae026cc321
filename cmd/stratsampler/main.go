// Command stratsampler draws one random recording per hour of day for every fully covered recorder
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"stratsampler/internal/core/version"
	"stratsampler/internal/modkit"
	"stratsampler/internal/modkit/module"
	"stratsampler/internal/platform/config"
	"stratsampler/internal/platform/config/raw"
	perr "stratsampler/internal/platform/errors"
	"stratsampler/internal/platform/logger"
	"stratsampler/internal/services/sampler/paths"

	samplermod "stratsampler/internal/services/sampler/module"

	"github.com/google/uuid"
)

func main() {
	os.Exit(perr.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)))
}

// run is main without the process exit; stdin is only read in prompt mode
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	root := config.New()
	opts := samplermod.FromConfig(root)

	fs := flag.NewFlagSet("stratsampler", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		fArgs   = fs.Bool("args", opts.UseCLIArgs, "read input and output paths from positional arguments")
		fDebug  = fs.Int("debug", opts.DebugLevel, "verbosity: 0 progress, 1 debug, 2 trace")
		fSeed   = fs.Int64("seed", opts.Seed, "random seed; 0 picks a fresh one")
		fLayout = fs.String("layout", opts.TimeLayout, "Go time layout for StartDateTime in the output; empty keeps fractions and offsets")
		fIndex  = fs.Bool("index", opts.WriteIndex, "write the source row number as a leading unnamed column")
		fVer    = fs.Bool("version", false, "print version and exit")
	)
	fs.Usage = func() {
		_, _ = fmt.Fprintln(fs.Output(), paths.Usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return perr.Wrap(err, perr.ErrorCodeInvalidArgument, "parse flags")
	}
	if *fVer {
		_, _ = fmt.Fprintln(stdout, version.Info())
		return nil
	}

	explicitArgs := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "args" {
			explicitArgs = true
		}
	})
	opts.UseCLIArgs = *fArgs
	if !explicitArgs && fs.NArg() > 0 {
		opts.UseCLIArgs = true
	}
	opts.DebugLevel = *fDebug
	opts.Seed = *fSeed
	opts.TimeLayout = *fLayout
	opts.WriteIndex = *fIndex

	lopts := logger.FromEnv()
	if raw.New().Get("LOG_LEVEL", "") == "" {
		lopts.Level = logger.LevelForDebug(opts.DebugLevel)
	}
	lopts.Writer, lopts.ErrWriter = stdout, stderr
	lopts.StaticFields = map[string]string{"version": version.Info().Version}
	l := logger.New(lopts)

	if err := opts.Validate(); err != nil {
		l.Error().Err(err).Msg("invalid options")
		return err
	}

	p, err := paths.Acquire(paths.Options{UseCLIArgs: opts.UseCLIArgs}, fs.Args(), stdin, stdout)
	if err != nil {
		l.Error().Err(err).Msg("could not determine file paths")
		return err
	}

	ctx := logger.WithRun(context.Background(), uuid.NewString(), p.Input)

	deps := modkit.Deps{Cfg: root, Log: l}
	sm := samplermod.New(deps, opts)
	module.Register(sm.Name(), sm.Ports())

	ports, ok := module.PortsAs[samplermod.Ports](sm.Name())
	if !ok || ports.Runner == nil {
		return perr.Internalf("sampler module registered no runner")
	}
	rep, err := ports.Runner.Process(ctx, p.Input, p.Output)
	if err != nil {
		logger.From(ctx, &l).Error().Err(err).Str("code", perr.CodeOf(err).String()).Msg("sampling failed")
		return err
	}

	logger.From(ctx, &l).Info().
		Int("devices", rep.Devices).
		Int("accepted", rep.DevicesAccepted).
		Int("rows", rep.RowsWritten).
		Msg("done")
	return nil
}
