// Package paths resolves the input and output file paths from arguments or an interactive prompt
package paths

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	perr "stratsampler/internal/platform/errors"
)

// Usage is printed when argument mode gets the wrong number of paths
const Usage = "usage: stratsampler [flags] <input.csv> <output.csv>"

const (
	promptInput  = "Enter input file path: "
	promptOutput = "Enter output file path: "
)

// Paths is where the run reads from and writes to
type Paths struct {
	Input  string
	Output string
}

// Options selects the acquisition mode
type Options struct {
	UseCLIArgs bool
}

// Acquire returns the two paths; args are positional arguments without the program name
// in and out are only touched in prompt mode
func Acquire(opts Options, args []string, in io.Reader, out io.Writer) (Paths, error) {
	if opts.UseCLIArgs {
		return fromArgs(args)
	}
	return fromPrompt(in, out)
}

func fromArgs(args []string) (Paths, error) {
	if len(args) != 2 {
		return Paths{}, perr.InvalidArgf("%s (got %d path arguments, want 2)", Usage, len(args))
	}
	p := Paths{Input: strings.TrimSpace(args[0]), Output: strings.TrimSpace(args[1])}
	if p.Input == "" || p.Output == "" {
		return Paths{}, perr.InvalidArgf("%s (paths must not be empty)", Usage)
	}
	return p, nil
}

func fromPrompt(in io.Reader, out io.Writer) (Paths, error) {
	if in == nil {
		return Paths{}, perr.InvalidArgf("%s (no input stream to prompt on)", Usage)
	}
	sc := bufio.NewScanner(in)

	ask := func(prompt, field string) (string, error) {
		if out != nil {
			if _, err := fmt.Fprint(out, prompt); err != nil {
				return "", perr.Wrap(err, perr.ErrorCodeIO, "write prompt")
			}
		}
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", perr.Wrap(err, perr.ErrorCodeIO, "read "+field+" path")
			}
			return "", perr.WithField(perr.InvalidArgf("no %s path given", field), field)
		}
		v := strings.TrimSpace(sc.Text())
		if v == "" {
			return "", perr.WithField(perr.InvalidArgf("%s path must not be empty", field), field)
		}
		return v, nil
	}

	input, err := ask(promptInput, "input")
	if err != nil {
		return Paths{}, err
	}
	output, err := ask(promptOutput, "output")
	if err != nil {
		return Paths{}, err
	}
	return Paths{Input: input, Output: output}, nil
}
