package module

import (
	"stratsampler/internal/platform/config"
	"stratsampler/internal/platform/validate"
)

// Options holds configuration for one sampling run
// env tags name the variables in validation messages
// an empty TimeLayout keeps sub-second precision and offsets in StartDateTime
type Options struct {
	DebugLevel int    `env:"SAMPLER_DEBUG_LEVEL" validate:"min=0,max=2"`
	UseCLIArgs bool   `env:"SAMPLER_USE_CLI_ARGS"`
	Seed       int64  `env:"SAMPLER_SEED"`
	TimeLayout string `env:"SAMPLER_TIME_LAYOUT" validate:"omitempty,time_layout"`
	WriteIndex bool   `env:"SAMPLER_WRITE_INDEX"`
}

// FromConfig reads the sampler options from config with SAMPLER_ prefix
func FromConfig(cfg config.Conf) Options {
	sc := cfg.Prefix("SAMPLER_")
	return Options{
		DebugLevel: sc.MayInt("DEBUG_LEVEL", 0),
		UseCLIArgs: sc.MayBool("USE_CLI_ARGS", false),
		Seed:       sc.MayInt64("SEED", 0),
		TimeLayout: sc.MayString("TIME_LAYOUT", ""),
		WriteIndex: sc.MayBool("WRITE_INDEX", false),
	}
}

// Validate checks the option ranges
func (o Options) Validate() error { return validate.Struct(o) }
