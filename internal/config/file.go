package config

import (
	"flag"
	"strings"
	"time"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"

	apperrors "github.com/agbru/bigrsa/internal/errors"
)

// FileConfig mirrors the flags that may be defaulted from a TOML file:
//
//	capacity = 288
//	radix = 10
//	output-radix = 16
//	timeout = "30s"
//	parallel = 4
//	output = "results.msgpack"
//	metrics-file = "bigcalc.prom"
//	verbose = true
type FileConfig struct {
	Capacity    int64  `toml:"capacity"`
	Radix       int64  `toml:"radix"`
	OutputRadix int64  `toml:"output-radix"`
	Timeout     string `toml:"timeout"`
	Parallel    int64  `toml:"parallel"`
	Output      string `toml:"output"`
	MetricsFile string `toml:"metrics-file"`
	Theme       string `toml:"theme"`
	LogFormat   string `toml:"log-format"`
	Verbose     bool   `toml:"verbose"`
	Quiet       bool   `toml:"quiet"`
	NoColor     bool   `toml:"no-color"`

	meta    toml.MetaData
	timeout time.Duration
	ints    map[string]int
}

// LoadFile decodes and checks a TOML config file. Unknown keys are rejected.
func LoadFile(path string) (*FileConfig, error) {
	var fc FileConfig
	meta, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return nil, apperrors.NewConfigError("config file %s: %v", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, apperrors.NewConfigError("config file %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	fc.meta = meta

	fc.ints = make(map[string]int)
	for key, v := range map[string]int64{
		"capacity":     fc.Capacity,
		"radix":        fc.Radix,
		"output-radix": fc.OutputRadix,
		"parallel":     fc.Parallel,
	} {
		if !meta.IsDefined(key) {
			continue
		}
		n, err := safecast.Conv[int](v)
		if err != nil {
			return nil, apperrors.NewConfigError("config file %s: %s: %v", path, key, err)
		}
		fc.ints[key] = n
	}
	if meta.IsDefined("timeout") {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return nil, apperrors.NewConfigError("config file %s: timeout: %v", path, err)
		}
		fc.timeout = d
	}
	return &fc, nil
}

// apply copies every value defined in the file whose flag was not set on the
// command line.
func (fc *FileConfig) apply(c *AppConfig, fs *flag.FlagSet) {
	set := func(key string, flags ...string) bool {
		return fc.meta.IsDefined(key) && !isFlagSetAny(fs, flags...)
	}
	if set("capacity", "capacity") {
		c.Capacity = fc.ints["capacity"]
	}
	if set("radix", "radix") {
		c.InputRadix = fc.ints["radix"]
	}
	if set("output-radix", "output-radix") {
		c.OutputRadix = fc.ints["output-radix"]
	}
	if set("parallel", "parallel", "j") {
		c.Parallelism = fc.ints["parallel"]
	}
	if set("timeout", "timeout") {
		c.Timeout = fc.timeout
	}
	if set("output", "output", "o") {
		c.OutputFile = fc.Output
	}
	if set("metrics-file", "metrics-file") {
		c.MetricsFile = fc.MetricsFile
	}
	if set("log-format", "log-format") {
		c.LogFormat = fc.LogFormat
	}
	if set("theme", "theme") {
		c.Theme = fc.Theme
	}
	if set("verbose", "verbose", "v") {
		c.Verbose = fc.Verbose
	}
	if set("quiet", "quiet", "q") {
		c.Quiet = fc.Quiet
	}
	if set("no-color", "no-color") {
		c.NoColor = fc.NoColor
	}
}
