package main

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/tuneinsight/legendre/legendre"
)

// Config is the run configuration of the driver. Every field can be set from the command line
// or from a YAML file given with --config; explicit flags take precedence over the file.
type Config struct {
	legendre.ParametersLiteral `yaml:",inline"`

	Function string `yaml:"function"`
	Samples  int    `yaml:"samples"`
	Seed     string `yaml:"seed"`
	Debug    bool   `yaml:"debug"`
}

// DefaultConfig is the configuration of the default run: 11 basis functions on [-pi, pi]
// with 100 subintervals.
func DefaultConfig() Config {
	return Config{
		ParametersLiteral: legendre.ParametersLiteral{
			Count: 11,
			N:     100,
			A:     -math.Pi,
			B:     math.Pi,
		},
		Function: "sin",
		Samples:  21,
		Seed:     appName,
	}
}

// LoadConfig reads a YAML configuration file on top of cfg.
func LoadConfig(path string, cfg *Config) (err error) {

	var data []byte
	if data, err = os.ReadFile(path); err != nil {
		return fmt.Errorf("cannot LoadConfig: %w", err)
	}

	if err = yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("cannot LoadConfig: %s: %w", path, err)
	}

	return
}

// applyConfigFile loads the --config file, if any, without overriding the flags set explicitly.
func applyConfigFile(cmd *cobra.Command, path string, cfg *Config) (err error) {

	if path == "" {
		return
	}

	changed := map[string]string{}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		changed[f.Name] = f.Value.String()
	})

	if err = LoadConfig(path, cfg); err != nil {
		return
	}

	for name, value := range changed {
		if err = cmd.Flags().Set(name, value); err != nil {
			return fmt.Errorf("cannot re-apply flag --%s: %w", name, err)
		}
	}

	return
}

// realValue is a float64 flag that also accepts multiples of pi, e.g. "pi", "-pi", "2pi" or "0.5*pi".
type realValue float64

func newRealValue(val float64, p *float64) *realValue {
	*p = val
	return (*realValue)(p)
}

func (r *realValue) Set(s string) (err error) {
	var v float64
	if v, err = parseReal(s); err != nil {
		return
	}
	*r = realValue(v)
	return
}

func (r *realValue) String() string {
	return strconv.FormatFloat(float64(*r), 'g', -1, 64)
}

func (r *realValue) Type() string {
	return "real"
}

func parseReal(s string) (float64, error) {

	s = strings.ToLower(strings.TrimSpace(s))

	if !strings.HasSuffix(s, "pi") {
		return strconv.ParseFloat(s, 64)
	}

	factor := strings.TrimSuffix(strings.TrimSuffix(s, "pi"), "*")

	switch factor {
	case "", "+":
		return math.Pi, nil
	case "-":
		return -math.Pi, nil
	}

	f, err := strconv.ParseFloat(factor, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid real %q: %w", s, err)
	}

	return f * math.Pi, nil
}
