// ABOUTME: Extraction job configuration loaded from a YAML file
// ABOUTME: Lists ctl/tbl pairs and how their samples are written
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultSampleRate is the rate written into every container when the
// config does not override it.
const DefaultSampleRate = 22050

// Config is the configuration for an extraction run.
type Config struct {
	// Output configures where and what is written.
	Output OutputConfig `yaml:"output"`

	// Decoder configures the AIFC to AIFF step.
	Decoder DecoderConfig `yaml:"decoder"`

	// SampleRate is written into COMM of every container.
	// Default: 22050
	SampleRate float64 `yaml:"sample_rate"`

	// Workers bounds how many samples are converted at once.
	// Default: number of CPUs
	Workers int `yaml:"workers"`

	// Jobs are the bank/sample file pairs to extract.
	Jobs []Job `yaml:"jobs"`
}

// OutputConfig configures output locations.
type OutputConfig struct {
	// Root is the directory job output directories are created under.
	Root string `yaml:"root"`

	// KeepContainers keeps the intermediate .aifc after a successful decode.
	KeepContainers bool `yaml:"keep_containers"`
}

// DecoderConfig selects the decoder. An empty Command decodes in-process.
type DecoderConfig struct {
	// Command is an external decoder invocation. "{in}" and "{out}" are
	// replaced by the .aifc and .aiff paths.
	// Example: ["./aifc_decode", "{in}", "{out}"]
	Command []string `yaml:"command,omitempty"`
}

// Job is one bank file and the sample file its wave tables point into.
type Job struct {
	Name string `yaml:"name"`
	CTL  string `yaml:"ctl"`
	TBL  string `yaml:"tbl"`

	// Out overrides the output directory. Relative paths are under
	// Output.Root. Default: Output.Root/Name
	Out string `yaml:"out,omitempty"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Root: "temp",
		},
		SampleRate: DefaultSampleRate,
		Workers:    runtime.NumCPU(),
	}
}

// LoadFile loads configuration from a file. Relative paths in the file are
// resolved against the file's directory.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.expandVariables()
	cfg.resolvePaths(filepath.Dir(path))

	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	c.Output.Root = expandVars(c.Output.Root)
	for i := range c.Jobs {
		c.Jobs[i].CTL = expandVars(c.Jobs[i].CTL)
		c.Jobs[i].TBL = expandVars(c.Jobs[i].TBL)
		c.Jobs[i].Out = expandVars(c.Jobs[i].Out)
	}
}

func (c *Config) resolvePaths(base string) {
	c.Output.Root = resolve(base, c.Output.Root)
	for i := range c.Jobs {
		c.Jobs[i].CTL = resolve(base, c.Jobs[i].CTL)
		c.Jobs[i].TBL = resolve(base, c.Jobs[i].TBL)
	}
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		return parts[2]
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Jobs) == 0 {
		errs = append(errs, fmt.Errorf("at least one job is required"))
	}
	if c.Output.Root == "" {
		errs = append(errs, fmt.Errorf("output.root is required"))
	}
	if c.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("sample_rate must be positive, got %v", c.SampleRate))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if len(c.Decoder.Command) > 0 && c.Decoder.Command[0] == "" {
		errs = append(errs, fmt.Errorf("decoder.command must name a program"))
	}

	names := make(map[string]bool)
	for i, job := range c.Jobs {
		if job.Name == "" {
			errs = append(errs, fmt.Errorf("jobs[%d].name is required", i))
		} else if names[job.Name] {
			errs = append(errs, fmt.Errorf("jobs[%d]: duplicate name %q", i, job.Name))
		}
		names[job.Name] = true

		if job.CTL == "" {
			errs = append(errs, fmt.Errorf("jobs[%d].ctl is required", i))
		}
		if job.TBL == "" {
			errs = append(errs, fmt.Errorf("jobs[%d].tbl is required", i))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// OutDir returns the directory a job writes its samples to.
func (c *Config) OutDir(job Job) string {
	if job.Out == "" {
		return filepath.Join(c.Output.Root, job.Name)
	}
	return resolve(c.Output.Root, job.Out)
}

// Args returns the external decoder command for one container, or nil when
// decoding in-process.
func (d DecoderConfig) Args(in, out string) []string {
	if len(d.Command) == 0 {
		return nil
	}
	args := make([]string, len(d.Command))
	for i, a := range d.Command {
		a = strings.ReplaceAll(a, "{in}", in)
		args[i] = strings.ReplaceAll(a, "{out}", out)
	}
	return args
}
