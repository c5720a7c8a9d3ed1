package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"pinsc/common"
	"pinsc/report"
	"strings"

	"github.com/pelletier/go-toml"
)

// Config is the run configuration of the compiler.  It is loaded from an
// optional `pins.toml` file and can then be overridden from the command line.
type Config struct {
	// The path to the file the configuration was loaded from.  This is empty
	// if no file was found.
	Path string

	// The size of the interpreter's memory in bytes.
	MemorySize int

	// The initial seed of the random number generator.  If it is nil, the
	// generator is seeded from the current time.
	Seed *int64

	// The name of the selected log level.
	LogLevel string

	// The phases whose output should be dumped, in the order given.
	DumpPhases []string
}

// Enumeration of the phases whose output can be dumped.
const (
	DumpAST    = "ast"
	DumpTypes  = "types"
	DumpFrames = "frames"
	DumpIR     = "ir"
	DumpLinear = "lin"
)

var dumpPhases = map[string]struct{}{
	DumpAST:    {},
	DumpTypes:  {},
	DumpFrames: {},
	DumpIR:     {},
	DumpLinear: {},
}

// Default returns the configuration used when there is no `pins.toml`.
func Default() *Config {
	return &Config{
		MemorySize: common.DefaultMemorySize,
		LogLevel:   "verbose",
	}
}

// tomlConfigFile represents the configuration file as it is encoded in TOML.
type tomlConfigFile struct {
	Run  tomlRun  `toml:"run"`
	Dump tomlDump `toml:"dump"`
}

type tomlRun struct {
	MemorySize int    `toml:"memory-size"`
	Seed       int64  `toml:"seed"`
	LogLevel   string `toml:"log-level"`
}

type tomlDump struct {
	Phases []string `toml:"phases"`
}

// tomlFields lists the fields each table of the configuration file may have.
var tomlFields = map[string]map[string]struct{}{
	"run":  {"memory-size": {}, "seed": {}, "log-level": {}},
	"dump": {"phases": {}},
}

// Parse decodes and validates a configuration file.  Values the file does not
// set keep their defaults.
func Parse(buff []byte) (*Config, error) {
	tree, err := toml.LoadBytes(buff)
	if err != nil {
		return nil, configError("%s", err)
	}

	for _, table := range tree.Keys() {
		fields, ok := tomlFields[table]
		if !ok {
			return nil, configError("unknown table `%s`", table)
		}

		subtree, ok := tree.Get(table).(*toml.Tree)
		if !ok {
			return nil, configError("`%s` must be a table", table)
		}

		for _, key := range subtree.Keys() {
			if _, ok := fields[key]; !ok {
				return nil, configError("unknown field `%s` in table `%s`", key, table)
			}
		}
	}

	tcf := &tomlConfigFile{}
	if err := tree.Unmarshal(tcf); err != nil {
		return nil, configError("%s", err)
	}

	conf := Default()

	// the zero values of these fields are meaningful so they are only applied
	// when they are actually present
	if tree.Has("run.memory-size") {
		conf.MemorySize = tcf.Run.MemorySize
	}

	if tree.Has("run.seed") {
		seed := tcf.Run.Seed
		conf.Seed = &seed
	}

	if tcf.Run.LogLevel != "" {
		conf.LogLevel = tcf.Run.LogLevel
	}

	conf.DumpPhases = tcf.Dump.Phases

	if err := conf.Validate(); err != nil {
		return nil, err
	}

	return conf, nil
}

// Load loads the configuration file at the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, configError("%s", err)
	}
	defer f.Close()

	buff, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, configError("%s", err)
	}

	conf, err := Parse(buff)
	if err != nil {
		if cerr, ok := err.(*report.CompileError); ok {
			cerr.Message = fmt.Sprintf("%s: %s", path, cerr.Message)
		}

		return nil, err
	}

	conf.Path = path
	return conf, nil
}

// Find searches for a configuration file in dir and each of its parent
// directories.  It returns the path to the closest file found.
func Find(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}

	for {
		path := filepath.Join(dir, common.PinsConfigFileName)
		if finfo, err := os.Stat(path); err == nil && !finfo.IsDir() {
			return path, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}

		dir = parent
	}
}

// LoadFor loads the configuration that applies to the given source file: the
// closest `pins.toml` above it or the default configuration if there is none.
func LoadFor(srcPath string) (*Config, error) {
	if path, ok := Find(filepath.Dir(srcPath)); ok {
		return Load(path)
	}

	return Default(), nil
}

// -----------------------------------------------------------------------------

// Validate checks that every field of the configuration is valid.
func (c *Config) Validate() error {
	if c.MemorySize <= 0 || c.MemorySize%common.WordSize != 0 {
		return configError("memory size must be a positive multiple of %d bytes", common.WordSize)
	}

	if c.MemorySize < common.MinMemorySize {
		return configError("memory size must be at least %d bytes", common.MinMemorySize)
	}

	if c.MemorySize > common.MaxMemorySize {
		return configError("memory size must be at most %d bytes", common.MaxMemorySize)
	}

	if _, ok := report.LogLevelNames[c.LogLevel]; !ok {
		return configError("unknown log level `%s`", c.LogLevel)
	}

	for _, phase := range c.DumpPhases {
		if _, ok := dumpPhases[phase]; !ok {
			return configError("unknown dump phase `%s`", phase)
		}
	}

	return nil
}

// Dumps returns whether the output of the given phase should be dumped.
func (c *Config) Dumps(phase string) bool {
	for _, p := range c.DumpPhases {
		if p == phase {
			return true
		}
	}

	return false
}

// ParseDumpPhases splits a comma separated list of phase names.
func ParseDumpPhases(list string) []string {
	var phases []string
	for _, phase := range strings.Split(list, ",") {
		if phase = strings.TrimSpace(phase); phase != "" {
			phases = append(phases, phase)
		}
	}

	return phases
}

func configError(msg string, args ...interface{}) error {
	return report.Raise(report.ConfigError, nil, msg, args...)
}
