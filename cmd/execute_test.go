package cmd

import (
	"os"
	"path/filepath"
	"pinsc/config"
	"pinsc/report"
	"testing"
)

func TestApplyArgs(t *testing.T) {
	conf := config.Default()

	err := applyArgs(conf, map[string]interface{}{
		"memory": "2048",
		"seed":   "-7",
		"dump":   "ir,lin",
	}, "silent")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if conf.MemorySize != 2048 {
		t.Errorf("MemorySize = %d, want 2048", conf.MemorySize)
	}

	if conf.Seed == nil || *conf.Seed != -7 {
		t.Errorf("Seed = %v, want -7", conf.Seed)
	}

	if conf.LogLevel != "silent" {
		t.Errorf("LogLevel = %s, want silent", conf.LogLevel)
	}

	if !conf.Dumps(config.DumpIR) || !conf.Dumps(config.DumpLinear) || conf.Dumps(config.DumpAST) {
		t.Errorf("DumpPhases = %v", conf.DumpPhases)
	}
}

func TestApplyArgsKeepsConfig(t *testing.T) {
	conf := config.Default()
	conf.MemorySize = 4096

	if err := applyArgs(conf, map[string]interface{}{}, ""); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if conf.MemorySize != 4096 || conf.LogLevel != "verbose" || conf.Seed != nil {
		t.Errorf("configuration changed: %+v", conf)
	}
}

func TestApplyArgsErrors(t *testing.T) {
	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"memory not a number", map[string]interface{}{"memory": "lots"}},
		{"memory too small", map[string]interface{}{"memory": "16"}},
		{"memory too large", map[string]interface{}{"memory": "2000000000"}},
		{"seed not a number", map[string]interface{}{"seed": "x"}},
		{"unknown dump phase", map[string]interface{}{"dump": "ast,tokens"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := applyArgs(config.Default(), tt.args, ""); err == nil {
				t.Error("invalid arguments were accepted")
			}
		})
	}

	// values out of range are reported as configuration errors
	err := applyArgs(config.Default(), map[string]interface{}{"memory": "16"}, "")
	if !report.IsKind(err, report.ConfigError) {
		t.Errorf("got error %v, want a config error", err)
	}
}

func TestSourcePath(t *testing.T) {
	dir := t.TempDir()

	src := filepath.Join(dir, "main.pins")
	if err := os.WriteFile(src, []byte("fun main() : integer = 0"), 0644); err != nil {
		t.Fatal(err)
	}

	other := filepath.Join(dir, "main.txt")
	if err := os.WriteFile(other, []byte("fun main() : integer = 0"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := os.Mkdir(filepath.Join(dir, "lib.pins"), 0755); err != nil {
		t.Fatal(err)
	}

	absPath, err := sourcePath(src)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if !filepath.IsAbs(absPath) {
		t.Errorf("%s is not absolute", absPath)
	}

	for _, path := range []string{other, filepath.Join(dir, "missing.pins"), filepath.Join(dir, "lib.pins")} {
		if _, err := sourcePath(path); err == nil {
			t.Errorf("%s was accepted", path)
		}
	}
}
