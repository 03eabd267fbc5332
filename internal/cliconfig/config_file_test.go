package cliconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestApplyFileConfig(t *testing.T) {
	trueVal := true
	falseVal := false

	tests := []struct {
		name       string
		fileConfig FileConfig
		changed    map[string]bool
		initial    Config
		expected   Config
		wantErr    bool
	}{
		{
			name: "applies all valid config values",
			fileConfig: FileConfig{
				Inputs:          []string{"run1_a.raw", "run1_b.raw"},
				SecondaryInputs: []string{"run1_c.raw"},
				OutputDir:       "/out",
				StateDir:        "/state",
				FEDID:           1400,
				FEDID2:          1401,
				VerifyChecksum:  &falseVal,
				VerifyAdler32:   &falseVal,
				UseL1EventID:    &trueVal,
				RunNumber:       345678,
				MaxEvents:       100,
				FollowDir:       "/in",
				FollowPattern:   "run*.raw",
				LogLevel:        "debug",
				LogFormat:       "json",
			},
			changed: map[string]bool{},
			initial: DefaultConfig(),
			expected: Config{
				Inputs:          []string{"run1_a.raw", "run1_b.raw"},
				SecondaryInputs: []string{"run1_c.raw"},
				OutputDir:       "/out",
				StateDir:        "/state",
				FEDID:           1400,
				FEDID2:          1401,
				UseL1EventID:    true,
				RunNumber:       345678,
				MaxEvents:       100,
				FollowDir:       "/in",
				FollowPattern:   "run*.raw",
				LogLevel:        "debug",
				LogFormat:       "json",
			},
		},
		{
			name: "respects changed flags",
			fileConfig: FileConfig{
				Inputs:    []string{"file.raw"},
				OutputDir: "/file/out",
			},
			changed: map[string]bool{"input": true},
			initial: Config{Inputs: []string{"flag.raw"}},
			expected: Config{
				Inputs:    []string{"flag.raw"}, // unchanged because flag was set
				OutputDir: "/file/out",
			},
		},
		{
			name:       "unset values keep defaults",
			fileConfig: FileConfig{},
			changed:    map[string]bool{},
			initial:    DefaultConfig(),
			expected:   DefaultConfig(),
		},
		{
			name:       "fed id out of range",
			fileConfig: FileConfig{FEDID: 1 << 16},
			changed:    map[string]bool{},
			wantErr:    true,
		},
		{
			name:       "run number out of range",
			fileConfig: FileConfig{RunNumber: 1 << 32},
			changed:    map[string]bool{},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			err := ApplyFileConfig(&cfg, tt.fileConfig, tt.changed)

			if tt.wantErr && err == nil {
				t.Error("ApplyFileConfig() expected error but got nil")
				return
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ApplyFileConfig() unexpected error: %v", err)
				return
			}
			if !tt.wantErr {
				checkConfig(t, cfg, tt.expected)
			}
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.toml")

	tomlContent := `
inputs = ["/data/run1_ls0001.raw", "/data/run1_ls0002.raw"]
output_dir = "/tmp/out"
fed_id = 1477
verify_adler32 = false
run_number = 42
log_format = "json"
`

	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	fc, err := LoadFileConfig(configPath)
	if err != nil {
		t.Fatalf("LoadFileConfig() error = %v", err)
	}

	if len(fc.Inputs) != 2 || fc.Inputs[1] != "/data/run1_ls0002.raw" {
		t.Errorf("Inputs = %v", fc.Inputs)
	}
	if fc.OutputDir != "/tmp/out" {
		t.Errorf("OutputDir = %v, want /tmp/out", fc.OutputDir)
	}
	if fc.FEDID != 1477 {
		t.Errorf("FEDID = %v, want 1477", fc.FEDID)
	}
	if fc.VerifyAdler32 == nil || *fc.VerifyAdler32 {
		t.Errorf("VerifyAdler32 = %v, want false", fc.VerifyAdler32)
	}
	if fc.VerifyChecksum != nil {
		t.Errorf("VerifyChecksum = %v, want unset", *fc.VerifyChecksum)
	}
	if fc.RunNumber != 42 || fc.LogFormat != "json" {
		t.Errorf("RunNumber = %v, LogFormat = %v", fc.RunNumber, fc.LogFormat)
	}
}

func TestLoadFileConfig_InvalidFile(t *testing.T) {
	_, err := LoadFileConfig("/nonexistent/path/config.toml")
	if err == nil {
		t.Error("LoadFileConfig() expected error for nonexistent file")
	}
}

func TestLoadFileConfig_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.toml")

	invalidContent := `
inputs = ["/test"]
this is not valid toml
`

	if err := os.WriteFile(configPath, []byte(invalidContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	_, err := LoadFileConfig(configPath)
	if err == nil {
		t.Error("LoadFileConfig() expected error for invalid TOML")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()

	if path != "" && !strings.Contains(path, ".frdsource") {
		t.Errorf("DefaultConfigPath() = %v, should contain .frdsource", path)
	}
}

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	existingFile := filepath.Join(tmpDir, "exists.txt")

	if err := os.WriteFile(existingFile, []byte("test"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if !FileExists(existingFile) {
		t.Error("FileExists() = false, want true for existing file")
	}

	if FileExists(filepath.Join(tmpDir, "nonexistent.txt")) {
		t.Error("FileExists() = true, want false for nonexistent file")
	}
}
