package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultTuningConfig(t *testing.T) {
	cfg := DefaultTuningConfig()

	if cfg.SensorMaxRange == nil || *cfg.SensorMaxRange != 25000 {
		t.Errorf("Expected SensorMaxRange 25000, got %v", cfg.SensorMaxRange)
	}
	if cfg.InterceptRootPolicy == nil || *cfg.InterceptRootPolicy != RootPolicyFixedIndex {
		t.Errorf("Expected InterceptRootPolicy %q, got %v", RootPolicyFixedIndex, cfg.InterceptRootPolicy)
	}

	if cfg.GetSearchBeamWidth() != math.Pi/8 {
		t.Errorf("GetSearchBeamWidth() = %f, want π/8", cfg.GetSearchBeamWidth())
	}
	if cfg.GetTrackBeamWidth() != math.Pi/32 {
		t.Errorf("GetTrackBeamWidth() = %f, want π/32", cfg.GetTrackBeamWidth())
	}
	if cfg.GetTickLength() != 1.0/60.0 {
		t.Errorf("GetTickLength() = %f, want 1/60", cfg.GetTickLength())
	}
	if cfg.GetJournalEveryTicks() != 1 {
		t.Errorf("GetJournalEveryTicks() = %d, want 1", cfg.GetJournalEveryTicks())
	}
}

func TestDefaultsFileMatchesBuiltins(t *testing.T) {
	fromFile := MustLoadDefaultConfig()
	builtin := EmptyTuningConfig()

	checks := []struct {
		name      string
		got, want float64
	}{
		{"tick_length", fromFile.GetTickLength(), builtin.GetTickLength()},
		{"sensor_max_range", fromFile.GetSensorMaxRange(), builtin.GetSensorMaxRange()},
		{"search_beam_width", fromFile.GetSearchBeamWidth(), builtin.GetSearchBeamWidth()},
		{"track_beam_width", fromFile.GetTrackBeamWidth(), builtin.GetTrackBeamWidth()},
		{"bearing_noise_factor", fromFile.GetBearingNoiseFactor(), builtin.GetBearingNoiseFactor()},
		{"distance_noise_factor", fromFile.GetDistanceNoiseFactor(), builtin.GetDistanceNoiseFactor()},
		{"velocity_noise_factor", fromFile.GetVelocityNoiseFactor(), builtin.GetVelocityNoiseFactor()},
		{"noise_rng_range", fromFile.GetNoiseRNGRange(), builtin.GetNoiseRNGRange()},
		{"projectile_speed", fromFile.GetProjectileSpeed(), builtin.GetProjectileSpeed()},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 1e-12 {
			t.Errorf("%s: defaults file has %v, built-in default is %v", c.name, c.got, c.want)
		}
	}
	if fromFile.GetInterceptRootPolicy() != builtin.GetInterceptRootPolicy() {
		t.Errorf("intercept_root_policy: defaults file has %q, built-in default is %q",
			fromFile.GetInterceptRootPolicy(), builtin.GetInterceptRootPolicy())
	}
}

func TestLoadTuningConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.json")

	testJSON := `{
  "sensor_max_range": 12000,
  "track_beam_width": 0.05,
  "intercept_root_policy": "earliest_positive"
}`
	if err := os.WriteFile(configPath, []byte(testJSON), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadTuningConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.GetSensorMaxRange() != 12000 {
		t.Errorf("Expected SensorMaxRange 12000, got %f", cfg.GetSensorMaxRange())
	}
	if cfg.GetTrackBeamWidth() != 0.05 {
		t.Errorf("Expected TrackBeamWidth 0.05, got %f", cfg.GetTrackBeamWidth())
	}
	if cfg.GetInterceptRootPolicy() != RootPolicyEarliestPositive {
		t.Errorf("Expected InterceptRootPolicy %q, got %q", RootPolicyEarliestPositive, cfg.GetInterceptRootPolicy())
	}

	// Omitted fields fall back to defaults.
	if cfg.GetSearchBeamWidth() != math.Pi/8 {
		t.Errorf("Expected default SearchBeamWidth, got %f", cfg.GetSearchBeamWidth())
	}
}

func TestLoadTuningConfigMissing(t *testing.T) {
	_, err := LoadTuningConfig("/nonexistent/path/to/config.json")
	if err == nil {
		t.Error("Expected error when loading missing file, got nil")
	}
}

func TestLoadTuningConfigWrongExtension(t *testing.T) {
	_, err := LoadTuningConfig("config.yaml")
	if err == nil {
		t.Error("Expected error for non-json extension, got nil")
	}
}

func TestLoadTuningConfigInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_config.json")

	invalidJSON := `{
  "sensor_max_range": "far"
`
	if err := os.WriteFile(configPath, []byte(invalidJSON), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	_, err := LoadTuningConfig(configPath)
	if err == nil {
		t.Error("Expected error when loading invalid JSON, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *TuningConfig
		wantErr bool
	}{
		{
			name:    "valid config",
			cfg:     DefaultTuningConfig(),
			wantErr: false,
		},
		{
			name:    "empty config is valid",
			cfg:     &TuningConfig{},
			wantErr: false,
		},
		{
			name:    "zero tick length",
			cfg:     &TuningConfig{TickLength: ptrFloat64(0)},
			wantErr: true,
		},
		{
			name:    "NaN sensor range",
			cfg:     &TuningConfig{SensorMaxRange: ptrFloat64(math.NaN())},
			wantErr: true,
		},
		{
			name:    "negative distance noise",
			cfg:     &TuningConfig{DistanceNoiseFactor: ptrFloat64(-1)},
			wantErr: true,
		},
		{
			name:    "search beam wider than a full turn",
			cfg:     &TuningConfig{SearchBeamWidth: ptrFloat64(7)},
			wantErr: true,
		},
		{
			name:    "zero track beam",
			cfg:     &TuningConfig{TrackBeamWidth: ptrFloat64(0)},
			wantErr: true,
		},
		{
			name:    "unknown root policy",
			cfg:     &TuningConfig{InterceptRootPolicy: ptrString("largest")},
			wantErr: true,
		},
		{
			name:    "journal interval below one",
			cfg:     &TuningConfig{JournalEveryTicks: ptrInt(0)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
