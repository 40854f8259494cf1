package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Render.Width != 800 {
		t.Errorf("expected width 800, got %d", cfg.Render.Width)
	}
	if cfg.Render.Height != 600 {
		t.Errorf("expected height 600, got %d", cfg.Render.Height)
	}
	if cfg.Render.TileSize != 64 {
		t.Errorf("expected tile size 64, got %d", cfg.Render.TileSize)
	}
	if cfg.Render.SamplesPerSide != 2 {
		t.Errorf("expected 2 samples per side, got %d", cfg.Render.SamplesPerSide)
	}
	if cfg.Render.Output != "render.png" {
		t.Errorf("expected output render.png, got %s", cfg.Render.Output)
	}

	if cfg.Camera.FOVDeg != 60 {
		t.Errorf("expected fov 60, got %f", cfg.Camera.FOVDeg)
	}
	if cfg.Camera.Altitude != 8600 {
		t.Errorf("expected altitude 8600, got %f", cfg.Camera.Altitude)
	}

	if cfg.Atmosphere.Radius != 7000 {
		t.Errorf("expected atmosphere radius 7000, got %f", cfg.Atmosphere.Radius)
	}
	if cfg.Atmosphere.SunIntensity != 22 {
		t.Errorf("expected sun intensity 22, got %f", cfg.Atmosphere.SunIntensity)
	}
	if cfg.Atmosphere.RayleighCoeff[2] != 2.24e-5 {
		t.Errorf("expected blue Rayleigh coefficient 2.24e-5, got %g", cfg.Atmosphere.RayleighCoeff[2])
	}

	if cfg.Sun.RotationRate != 0.07 {
		t.Errorf("expected rotation rate 0.07, got %f", cfg.Sun.RotationRate)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Web.Addr != ":8080" {
		t.Errorf("expected web addr :8080, got %s", cfg.Web.Addr)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
render:
  width: 1920
  height: 1080
  samples_per_side: 3
  output: "frame.png"
  float_map: "frame.pfm.gz"

camera:
  lat_deg: 35.6
  lon_deg: 139.7
  altitude: 12000
  fov_deg: 45

sun:
  lat_deg: -10
  lon_deg: 80

atmosphere:
  radius: 7100
  rayleigh_coeff: [6.0e-6, 1.4e-5, 2.5e-5]
  mie_coeff: 2.0e-4
  sun_intensity: 18

textures:
  day: "earth_day.jpg"
  clouds: "clouds.png"
  cloud_opacity: 0.5

logging:
  level: "debug"
  log_file: "render.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Render.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Render.Width)
	}
	if cfg.Render.SamplesPerSide != 3 {
		t.Errorf("expected 3 samples per side, got %d", cfg.Render.SamplesPerSide)
	}
	if cfg.Render.FloatMap != "frame.pfm.gz" {
		t.Errorf("expected float map frame.pfm.gz, got %s", cfg.Render.FloatMap)
	}

	// Unset file values keep their defaults
	if cfg.Render.TileSize != 64 {
		t.Errorf("expected default tile size 64, got %d", cfg.Render.TileSize)
	}

	if cfg.Camera.LatDeg != 35.6 {
		t.Errorf("expected camera lat 35.6, got %f", cfg.Camera.LatDeg)
	}
	if cfg.Sun.LonDeg != 80 {
		t.Errorf("expected sun lon 80, got %f", cfg.Sun.LonDeg)
	}

	if cfg.Atmosphere.Radius != 7100 {
		t.Errorf("expected atmosphere radius 7100, got %f", cfg.Atmosphere.Radius)
	}
	if cfg.Atmosphere.RayleighCoeff[0] != 6.0e-6 {
		t.Errorf("expected red Rayleigh coefficient 6.0e-6, got %g", cfg.Atmosphere.RayleighCoeff[0])
	}
	if cfg.Atmosphere.MieCoeff != 2.0e-4 {
		t.Errorf("expected Mie coefficient 2.0e-4, got %g", cfg.Atmosphere.MieCoeff)
	}

	if cfg.Textures.Day != "earth_day.jpg" {
		t.Errorf("expected day texture earth_day.jpg, got %s", cfg.Textures.Day)
	}
	if cfg.Textures.CloudOpacity != 0.5 {
		t.Errorf("expected cloud opacity 0.5, got %f", cfg.Textures.CloudOpacity)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
render:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "dimensions",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Render.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Render.Width)
				}
				if cfg.Render.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Render.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "output paths",
			setup: func() {
				*flagOutput = "out.png"
				*flagFloatMap = "out.pfm.gz"
			},
			verify: func(cfg *Config) {
				if cfg.Render.Output != "out.png" {
					t.Errorf("expected output out.png, got %s", cfg.Render.Output)
				}
				if cfg.Render.FloatMap != "out.pfm.gz" {
					t.Errorf("expected float map out.pfm.gz, got %s", cfg.Render.FloatMap)
				}
			},
			teardown: func() {
				*flagOutput = ""
				*flagFloatMap = ""
			},
		},
		{
			name: "explicit zero latitude overrides default",
			setup: func() {
				*flagSunLat = 0
				cameraFlagsSet = map[string]bool{"sun-lat": true}
			},
			verify: func(cfg *Config) {
				if cfg.Sun.LatDeg != 0 {
					t.Errorf("expected sun lat 0 from flag, got %f", cfg.Sun.LatDeg)
				}
			},
			teardown: func() {
				cameraFlagsSet = nil
			},
		},
		{
			name: "unset angle flags keep defaults",
			setup: func() {
				cameraFlagsSet = nil
			},
			verify: func(cfg *Config) {
				if cfg.Camera.LonDeg != 45 {
					t.Errorf("expected default camera lon 45, got %f", cfg.Camera.LonDeg)
				}
				if cfg.Sun.LatDeg != 20 {
					t.Errorf("expected default sun lat 20, got %f", cfg.Sun.LatDeg)
				}
			},
			teardown: func() {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
render:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width from flag, height from file
	if cfg.Render.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Render.Width)
	}
	if cfg.Render.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Render.Height)
	}
}

func TestSaveRoundtrip(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := Default()
	cfg.Render.Width = 1024
	cfg.Camera.LatDeg = -33.9

	if err := Save(cfg, configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, configPath); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}

	if loaded.Render.Width != 1024 {
		t.Errorf("expected width 1024 after roundtrip, got %d", loaded.Render.Width)
	}
	if loaded.Camera.LatDeg != -33.9 {
		t.Errorf("expected camera lat -33.9 after roundtrip, got %f", loaded.Camera.LatDeg)
	}
}
