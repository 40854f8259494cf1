// Package config handles renderer configuration loading and management.
package config

// Config holds all render settings.
type Config struct {
	Render     RenderConfig     `yaml:"render"`
	Camera     CameraConfig     `yaml:"camera"`
	Sun        SunConfig        `yaml:"sun"`
	Atmosphere AtmosphereConfig `yaml:"atmosphere"`
	Textures   TexturesConfig   `yaml:"textures"`
	Web        WebConfig        `yaml:"web"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// RenderConfig holds image dimensions and parallelism settings.
type RenderConfig struct {
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	TileSize       int     `yaml:"tile_size"`
	SamplesPerSide int     `yaml:"samples_per_side"` // NxN supersampling
	Workers        int     `yaml:"workers"`          // 0 means one per CPU
	Gamma          float64 `yaml:"gamma"`
	Output         string  `yaml:"output"`    // PNG output path
	FloatMap       string  `yaml:"float_map"` // optional HDR dump (.pfm or .pfm.gz)
}

// CameraConfig holds the orbital viewpoint.
type CameraConfig struct {
	LatDeg   float64 `yaml:"lat_deg"`
	LonDeg   float64 `yaml:"lon_deg"`
	Altitude float64 `yaml:"altitude"` // above the surface, in scene units
	FOVDeg   float64 `yaml:"fov_deg"`
}

// SunConfig holds the sun position.
type SunConfig struct {
	LatDeg       float64 `yaml:"lat_deg"`
	LonDeg       float64 `yaml:"lon_deg"`
	RotationRate float64 `yaml:"rotation_rate"` // rad/s about the polar axis, for animation
}

// AtmosphereConfig holds the scattering parameters. Zero values fall back to
// the model defaults.
type AtmosphereConfig struct {
	Radius        float64    `yaml:"radius"`
	RayleighCoeff [3]float64 `yaml:"rayleigh_coeff"` // per-channel, RGB
	MieCoeff      float64    `yaml:"mie_coeff"`
	SunIntensity  float64    `yaml:"sun_intensity"`
}

// TexturesConfig holds optional texture file paths. Empty paths fall back to
// flat procedural colors.
type TexturesConfig struct {
	Day          string  `yaml:"day"`
	Night        string  `yaml:"night"`
	OceanMask    string  `yaml:"ocean_mask"`
	Clouds       string  `yaml:"clouds"`
	CloudOpacity float64 `yaml:"cloud_opacity"`
}

// WebConfig holds the preview server settings.
type WebConfig struct {
	Addr string `yaml:"addr"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Width:          800,
			Height:         600,
			TileSize:       64,
			SamplesPerSide: 2,
			Workers:        0,
			Gamma:          2.0,
			Output:         "render.png",
			FloatMap:       "",
		},
		Camera: CameraConfig{
			LatDeg:   0,
			LonDeg:   45,
			Altitude: 8600,
			FOVDeg:   60,
		},
		Sun: SunConfig{
			LatDeg:       20,
			LonDeg:       60,
			RotationRate: 0.07,
		},
		Atmosphere: AtmosphereConfig{
			Radius:        7000,
			RayleighCoeff: [3]float64{5.5e-6, 1.3e-5, 2.24e-5},
			MieCoeff:      1.2e-4,
			SunIntensity:  22,
		},
		Textures: TexturesConfig{
			CloudOpacity: 0.7,
		},
		Web: WebConfig{
			Addr: ":8080",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
