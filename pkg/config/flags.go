package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagWidth    = flag.Int("width", 0, "Image width")
	flagHeight   = flag.Int("height", 0, "Image height")
	flagSamples  = flag.Int("samples", 0, "Supersampling grid side (N for NxN)")
	flagWorkers  = flag.Int("workers", 0, "Number of render workers")
	flagOutput   = flag.String("output", "", "Output PNG path")
	flagFloatMap = flag.String("floatmap", "", "HDR float map output path (.pfm or .pfm.gz)")
	flagLat      = flag.Float64("lat", 0, "Camera latitude in degrees")
	flagLon      = flag.Float64("lon", 0, "Camera longitude in degrees")
	flagAltitude = flag.Float64("altitude", 0, "Camera altitude above the surface")
	flagSunLat   = flag.Float64("sun-lat", 0, "Sun latitude in degrees")
	flagSunLon   = flag.Float64("sun-lon", 0, "Sun longitude in degrees")
	flagAddr     = flag.String("addr", "", "Web preview listen address")

	cameraFlagsSet map[string]bool
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()

	// Zero is a meaningful value for angles, so remember which flags the
	// user actually passed
	cameraFlagsSet = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		cameraFlagsSet[f.Name] = true
	})
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Render.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Render.Height = *flagHeight
	}
	if *flagSamples > 0 {
		cfg.Render.SamplesPerSide = *flagSamples
	}
	if *flagWorkers > 0 {
		cfg.Render.Workers = *flagWorkers
	}
	if *flagOutput != "" {
		cfg.Render.Output = *flagOutput
	}
	if *flagFloatMap != "" {
		cfg.Render.FloatMap = *flagFloatMap
	}
	if *flagAddr != "" {
		cfg.Web.Addr = *flagAddr
	}

	if cameraFlagsSet["lat"] {
		cfg.Camera.LatDeg = *flagLat
	}
	if cameraFlagsSet["lon"] {
		cfg.Camera.LonDeg = *flagLon
	}
	if *flagAltitude > 0 {
		cfg.Camera.Altitude = *flagAltitude
	}
	if cameraFlagsSet["sun-lat"] {
		cfg.Sun.LatDeg = *flagSunLat
	}
	if cameraFlagsSet["sun-lon"] {
		cfg.Sun.LonDeg = *flagSunLon
	}
}
