package main

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/orbview/atmosray/pkg/atmosphere"
	"github.com/orbview/atmosray/pkg/config"
	"github.com/orbview/atmosray/pkg/core"
	"github.com/orbview/atmosray/pkg/logger"
	"github.com/orbview/atmosray/pkg/renderer"
	"github.com/orbview/atmosray/pkg/scene"
	"github.com/orbview/atmosray/pkg/surface"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Fatal("Render failed", zap.Error(err))
	}
}

func run(cfg *config.Config) error {
	// Ctrl-C cancels the render
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sc, err := buildScene(cfg)
	if err != nil {
		return err
	}

	cam := renderer.NewCamera(renderer.CameraConfig{
		LatDeg:   cfg.Camera.LatDeg,
		LonDeg:   cfg.Camera.LonDeg,
		Altitude: cfg.Camera.Altitude,
		FOVDeg:   cfg.Camera.FOVDeg,
	}, cfg.Render.Width, cfg.Render.Height, atmosphere.PlanetRadius)

	r, err := renderer.NewRenderer(sc, cam, renderer.Config{
		Width:          cfg.Render.Width,
		Height:         cfg.Render.Height,
		TileSize:       cfg.Render.TileSize,
		SamplesPerSide: cfg.Render.SamplesPerSide,
		NumWorkers:     cfg.Render.Workers,
		Gamma:          cfg.Render.Gamma,
	}, logger.RenderLogger{})
	if err != nil {
		return err
	}

	fb, stats, err := r.Render(ctx, nil)
	if err != nil {
		return err
	}

	logger.Info("Render finished",
		zap.Int("pixels", stats.TotalPixels),
		zap.Float64("avg_samples", stats.AverageSamples))

	if err := savePNG(fb, cfg.Render.Output, cfg.Render.Gamma); err != nil {
		return err
	}
	logger.Info("Saved image", zap.String("path", cfg.Render.Output))

	if cfg.Render.FloatMap != "" {
		if err := fb.SavePFM(cfg.Render.FloatMap); err != nil {
			return err
		}
		logger.Info("Saved float map", zap.String("path", cfg.Render.FloatMap))
	}

	return nil
}

// buildScene assembles the planet scene from configuration, falling back to
// flat procedural textures when no files are configured.
func buildScene(cfg *config.Config) (*scene.Scene, error) {
	params := atmosphere.DefaultParameters()
	params.SunDirection = scene.SunFromLatLon(cfg.Sun.LatDeg, cfg.Sun.LonDeg)
	if cfg.Atmosphere.Radius > 0 {
		params.AtmosphereRadius = cfg.Atmosphere.Radius
	}
	if cfg.Atmosphere.SunIntensity > 0 {
		params.SunIntensity = cfg.Atmosphere.SunIntensity
	}
	if cfg.Atmosphere.MieCoeff > 0 {
		params.MieCoeff = cfg.Atmosphere.MieCoeff
	}
	if c := cfg.Atmosphere.RayleighCoeff; c != [3]float64{} {
		params.RayleighCoeff = core.NewVec3(c[0], c[1], c[2])
	}

	day, err := loadTexture(cfg.Textures.Day, core.NewVec3(0.05, 0.15, 0.35))
	if err != nil {
		return nil, err
	}
	night, err := loadTexture(cfg.Textures.Night, core.NewVec3(0.04, 0.035, 0.01))
	if err != nil {
		return nil, err
	}

	surf := surface.NewSurfaceShader(day, night)
	if cfg.Textures.OceanMask != "" {
		mask, err := surface.LoadSphereTexture(cfg.Textures.OceanMask)
		if err != nil {
			return nil, err
		}
		surf.OceanMask = mask
	}

	var clouds *surface.CloudLayer
	if cfg.Textures.Clouds != "" {
		cloudTex, err := surface.LoadSphereTexture(cfg.Textures.Clouds)
		if err != nil {
			return nil, err
		}
		clouds = surface.NewCloudLayer(cloudTex)
		if cfg.Textures.CloudOpacity > 0 {
			clouds.Opacity = cfg.Textures.CloudOpacity
		}
	}

	return scene.New(params, surf, clouds)
}

// loadTexture loads an equirectangular texture file, or returns a solid color
// when no path is configured.
func loadTexture(path string, fallback core.Vec3) (surface.Texture, error) {
	if path == "" {
		return surface.NewSolidTexture(fallback), nil
	}
	tex, err := surface.LoadSphereTexture(path)
	if err != nil {
		return nil, err
	}
	return tex, nil
}

func savePNG(fb *renderer.Framebuffer, filename string, gamma float64) error {
	if gamma <= 0 {
		gamma = renderer.DefaultGamma
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filename, err)
	}
	defer file.Close()

	if err := png.Encode(file, fb.ToRGBA(gamma)); err != nil {
		return fmt.Errorf("encoding %s: %w", filename, err)
	}
	return nil
}
