// Package server exposes the planet renderer over HTTP, streaming tile
// updates to the browser via Server-Sent Events.
package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/orbview/atmosray/pkg/atmosphere"
	"github.com/orbview/atmosray/pkg/logger"
	"github.com/orbview/atmosray/pkg/renderer"
	"github.com/orbview/atmosray/pkg/scene"
)

// Server handles web requests for the planet renderer
type Server struct {
	addr string
}

// NewServer creates a new web server listening on addr
func NewServer(addr string) *Server {
	return &Server{addr: addr}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Samples  int     `json:"samples"` // supersampling grid side
	TileSize int     `json:"tileSize"`
	Lat      float64 `json:"lat"`      // camera latitude, degrees
	Lon      float64 `json:"lon"`      // camera longitude, degrees
	Altitude float64 `json:"altitude"` // camera altitude above surface
	FOV      float64 `json:"fov"`
	SunLat   float64 `json:"sunLat"`
	SunLon   float64 `json:"sunLon"`
}

// TileProgress represents a single tile update sent via SSE
type TileProgress struct {
	TileX      int    `json:"tileX"`
	TileY      int    `json:"tileY"`
	X          int    `json:"x"` // pixel offset of the tile in the image
	Y          int    `json:"y"`
	ImageData  string `json:"imageData"` // Base64 encoded PNG of the tile
	TileNumber int    `json:"tileNumber"`
	TotalTiles int    `json:"totalTiles"`
	ElapsedMs  int64  `json:"elapsedMs"`
}

// RenderComplete is the final SSE payload with the whole frame
type RenderComplete struct {
	ImageData      string  `json:"imageData"`
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int     `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	ElapsedMs      int64   `json:"elapsedMs"`
}

// Start starts the web server
func (s *Server) Start() error {
	http.Handle("/", http.FileServer(http.Dir("static/")))

	http.HandleFunc("/api/render", s.handleRender)
	http.HandleFunc("/api/health", s.handleHealth)
	http.HandleFunc("/api/defaults", s.handleDefaults)

	logger.Info("Starting web server", zap.String("addr", s.addr))
	return http.ListenAndServe(s.addr, nil)
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleDefaults returns default render parameters and their limits
func (s *Server) handleDefaults(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	response := map[string]interface{}{
		"defaults": map[string]interface{}{
			"width":    800,
			"height":   600,
			"samples":  2,
			"tileSize": 64,
			"lat":      0.0,
			"lon":      45.0,
			"altitude": 8600.0,
			"fov":      60.0,
			"sunLat":   20.0,
			"sunLon":   60.0,
		},
		"limits": map[string]interface{}{
			"width":    map[string]int{"min": 100, "max": 2000},
			"height":   map[string]int{"min": 100, "max": 2000},
			"samples":  map[string]int{"min": 1, "max": 8},
			"tileSize": map[string]int{"min": 16, "max": 256},
		},
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// handleRender streams a tile-by-tile render over SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	params := atmosphere.DefaultParameters()
	params.SunDirection = scene.SunFromLatLon(req.SunLat, req.SunLon)

	sc, err := scene.New(params, scene.DefaultSurface(), nil)
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Scene error: %v", err))
		return
	}

	cam := renderer.NewCamera(renderer.CameraConfig{
		LatDeg:   req.Lat,
		LonDeg:   req.Lon,
		Altitude: req.Altitude,
		FOVDeg:   req.FOV,
	}, req.Width, req.Height, atmosphere.PlanetRadius)

	rend, err := renderer.NewRenderer(sc, cam, renderer.Config{
		Width:          req.Width,
		Height:         req.Height,
		TileSize:       req.TileSize,
		SamplesPerSide: req.Samples,
	}, logger.RenderLogger{})
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Renderer error: %v", err))
		return
	}

	// Request context detects client disconnection
	ctx := r.Context()
	startTime := time.Now()

	fb, stats, err := rend.Render(ctx, func(u renderer.TileUpdate) {
		imageData, encErr := s.imageToBase64PNG(u.Image)
		if encErr != nil {
			logger.Error("Failed to encode tile", zap.Error(encErr))
			return
		}
		s.sendSSEUpdate(w, TileProgress{
			TileX:      u.TileX,
			TileY:      u.TileY,
			X:          u.Bounds.Min.X,
			Y:          u.Bounds.Min.Y,
			ImageData:  imageData,
			TileNumber: u.TileNumber,
			TotalTiles: u.TotalTiles,
			ElapsedMs:  time.Since(startTime).Milliseconds(),
		})
	})
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Render error: %v", err))
		return
	}

	imageData, err := s.imageToBase64PNG(fb.ToRGBA(renderer.DefaultGamma))
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Encode error: %v", err))
		return
	}

	data, err := json.Marshal(RenderComplete{
		ImageData:      imageData,
		TotalPixels:    stats.TotalPixels,
		TotalSamples:   stats.TotalSamples,
		AverageSamples: stats.AverageSamples,
		ElapsedMs:      time.Since(startTime).Milliseconds(),
	})
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Encode error: %v", err))
		return
	}
	s.sendSSEEvent(w, "complete", string(data))
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}
	q := r.URL.Query()

	var err error
	if req.Width, err = parseIntParam(q, "width", 800, 100, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(q, "height", 600, 100, 2000); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(q, "samples", 2, 1, 8); err != nil {
		return nil, err
	}
	if req.TileSize, err = parseIntParam(q, "tileSize", 64, 16, 256); err != nil {
		return nil, err
	}
	if req.Lat, err = parseFloatParam(q, "lat", 0, -90, 90); err != nil {
		return nil, err
	}
	if req.Lon, err = parseFloatParam(q, "lon", 45, -180, 180); err != nil {
		return nil, err
	}
	if req.Altitude, err = parseFloatParam(q, "altitude", 8600, 100, 100000); err != nil {
		return nil, err
	}
	if req.FOV, err = parseFloatParam(q, "fov", 60, 10, 120); err != nil {
		return nil, err
	}
	if req.SunLat, err = parseFloatParam(q, "sunLat", 20, -90, 90); err != nil {
		return nil, err
	}
	if req.SunLon, err = parseFloatParam(q, "sunLon", 60, -180, 180); err != nil {
		return nil, err
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %f and %f, got: %f", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// sendSSEUpdate sends a tile update via SSE
func (s *Server) sendSSEUpdate(w http.ResponseWriter, update TileProgress) error {
	data, err := json.Marshal(update)
	if err != nil {
		return err
	}
	return s.sendSSEEvent(w, "tile", string(data))
}

// sendSSEError sends an error via SSE
func (s *Server) sendSSEError(w http.ResponseWriter, message string) error {
	return s.sendSSEEvent(w, "error", message)
}

// sendSSEEvent sends a generic SSE event
func (s *Server) sendSSEEvent(w http.ResponseWriter, event, data string) error {
	if flusher, ok := w.(http.Flusher); ok {
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
		flusher.Flush()
		return nil
	}
	return fmt.Errorf("streaming not supported")
}
