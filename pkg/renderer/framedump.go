package renderer

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/orbview/atmosray/pkg/core"
)

// WritePFM writes the framebuffer as a Portable FloatMap (PFM), preserving
// the linear HDR values before gamma correction. PFM stores scanlines bottom
// to top; a negative scale marks little-endian samples.
func (f *Framebuffer) WritePFM(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "PF\n%d %d\n-1.0\n", f.Width, f.Height); err != nil {
		return fmt.Errorf("writing PFM header: %w", err)
	}

	var buf [12]byte
	for y := f.Height - 1; y >= 0; y-- {
		for x := 0; x < f.Width; x++ {
			c := f.At(x, y)
			binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(float32(c.X)))
			binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(float32(c.Y)))
			binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(float32(c.Z)))
			if _, err := bw.Write(buf[:]); err != nil {
				return fmt.Errorf("writing PFM samples: %w", err)
			}
		}
	}

	return bw.Flush()
}

// SavePFM writes the framebuffer to a PFM file. A ".gz" suffix selects
// transparent gzip compression.
func (f *Framebuffer) SavePFM(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filename, err)
	}
	defer file.Close()

	var w io.Writer = file
	if strings.HasSuffix(filename, ".gz") {
		gz := gzip.NewWriter(file)
		defer gz.Close()
		w = gz
	}

	if err := f.WritePFM(w); err != nil {
		return fmt.Errorf("saving %s: %w", filename, err)
	}
	return nil
}

// ReadPFM loads a PFM stream into a framebuffer. Only 3-channel little-endian
// maps, as written by WritePFM, are supported.
func ReadPFM(r io.Reader) (*Framebuffer, error) {
	br := bufio.NewReader(r)

	var magic string
	var width, height int
	var scale float64
	if _, err := fmt.Fscanf(br, "%s\n%d %d\n%f\n", &magic, &width, &height, &scale); err != nil {
		return nil, fmt.Errorf("reading PFM header: %w", err)
	}
	if magic != "PF" {
		return nil, fmt.Errorf("reading PFM header: not a color PFM (magic %q)", magic)
	}
	if scale >= 0 {
		return nil, fmt.Errorf("reading PFM header: big-endian maps are not supported")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("reading PFM header: invalid dimensions %dx%d", width, height)
	}

	fb := NewFramebuffer(width, height)
	var buf [12]byte
	for y := height - 1; y >= 0; y-- {
		for x := 0; x < width; x++ {
			if _, err := io.ReadFull(br, buf[:]); err != nil {
				return nil, fmt.Errorf("reading PFM samples: %w", err)
			}
			fb.Set(x, y, core.NewVec3(
				float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4]))),
				float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[4:8]))),
				float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[8:12]))),
			))
		}
	}

	return fb, nil
}

// LoadPFM reads a PFM file, decompressing ".gz" files transparently
func LoadPFM(filename string) (*Framebuffer, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filename, err)
	}
	defer file.Close()

	var r io.Reader = file
	if strings.HasSuffix(filename, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", filename, err)
		}
		defer gz.Close()
		r = gz
	}

	return ReadPFM(r)
}
