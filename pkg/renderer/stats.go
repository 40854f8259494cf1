package renderer

// RenderStats tracks statistics for a render
type RenderStats struct {
	TotalPixels    int
	TotalSamples   int
	AverageSamples float64
}

// NewRenderStats creates a new render statistics tracker
func NewRenderStats() *RenderStats {
	return &RenderStats{}
}

// AddPixelStats records the sample count for one completed pixel
func (rs *RenderStats) AddPixelStats(samples int) {
	rs.TotalPixels++
	rs.TotalSamples += samples
}

// Merge folds another tracker's counts into this one
func (rs *RenderStats) Merge(other *RenderStats) {
	rs.TotalPixels += other.TotalPixels
	rs.TotalSamples += other.TotalSamples
}

// Finalize computes derived statistics after all pixels are recorded
func (rs *RenderStats) Finalize() {
	if rs.TotalPixels > 0 {
		rs.AverageSamples = float64(rs.TotalSamples) / float64(rs.TotalPixels)
	}
}
