package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int           // Total number of pixels rendered
	TotalSamples   int           // Total number of camera rays traced
	AverageSamples float64       // Average samples per pixel
	Tiles          int           // Number of tiles rendered
	Workers        int           // Worker ceiling used for the render
	PeakWorkers    int           // Most tiles that were in flight at once
	Elapsed        time.Duration // Wall time of the render
}

// add folds the counts of a finished tile into the totals
func (s *RenderStats) add(tile RenderStats) {
	s.TotalPixels += tile.TotalPixels
	s.TotalSamples += tile.TotalSamples
	s.Tiles += tile.Tiles
}

// finalize calculates derived statistics once every tile has been added
func (s *RenderStats) finalize() {
	if s.TotalPixels > 0 {
		s.AverageSamples = float64(s.TotalSamples) / float64(s.TotalPixels)
	}
}
