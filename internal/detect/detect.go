// Package detect provides object detection over camera frames.
package detect

import (
	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/floats"

	"sight-assist/pkg/geometry"
)

// Detection is one object found in a frame. It exists only for the current
// frame's render and narration decision and is never persisted.
type Detection struct {
	Label      string           // Class label, e.g. "cup"
	Confidence float64          // Detector confidence (0-1)
	Box        geometry.RectInt // Location in frame pixels
}

// Detector is the capability boundary for object detection backends. A
// backend is invoked once per frame and holds whatever thresholds it was
// configured with; callers do not re-threshold results.
type Detector interface {
	Detect(img gocv.Mat) ([]Detection, error)
}

// Best selects the single detection with the highest confidence, so that at
// most one result is narrated per frame. Ties resolve to the first
// detection in input order. Returns false when dets is empty.
func Best(dets []Detection) (Detection, bool) {
	if len(dets) == 0 {
		return Detection{}, false
	}
	confs := make([]float64, len(dets))
	for i, d := range dets {
		confs[i] = d.Confidence
	}
	return dets[floats.MaxIdx(confs)], true
}
