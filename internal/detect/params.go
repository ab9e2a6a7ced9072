package detect

// Params holds parameters for the DNN object detector.
type Params struct {
	ModelPath string // Path to the ONNX model file
	NamesPath string // Path to the class names file, one label per line

	// Thresholds fixed at configuration time; detection results are not
	// re-thresholded downstream.
	Confidence float64 // Minimum class score (0-1)
	NMS        float64 // IoU threshold for non-maximum suppression

	InputSize int // Square network input size in pixels
}

// DefaultParams returns default detector parameters.
func DefaultParams() Params {
	return Params{
		ModelPath:  "models/yolov8n.onnx",
		NamesPath:  "models/coco.names",
		Confidence: 0.5,
		NMS:        0.45,
		InputSize:  640,
	}
}

// WithModel returns a copy of params with custom model and names paths.
func (p Params) WithModel(model, names string) Params {
	if model != "" {
		p.ModelPath = model
	}
	if names != "" {
		p.NamesPath = names
	}
	return p
}

// WithThresholds returns a copy of params with custom confidence and NMS
// thresholds. Non-positive values keep the existing ones.
func (p Params) WithThresholds(confidence, nms float64) Params {
	if confidence > 0 {
		p.Confidence = confidence
	}
	if nms > 0 {
		p.NMS = nms
	}
	return p
}

// WithInputSize returns a copy of params with a custom network input size.
func (p Params) WithInputSize(size int) Params {
	if size > 0 {
		p.InputSize = size
	}
	return p
}
