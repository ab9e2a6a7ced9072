package detect

import (
	"bufio"
	"fmt"
	"image"
	"os"
	"strings"

	"gocv.io/x/gocv"

	"sight-assist/pkg/geometry"
)

// YOLO runs a YOLOv8-family ONNX model through the OpenCV DNN module.
// The model is loaded once; thresholds are fixed for the detector lifetime.
type YOLO struct {
	net    gocv.Net
	names  []string
	params Params
}

// NewYOLO loads the ONNX model and class names given in params.
func NewYOLO(params Params) (*YOLO, error) {
	names, err := LoadNames(params.NamesPath)
	if err != nil {
		return nil, err
	}

	// ReadNet aborts inside OpenCV on a missing file, so check first.
	if _, err := os.Stat(params.ModelPath); err != nil {
		return nil, fmt.Errorf("cannot read detection model: %w", err)
	}

	net := gocv.ReadNet(params.ModelPath, "")
	if net.Empty() {
		return nil, fmt.Errorf("cannot load detection model %s", params.ModelPath)
	}
	_ = net.SetPreferableBackend(gocv.NetBackendDefault)
	_ = net.SetPreferableTarget(gocv.NetTargetCPU)

	return &YOLO{net: net, names: names, params: params}, nil
}

// Close releases the loaded model.
func (y *YOLO) Close() error {
	return y.net.Close()
}

// Detect runs one inference pass over img and returns the surviving
// detections after confidence filtering and non-maximum suppression.
func (y *YOLO) Detect(img gocv.Mat) ([]Detection, error) {
	if img.Empty() {
		return nil, fmt.Errorf("empty image")
	}

	size := y.params.InputSize
	blob := gocv.BlobFromImage(img, 1.0/255.0, image.Pt(size, size),
		gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	y.net.SetInput(blob, "")
	out := y.net.Forward("")
	defer out.Close()

	return y.parse(out, img.Cols(), img.Rows())
}

// parse decodes the [1, 4+classes, boxes] output tensor of a YOLOv8 export:
// rows 0-3 hold the box center/size in network input space, the remaining
// rows hold per-class scores.
func (y *YOLO) parse(out gocv.Mat, frameW, frameH int) ([]Detection, error) {
	dims := out.Size()
	if len(dims) != 3 || dims[0] != 1 || dims[1] != len(y.names)+4 {
		return nil, fmt.Errorf("unexpected model output shape %v for %d classes", dims, len(y.names))
	}
	rows, cols := dims[1], dims[2]

	m := out.Reshape(1, rows)
	defer m.Close()

	xScale := float64(frameW) / float64(y.params.InputSize)
	yScale := float64(frameH) / float64(y.params.InputSize)

	var (
		boxes   []image.Rectangle
		scores  []float32
		classes []int
	)

	for j := 0; j < cols; j++ {
		best := -1
		var bestScore float32
		for c := 4; c < rows; c++ {
			if s := m.GetFloatAt(c, j); s > bestScore {
				bestScore = s
				best = c - 4
			}
		}
		if best < 0 || float64(bestScore) < y.params.Confidence {
			continue
		}

		cx := float64(m.GetFloatAt(0, j))
		cy := float64(m.GetFloatAt(1, j))
		w := float64(m.GetFloatAt(2, j))
		h := float64(m.GetFloatAt(3, j))

		left := (cx - w/2) * xScale
		top := (cy - h/2) * yScale
		boxes = append(boxes, image.Rect(int(left), int(top), int(left+w*xScale), int(top+h*yScale)))
		scores = append(scores, bestScore)
		classes = append(classes, best)
	}

	if len(boxes) == 0 {
		return nil, nil
	}

	var dets []Detection
	for _, i := range gocv.NMSBoxes(boxes, scores, float32(y.params.Confidence), float32(y.params.NMS)) {
		dets = append(dets, Detection{
			Label:      y.names[classes[i]],
			Confidence: float64(scores[i]),
			Box:        geometry.FromImageRect(boxes[i]).ClampTo(frameW, frameH),
		})
	}
	return dets, nil
}

// LoadNames reads a class names file, one label per line, skipping blanks.
func LoadNames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read class names: %w", err)
	}
	defer f.Close()

	var names []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		name := strings.TrimSpace(sc.Text())
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("cannot read class names: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("class names file %s is empty", path)
	}
	return names, nil
}
