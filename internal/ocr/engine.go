// Package ocr extracts printed text from medicine packaging.
package ocr

import (
	"fmt"
	"image"
	"strings"

	"sight-assist/pkg/geometry"

	"github.com/otiai10/gosseract/v2"
	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/stat"
)

// Reader recognizes text inside a region of a frame.
type Reader interface {
	RecognizeRegion(img gocv.Mat, bounds geometry.RectInt) (Result, error)
	Close() error
}

// Word is a single recognized word and where it was found.
type Word struct {
	Text       string
	Bounds     geometry.RectInt // frame coordinates
	Confidence float64          // 0-100, straight from Tesseract
}

// Result is the recognized text of one region.
type Result struct {
	Text       string // all words joined with single spaces
	Words      []Word
	Confidence float64 // mean word confidence, 0 when no words
}

// Engine provides OCR functionality using Tesseract.
type Engine struct {
	client *gosseract.Client
}

// NewEngine creates an OCR engine for the given Tesseract language
// (for example "eng"). An empty lang selects English.
func NewEngine(lang string) (*Engine, error) {
	if lang == "" {
		lang = "eng"
	}

	client := gosseract.NewClient()
	if err := client.SetLanguage(lang); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}

	// Disable dictionary-based word correction - brand names like
	// "Dolo" or "Crocin" aren't dictionary words
	_ = client.SetVariable("load_system_dawg", "false")
	_ = client.SetVariable("load_freq_dawg", "false")
	_ = client.SetVariable("language_model_penalty_non_dict_word", "0")
	_ = client.SetVariable("language_model_penalty_non_freq_dict_word", "0")

	return &Engine{client: client}, nil
}

// Close releases OCR resources.
func (e *Engine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// RecognizeRegion performs OCR on a region of an image. A region with no
// readable text yields an empty Result, not an error.
func (e *Engine) RecognizeRegion(img gocv.Mat, bounds geometry.RectInt) (Result, error) {
	if img.Empty() {
		return Result{}, fmt.Errorf("empty image")
	}

	// Validate bounds
	x, y, w, h := bounds.X, bounds.Y, bounds.Width, bounds.Height
	imgH, imgW := img.Rows(), img.Cols()

	x = max(0, x)
	y = max(0, y)
	w = min(w, imgW-x)
	h = min(h, imgH-y)

	if w <= 0 || h <= 0 {
		return Result{}, fmt.Errorf("invalid region bounds")
	}

	// Extract region
	region := img.Region(image.Rect(x, y, x+w, y+h))
	defer region.Close()

	processed, scale := preprocessForOCR(region)
	defer processed.Close()

	// Convert to image bytes (PNG format)
	buf, err := gocv.IMEncode(gocv.PNGFileExt, processed)
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode image: %w", err)
	}
	defer buf.Close()

	// Packaging text is scattered labels, not a uniform paragraph
	if err := e.client.SetPageSegMode(gosseract.PSM_SPARSE_TEXT); err != nil {
		return Result{}, fmt.Errorf("failed to set PSM: %w", err)
	}

	if err := e.client.SetImageFromBytes(buf.GetBytes()); err != nil {
		return Result{}, fmt.Errorf("failed to set image: %w", err)
	}

	// Word-level boxes carry per-word confidence
	boxes, err := e.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return Result{}, fmt.Errorf("OCR failed: %w", err)
	}

	return collectWords(boxes, x, y, scale), nil
}

// RecognizeImage performs OCR on an entire image.
func (e *Engine) RecognizeImage(img gocv.Mat) (Result, error) {
	bounds := geometry.RectInt{
		X: 0, Y: 0,
		Width:  img.Cols(),
		Height: img.Rows(),
	}
	return e.RecognizeRegion(img, bounds)
}

// collectWords maps Tesseract word boxes back to frame coordinates and
// joins their text into a single normalized line.
func collectWords(boxes []gosseract.BoundingBox, offsetX, offsetY int, scale float64) Result {
	var (
		words []Word
		texts []string
		confs []float64
	)
	for _, box := range boxes {
		text := strings.TrimSpace(box.Word)
		if text == "" {
			continue
		}

		words = append(words, Word{
			Text: text,
			Bounds: geometry.NewRectInt(
				offsetX+int(float64(box.Box.Min.X)/scale),
				offsetY+int(float64(box.Box.Min.Y)/scale),
				int(float64(box.Box.Dx())/scale),
				int(float64(box.Box.Dy())/scale),
			),
			Confidence: box.Confidence,
		})
		texts = append(texts, text)
		confs = append(confs, box.Confidence)
	}

	result := Result{
		Text:  strings.Join(texts, " "),
		Words: words,
	}
	if len(confs) > 0 {
		result.Confidence = stat.Mean(confs, nil)
	}
	return result
}

// preprocessForOCR prepares a packaging crop for recognition. It returns
// the processed image and the upscale factor that was applied.
func preprocessForOCR(region gocv.Mat) (gocv.Mat, float64) {
	h, w := region.Rows(), region.Cols()

	// Upscale small crops for better OCR (target ~150px minimum dimension)
	scale := 1.0
	var scaled gocv.Mat
	if minDim := min(h, w); minDim > 0 && minDim < 150 {
		scale = 150.0 / float64(minDim)
		scaled = gocv.NewMat()
		gocv.Resize(region, &scaled, image.Point{}, scale, scale, gocv.InterpolationCubic)
	} else {
		scaled = region.Clone()
	}

	// Convert to grayscale
	gray := gocv.NewMat()
	gocv.CvtColor(scaled, &gray, gocv.ColorBGRToGray)
	scaled.Close()

	// Apply CLAHE (Contrast Limited Adaptive Histogram Equalization)
	// to even out lighting across curved packaging
	clahe := gocv.NewCLAHEWithParams(2.0, image.Point{8, 8})
	defer clahe.Close()

	enhanced := gocv.NewMat()
	clahe.Apply(gray, &enhanced)
	gray.Close()

	// Hard thresholding eats text printed on colored panels, so stop at
	// contrast enhancement and let Tesseract binarize internally
	result := gocv.NewMat()
	gocv.CvtColor(enhanced, &result, gocv.ColorGrayToBGR)
	enhanced.Close()

	return result, scale
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
