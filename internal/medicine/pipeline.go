// Package medicine identifies medicine packs held up to the camera, by
// barcode when one is readable and by packaging text otherwise.
package medicine

import (
	"fmt"
	"strings"

	"gocv.io/x/gocv"

	"sight-assist/internal/barcode"
	"sight-assist/internal/catalog"
	"sight-assist/internal/ocr"
	"sight-assist/internal/overlay"
	"sight-assist/pkg/colorutil"
	"sight-assist/pkg/geometry"
)

// Result is what one frame of identification produced.
type Result struct {
	Record     *catalog.Record // matched catalog entry, nil when none
	Speech     string          // narration candidate, empty when nothing to say
	Overlays   []overlay.Box   // annotations for the display frame
	Preview    string          // recognized-text excerpt for the on-screen note
	Confidence float64         // mean OCR word confidence, 0 without OCR
}

// Pipeline runs two-stage identification: barcode lookup first, packaging
// text recognition as the fallback.
type Pipeline struct {
	catalog *catalog.Catalog
	decoder barcode.Decoder // nil leaves the barcode stage disabled
	reader  ocr.Reader
}

// NewPipeline assembles a pipeline over a loaded catalog. decoder may be
// nil when no barcode capability is available; reader must be set.
func NewPipeline(cat *catalog.Catalog, decoder barcode.Decoder, reader ocr.Reader) *Pipeline {
	return &Pipeline{catalog: cat, decoder: decoder, reader: reader}
}

// Process inspects one frame. It never fails the frame loop: decode and
// OCR problems produce a Result with nothing to say.
func (p *Pipeline) Process(frame gocv.Mat) Result {
	var res Result

	if p.decoder != nil {
		// A decode failure just means no symbols this frame.
		symbols, err := p.decoder.Decode(frame)
		if err == nil {
			for _, sym := range symbols {
				res.Overlays = append(res.Overlays, overlay.Box{
					Rect:  sym.Box,
					Label: sym.Data,
					Color: colorutil.Blue,
				})
				if res.Record == nil {
					res.Record = p.catalog.FindByBarcode(sym.Data)
				}
			}
		}
	}
	if res.Record != nil {
		res.Speech = Summarize(res.Record)
		return res
	}

	// No barcode hit: read the packaging text in a centered crop.
	crop := CropRect(frame.Cols(), frame.Rows())
	res.Overlays = append(res.Overlays, overlay.Box{Rect: crop, Color: colorutil.Yellow})

	read, err := p.reader.RecognizeRegion(frame, crop)
	if err != nil || read.Text == "" {
		return res
	}

	res.Preview = truncate(read.Text, 60) + "..."
	res.Confidence = read.Confidence

	strength := ExtractStrength(read.Text)
	if rec := p.catalog.FindByName(read.Text); rec != nil {
		res.Record = rec
		res.Speech = Summarize(rec)
	} else {
		res.Speech = strings.TrimSpace(fmt.Sprintf("Detected text %s... %s", truncate(read.Text, 40), strength))
	}
	return res
}

// Summarize builds the spoken sentence for a matched record.
func Summarize(rec *catalog.Record) string {
	head := strings.TrimSpace(rec.DisplayName() + " " + rec.Strength)
	return fmt.Sprintf("%s. Uses: %s. Warnings: %s", head, rec.Uses, rec.Warnings)
}

// CropRect is the centered region OCR reads: 60% of the frame height by
// 90% of its width. Packaging held up to the camera lands here and the
// frame borders mostly carry background.
func CropRect(width, height int) geometry.RectInt {
	cw := int(float64(width) * 0.9)
	ch := int(float64(height) * 0.6)
	return geometry.NewRectInt((width-cw)/2, (height-ch)/2, cw, ch)
}

// ExtractStrength picks the first token that looks like a dosage, for
// example "650mg" or "50mcg".
func ExtractStrength(text string) string {
	for _, tok := range strings.Fields(text) {
		low := strings.ToLower(tok)
		if strings.Contains(low, "mg") || strings.Contains(low, "mcg") {
			return tok
		}
	}
	return ""
}

// truncate returns at most n runes of s.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
