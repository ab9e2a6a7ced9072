// Package overlay draws annotation boxes and the mode caption onto frames.
package overlay

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"sight-assist/pkg/colorutil"
	"sight-assist/pkg/geometry"
)

// Box is one labeled rectangle to draw.
type Box struct {
	Rect      geometry.RectInt
	Label     string
	Color     color.RGBA
	Thickness int // line width, 2 when zero
}

// Annotate draws boxes, an optional top-left note, and the bottom caption
// onto a copy of img and returns the copy. The source frame is never
// modified.
func Annotate(img gocv.Mat, boxes []Box, note, caption string) gocv.Mat {
	out := img.Clone()
	for _, b := range boxes {
		drawBox(&out, b)
	}
	if note != "" {
		gocv.PutText(&out, note, image.Pt(20, 30), gocv.FontHersheySimplex, 0.7, colorutil.Yellow, 2)
	}
	if caption != "" {
		drawCaption(&out, caption)
	}
	return out
}

func drawBox(dst *gocv.Mat, b Box) {
	rect := b.Rect.ToImageRect()
	if rect.Empty() {
		return
	}

	thickness := b.Thickness
	if thickness <= 0 {
		thickness = 2
	}
	gocv.Rectangle(dst, rect, b.Color, thickness)

	if b.Label == "" {
		return
	}

	// Draw label above the box, below it when clipped by the frame edge
	labelPos := image.Point{X: rect.Min.X, Y: rect.Min.Y - 5}
	if labelPos.Y < 15 {
		labelPos.Y = rect.Max.Y + 15
	}
	gocv.PutText(dst, b.Label, labelPos, gocv.FontHersheyPlain, 1.0, b.Color, 1)
}

// drawCaption writes text at the bottom left, black outline under white fill.
func drawCaption(dst *gocv.Mat, caption string) {
	pos := image.Point{X: 10, Y: dst.Rows() - 10}
	gocv.PutText(dst, caption, pos, gocv.FontHersheySimplex, 0.6, colorutil.Black, 3)
	gocv.PutText(dst, caption, pos, gocv.FontHersheySimplex, 0.6, colorutil.White, 1)
}
