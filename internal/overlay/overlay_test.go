package overlay

import (
	"testing"

	"gocv.io/x/gocv"

	"sight-assist/pkg/colorutil"
	"sight-assist/pkg/geometry"
)

func TestAnnotateDrawsOnCopy(t *testing.T) {
	src := gocv.NewMatWithSize(100, 120, gocv.MatTypeCV8UC3)
	defer src.Close()

	boxes := []Box{
		{Rect: geometry.NewRectInt(10, 10, 40, 30), Label: "bottle", Color: colorutil.Green},
		{Rect: geometry.RectInt{}, Label: "skipped", Color: colorutil.Red},
	}
	out := Annotate(src, boxes, "Dolo 650...", "Mode: object (o=object, m=medicine, q=quit)")
	defer out.Close()

	gray := gocv.NewMat()
	defer gray.Close()

	gocv.CvtColor(out, &gray, gocv.ColorBGRToGray)
	if gocv.CountNonZero(gray) == 0 {
		t.Error("annotated frame has no drawn pixels")
	}

	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)
	if n := gocv.CountNonZero(gray); n != 0 {
		t.Errorf("source frame modified: %d nonzero pixels", n)
	}
}
