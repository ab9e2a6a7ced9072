package detect

import (
	"os"
	"path/filepath"
	"testing"

	"gocv.io/x/gocv"
)

func TestBestPicksHighestConfidence(t *testing.T) {
	dets := []Detection{
		{Label: "cat", Confidence: 0.4},
		{Label: "dog", Confidence: 0.9},
		{Label: "bird", Confidence: 0.6},
	}

	best, ok := Best(dets)
	if !ok {
		t.Fatalf("Best returned ok=false for %d detections", len(dets))
	}
	if best.Label != "dog" {
		t.Errorf("Best label = %q, want %q", best.Label, "dog")
	}
}

func TestBestTieKeepsFirst(t *testing.T) {
	dets := []Detection{
		{Label: "cat", Confidence: 0.4},
		{Label: "dog", Confidence: 0.9},
		{Label: "bird", Confidence: 0.9},
	}

	best, ok := Best(dets)
	if !ok {
		t.Fatalf("Best returned ok=false for %d detections", len(dets))
	}
	if best.Label != "dog" {
		t.Errorf("Best label = %q, want %q (first of tied scores)", best.Label, "dog")
	}
}

func TestBestEmpty(t *testing.T) {
	if _, ok := Best(nil); ok {
		t.Error("Best(nil) returned ok=true")
	}
	if _, ok := Best([]Detection{}); ok {
		t.Error("Best of empty slice returned ok=true")
	}
}

func TestLoadNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coco.names")
	if err := os.WriteFile(path, []byte("person\nbicycle\n\ncar\n"), 0644); err != nil {
		t.Fatalf("writing names file: %v", err)
	}

	names, err := LoadNames(path)
	if err != nil {
		t.Fatalf("LoadNames: %v", err)
	}
	want := []string{"person", "bicycle", "car"}
	if len(names) != len(want) {
		t.Fatalf("got %d names, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestLoadNamesMissing(t *testing.T) {
	if _, err := LoadNames(filepath.Join(t.TempDir(), "absent.names")); err == nil {
		t.Error("LoadNames on a missing file returned nil error")
	}
}

// TestParseFiltersAndScales feeds a hand-built [1, 4+classes, boxes] tensor
// through the output parser and checks confidence filtering, suppression of
// overlapping boxes, and scaling back to frame coordinates.
func TestParseFiltersAndScales(t *testing.T) {
	y := &YOLO{names: []string{"cup", "bottle"}, params: DefaultParams()}

	out := gocv.NewMatWithSizes([]int{1, 6, 3}, gocv.MatTypeCV32F)
	defer out.Close()

	set := func(box int, cx, cy, w, h, cup, bottle float32) {
		vals := []float32{cx, cy, w, h, cup, bottle}
		for r, v := range vals {
			out.SetFloatAt3(0, r, box, v)
		}
	}
	set(0, 320, 320, 100, 80, 0.9, 0.1)  // keeper
	set(1, 322, 320, 100, 80, 0.8, 0.1)  // overlaps box 0, suppressed
	set(2, 100, 100, 40, 40, 0.3, 0.2)   // below confidence threshold

	dets, err := y.parse(out, 640, 480)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(dets) != 1 {
		t.Fatalf("got %d detections, want 1: %+v", len(dets), dets)
	}

	d := dets[0]
	if d.Label != "cup" {
		t.Errorf("label = %q, want %q", d.Label, "cup")
	}
	if d.Confidence < 0.89 || d.Confidence > 0.91 {
		t.Errorf("confidence = %v, want ~0.9", d.Confidence)
	}
	// Input space is 640x640, frame is 640x480, so y shrinks by 0.75.
	if d.Box.X != 270 || d.Box.Y != 210 || d.Box.Width != 100 || d.Box.Height != 60 {
		t.Errorf("box = %+v, want {270 210 100 60}", d.Box)
	}
}

func TestParseRejectsUnexpectedShape(t *testing.T) {
	y := &YOLO{names: []string{"cup", "bottle"}, params: DefaultParams()}

	out := gocv.NewMatWithSizes([]int{1, 7, 3}, gocv.MatTypeCV32F)
	defer out.Close()

	if _, err := y.parse(out, 640, 480); err == nil {
		t.Error("parse accepted a tensor with the wrong row count")
	}
}
