package app

import (
	"testing"
	"time"

	"gocv.io/x/gocv"

	"sight-assist/internal/catalog"
	"sight-assist/internal/detect"
	"sight-assist/internal/medicine"
	"sight-assist/internal/narration"
	"sight-assist/internal/ocr"
	"sight-assist/pkg/geometry"
)

type fakeSource struct {
	frames int
}

func (f *fakeSource) Read(dst *gocv.Mat) bool {
	if f.frames <= 0 {
		return false
	}
	f.frames--
	tmp := gocv.NewMatWithSize(48, 64, gocv.MatTypeCV8UC3)
	defer tmp.Close()
	tmp.CopyTo(dst)
	return true
}

func (f *fakeSource) Close() error { return nil }

type fakeDisplay struct {
	keys  []int // one per frame, -1 when idle
	shown int
}

func (f *fakeDisplay) Show(gocv.Mat) { f.shown++ }

func (f *fakeDisplay) PollKey() int {
	if len(f.keys) == 0 {
		return -1
	}
	k := f.keys[0]
	f.keys = f.keys[1:]
	return k
}

func (f *fakeDisplay) Close() error { return nil }

type fakeNarrator struct {
	spoken []string
}

func (f *fakeNarrator) Speak(text string) error {
	f.spoken = append(f.spoken, text)
	return nil
}

type fakeDetector struct {
	dets []detect.Detection
}

func (f *fakeDetector) Detect(gocv.Mat) ([]detect.Detection, error) { return f.dets, nil }

type fakeReader struct {
	result ocr.Result
}

func (f *fakeReader) RecognizeRegion(gocv.Mat, geometry.RectInt) (ocr.Result, error) {
	return f.result, nil
}

func (f *fakeReader) Close() error { return nil }

func newTestLoop(frames int, keys []int, dets []detect.Detection, readText string) (*Loop, *fakeNarrator, *fakeDisplay) {
	display := &fakeDisplay{keys: keys}
	narrator := &fakeNarrator{}
	cat := catalog.New([]catalog.Record{
		{Brand: "Dolo 650", Generic: "Paracetamol", Strength: "650 mg",
			Uses: "Fever", Warnings: "None"},
	})
	pipeline := medicine.NewPipeline(cat, nil, &fakeReader{result: ocr.Result{Text: readText}})

	loop := NewLoop(&fakeSource{frames: frames}, display, &fakeDetector{dets: dets},
		pipeline, narrator, narration.NewGate(narration.DefaultCooldown))
	loop.now = func() time.Time { return time.Unix(1000, 0) }
	return loop, narrator, display
}

func assertSpoken(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("spoken %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("spoken %q, want %q", got, want)
		}
	}
}

func TestRunStartupAndQuit(t *testing.T) {
	loop, narrator, display := newTestLoop(5, []int{-1, 'q'}, nil, "")
	loop.Run()

	assertSpoken(t, narrator.spoken, []string{"App started. Object mode.", "Goodbye"})
	if display.shown != 1 {
		t.Errorf("shown %d frames, want 1 (quit frame is not displayed)", display.shown)
	}
}

func TestRunEndsWhenSourceStops(t *testing.T) {
	loop, narrator, display := newTestLoop(1, nil, nil, "")
	loop.Run()

	assertSpoken(t, narrator.spoken, []string{"App started. Object mode."})
	if display.shown != 1 {
		t.Errorf("shown %d frames, want 1", display.shown)
	}
}

func TestObjectModeNarratesBestAndModeSwitchReannounces(t *testing.T) {
	dets := []detect.Detection{
		{Label: "cat", Confidence: 0.4, Box: geometry.NewRectInt(1, 1, 5, 5)},
		{Label: "dog", Confidence: 0.9, Box: geometry.NewRectInt(8, 8, 10, 10)},
	}
	loop, narrator, display := newTestLoop(4, []int{-1, -1, 'o', -1}, dets, "")
	loop.Run()

	// The frozen clock keeps every frame inside the cooldown, so only a
	// gate reset lets the same label through twice.
	assertSpoken(t, narrator.spoken, []string{
		"App started. Object mode.",
		"dog",
		"Object mode",
		"dog",
	})
	if display.shown != 4 {
		t.Errorf("shown %d frames, want 4", display.shown)
	}
}

func TestMedicineModeSpeaksSummaryOnce(t *testing.T) {
	loop, narrator, _ := newTestLoop(2, []int{'m', -1}, nil, "Dolo 650 Tablets")
	loop.Run()

	assertSpoken(t, narrator.spoken, []string{
		"App started. Object mode.",
		"Medicine mode",
		"Dolo 650 650 mg. Uses: Fever. Warnings: None",
	})
}

func TestStatusCaption(t *testing.T) {
	if got := statusCaption(ModeObject); got != "Mode: object (o=object, m=medicine, q=quit)" {
		t.Errorf("caption = %q", got)
	}
	if got := statusCaption(ModeMedicine); got != "Mode: medicine (o=object, m=medicine, q=quit)" {
		t.Errorf("caption = %q", got)
	}
}

func TestModeNames(t *testing.T) {
	if ModeObject.String() != "object" || ModeMedicine.String() != "medicine" {
		t.Error("unexpected mode names")
	}
	if ModeObject.Announcement() != "Object mode" || ModeMedicine.Announcement() != "Medicine mode" {
		t.Error("unexpected mode announcements")
	}
}
