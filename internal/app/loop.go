package app

import (
	"fmt"
	"log"
	"time"

	"gocv.io/x/gocv"

	"sight-assist/internal/detect"
	"sight-assist/internal/medicine"
	"sight-assist/internal/narration"
	"sight-assist/internal/overlay"
	"sight-assist/internal/video"
	"sight-assist/pkg/colorutil"
)

// Loop wires the capture source, the two recognition pipelines, and the
// narrator into a single-threaded frame cycle. Speech blocks the cycle,
// which is acceptable for a handheld assistant: the next frame is simply
// grabbed a little later.
type Loop struct {
	source   video.Source
	display  video.Display
	detector detect.Detector
	medicine *medicine.Pipeline
	narrator narration.Narrator
	gate     *narration.Gate
	now      func() time.Time

	mode Mode
}

// NewLoop assembles a loop starting in object mode.
func NewLoop(source video.Source, display video.Display, detector detect.Detector,
	pipeline *medicine.Pipeline, narrator narration.Narrator, gate *narration.Gate) *Loop {
	return &Loop{
		source:   source,
		display:  display,
		detector: detector,
		medicine: pipeline,
		narrator: narrator,
		gate:     gate,
		now:      time.Now,
		mode:     ModeObject,
	}
}

// Run drives the loop until q is pressed or the source stops delivering
// frames. Closing the collaborators stays with the caller.
func (l *Loop) Run() {
	l.announce("App started. Object mode.")

	frame := gocv.NewMat()
	defer frame.Close()

	for {
		if !l.source.Read(&frame) {
			log.Printf("frame source ended")
			return
		}

		// Strip modifier bits so plain letter keys compare cleanly.
		switch l.display.PollKey() & 0xff {
		case 'q':
			l.announce("Goodbye")
			return
		case 'o':
			l.setMode(ModeObject)
		case 'm':
			l.setMode(ModeMedicine)
		}

		var (
			candidate string
			boxes     []overlay.Box
			note      string
		)
		switch l.mode {
		case ModeObject:
			candidate, boxes = l.describeObjects(frame)
		case ModeMedicine:
			res := l.medicine.Process(frame)
			candidate = res.Speech
			boxes = res.Overlays
			note = res.Preview
			if res.Preview != "" {
				log.Printf("read %q (confidence %.0f)", res.Preview, res.Confidence)
			}
		}

		if l.gate.Admit(candidate, l.now()) {
			narration.Announce(l.narrator, candidate)
		}

		annotated := overlay.Annotate(frame, boxes, note, statusCaption(l.mode))
		l.display.Show(annotated)
		annotated.Close()
	}
}

// setMode switches modes, clears the repeat suppression, and announces the
// new mode right away. Announcements never pass through the gate.
func (l *Loop) setMode(m Mode) {
	l.mode = m
	l.gate.Reset()
	l.announce(m.Announcement())
}

// describeObjects runs the detector and narrates the most confident hit.
func (l *Loop) describeObjects(frame gocv.Mat) (string, []overlay.Box) {
	dets, err := l.detector.Detect(frame)
	if err != nil {
		log.Printf("detect: %v", err)
		return "", nil
	}

	best, ok := detect.Best(dets)
	if !ok {
		return "", nil
	}

	box := overlay.Box{
		Rect:  best.Box,
		Label: fmt.Sprintf("%s %.2f", best.Label, best.Confidence),
		Color: colorutil.Green,
	}
	return best.Label, []overlay.Box{box}
}

func (l *Loop) announce(text string) {
	narration.Announce(l.narrator, text)
}
