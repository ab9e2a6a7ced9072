package narration

import (
	"errors"
	"testing"
)

type errNarrator struct {
	calls int
}

func (e *errNarrator) Speak(string) error {
	e.calls++
	return errors.New("synth failed")
}

func TestAnnounceSwallowsErrors(t *testing.T) {
	n := &errNarrator{}
	Announce(n, "hello")
	if n.calls != 1 {
		t.Errorf("Speak called %d times, want 1", n.calls)
	}
}

func TestAnnounceNilNarrator(t *testing.T) {
	Announce(nil, "hello") // must not panic
}

func TestESpeakSkipsBlankText(t *testing.T) {
	e := NewESpeak("", 0)
	if err := e.Speak("   "); err != nil {
		t.Errorf("blank text: %v", err)
	}
}

func TestNewESpeakDefaults(t *testing.T) {
	e := NewESpeak("", 0)
	if e.Command != "espeak" || e.Voice != "en" || e.Rate != 175 {
		t.Errorf("defaults = %+v", e)
	}
}
