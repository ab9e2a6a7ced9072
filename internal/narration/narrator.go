package narration

import (
	"fmt"
	"log"
	"os/exec"
	"strconv"
	"strings"
)

// Narrator synthesizes speech for a text string, blocking until the
// utterance completes.
type Narrator interface {
	Speak(text string) error
}

// ESpeak narrates through the espeak command-line synthesizer. Each call
// runs one espeak process and waits for it to finish, so speech blocks the
// caller for its full duration.
type ESpeak struct {
	Command string // Synthesizer binary, e.g. "espeak" or "espeak-ng"
	Voice   string // Voice identifier, e.g. "en"
	Rate    int    // Speaking rate in words per minute
}

// NewESpeak creates an espeak narrator with the given voice and rate.
func NewESpeak(voice string, rate int) *ESpeak {
	if voice == "" {
		voice = "en"
	}
	if rate <= 0 {
		rate = 175
	}
	return &ESpeak{Command: "espeak", Voice: voice, Rate: rate}
}

// Speak synthesizes text and blocks until it has been spoken. Empty text is
// a no-op. The text is echoed to the log so a sighted helper can follow
// what the program said.
func (e *ESpeak) Speak(text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	log.Printf("say: %s", text)

	cmd := exec.Command(e.Command, "-v", e.Voice, "-s", strconv.Itoa(e.Rate), text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", e.Command, err)
	}
	return nil
}

// Announce speaks text and discards any synthesis error. A failed utterance
// is simply abandoned; there is no retry and the caller's loop continues.
func Announce(n Narrator, text string) {
	if n == nil {
		return
	}
	_ = n.Speak(text)
}
