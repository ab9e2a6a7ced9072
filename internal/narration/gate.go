// Package narration decides when results are spoken and performs the speech.
package narration

import "time"

// DefaultCooldown is the minimum interval before an unchanged message may be
// spoken again.
const DefaultCooldown = 2 * time.Second

// Gate tracks the last spoken message and decides whether a new candidate
// should be spoken now. It prevents the blocking speech synthesizer from
// being invoked every frame for an unchanged result, while still allowing
// re-announcement once the cooldown has elapsed.
//
// The gate holds no clock of its own; callers pass the current time, which
// keeps the timing logic testable with synthetic timestamps.
type Gate struct {
	cooldown time.Duration
	lastText string
	lastAt   time.Time
}

// NewGate creates a gate with the given cooldown. A non-positive cooldown
// falls back to DefaultCooldown.
func NewGate(cooldown time.Duration) *Gate {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Gate{cooldown: cooldown}
}

// ShouldSpeak reports whether text should be spoken at time now: the text
// differs from the last spoken message, or the cooldown has elapsed since
// it was last spoken. Empty text is never spoken.
func (g *Gate) ShouldSpeak(text string, now time.Time) bool {
	if text == "" {
		return false
	}
	return text != g.lastText || now.Sub(g.lastAt) > g.cooldown
}

// Admit records text as spoken at time now and returns true when the gate
// accepts it; the caller then performs the actual speech. When the gate
// refuses, no state changes and false is returned.
func (g *Gate) Admit(text string, now time.Time) bool {
	if !g.ShouldSpeak(text, now) {
		return false
	}
	g.lastText = text
	g.lastAt = now
	return true
}

// Reset clears the last spoken message. Called on mode switches so that
// re-entering a mode always re-announces its first result instead of
// suppressing it against stale state.
func (g *Gate) Reset() {
	g.lastText = ""
}
