// Package keytracker reports key presses edge-triggered, so held keys fire
// once per press.
package keytracker

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Tracker remembers, per key, whether it was down on the previous poll.
type Tracker struct {
	prevPressed map[ebiten.Key]bool
}

// New creates an empty tracker.
func New() *Tracker {
	return &Tracker{prevPressed: make(map[ebiten.Key]bool)}
}

// IsKeyJustPressed returns true if the key was not pressed last poll but is
// pressed now. Poll each key at most once per frame.
func (t *Tracker) IsKeyJustPressed(key ebiten.Key) bool {
	return t.Observe(key, ebiten.IsKeyPressed(key))
}

// Observe records the pressed state of key and reports a rising edge.
func (t *Tracker) Observe(key ebiten.Key, pressed bool) bool {
	justPressed := pressed && !t.prevPressed[key]
	t.prevPressed[key] = pressed
	return justPressed
}
