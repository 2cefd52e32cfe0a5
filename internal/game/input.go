package game

import (
	"raycastmaze/internal/game/keytracker"
	"raycastmaze/internal/player"

	"github.com/hajimehoshi/ebiten/v2"
)

// InputHandler handles all user input for the game
type InputHandler struct {
	game *MazeGame
	keys *keytracker.Tracker

	lastCursorX   int
	cursorTracked bool
}

// NewInputHandler creates a new input handler
func NewInputHandler(game *MazeGame) *InputHandler {
	return &InputHandler{game: game, keys: keytracker.New()}
}

// HandleInput processes all input for the current frame
func (ih *InputHandler) HandleInput() {
	ih.handleUIInput()
	ih.game.controller.Update(ih.movementInput())
}

func (ih *InputHandler) movementInput() player.Input {
	return player.Input{
		Forward:     ebiten.IsKeyPressed(ebiten.KeyUp) || ebiten.IsKeyPressed(ebiten.KeyW),
		Backward:    ebiten.IsKeyPressed(ebiten.KeyDown) || ebiten.IsKeyPressed(ebiten.KeyS),
		TurnLeft:    ebiten.IsKeyPressed(ebiten.KeyLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		TurnRight:   ebiten.IsKeyPressed(ebiten.KeyRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		StrafeLeft:  ebiten.IsKeyPressed(ebiten.KeyQ),
		StrafeRight: ebiten.IsKeyPressed(ebiten.KeyE),
		MouseDX:     ih.mouseDelta(),
	}
}

// mouseDelta returns the horizontal cursor movement since the last frame.
// The first sample only establishes the reference position.
func (ih *InputHandler) mouseDelta() float64 {
	x, _ := ebiten.CursorPosition()
	if !ih.cursorTracked {
		ih.lastCursorX = x
		ih.cursorTracked = true
		return 0
	}
	dx := x - ih.lastCursorX
	ih.lastCursorX = x
	return float64(dx)
}

func (ih *InputHandler) handleUIInput() {
	if ih.keys.IsKeyJustPressed(ebiten.KeyEscape) {
		ih.game.quitRequested = true
	}
	if ih.keys.IsKeyJustPressed(ebiten.KeyM) {
		ih.game.showTopDown = !ih.game.showTopDown
	}
	if ih.keys.IsKeyJustPressed(ebiten.KeyTab) {
		ih.game.showMinimap = !ih.game.showMinimap
	}
	if ih.keys.IsKeyJustPressed(ebiten.KeyF3) {
		ih.game.togglePerfDebug()
	}
}
