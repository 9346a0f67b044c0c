package platform

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/asteroids/game"
	"gonum.org/v1/gonum/spatial/r2"
)

var keyMap = map[game.Key]ebiten.Key{
	game.KeyW:     ebiten.KeyW,
	game.KeyA:     ebiten.KeyA,
	game.KeyS:     ebiten.KeyS,
	game.KeyD:     ebiten.KeyD,
	game.KeyUp:    ebiten.KeyArrowUp,
	game.KeyLeft:  ebiten.KeyArrowLeft,
	game.KeyDown:  ebiten.KeyArrowDown,
	game.KeyRight: ebiten.KeyArrowRight,
	game.KeySpace: ebiten.KeySpace,
}

// Input reads the keyboard and mouse through ebiten. Keys read as released
// while Captured reports true.
type Input struct {
	Captured func() bool
}

func (Input) CursorPosition() r2.Vec {
	x, y := ebiten.CursorPosition()
	return r2.Vec{X: float64(x), Y: float64(y)}
}

func (in Input) IsKeyDown(key game.Key) bool {
	if in.Captured != nil && in.Captured() {
		return false
	}
	k, ok := keyMap[key]
	return ok && ebiten.IsKeyPressed(k)
}
