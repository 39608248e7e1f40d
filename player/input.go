package player

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/protoplay"
)

var mouseButtons = [...]struct {
	eb ebiten.MouseButton
	pp protoplay.MouseButton
}{
	{ebiten.MouseButtonLeft, protoplay.MouseButtonLeft},
	{ebiten.MouseButtonRight, protoplay.MouseButtonRight},
	{ebiten.MouseButtonMiddle, protoplay.MouseButtonMiddle},
}

// readPointer returns the cursor position and the first pressed button.
func readPointer() (x, y float64, pressed bool, button protoplay.MouseButton) {
	cx, cy := ebiten.CursorPosition()
	for _, b := range mouseButtons {
		if ebiten.IsMouseButtonPressed(b.eb) {
			return float64(cx), float64(cy), true, b.pp
		}
	}
	return float64(cx), float64(cy), false, protoplay.MouseButtonLeft
}
