// Package player runs a protoplay scene in an ebiten window: it feeds the
// mouse into the scene, advances it every tick and draws the element tree.
package player

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/protoplay"
)

// Config configures the window and the overlays.
type Config struct {
	Title  string
	Width  int
	Height int
	// ShowFPS draws the current FPS and TPS in the top-left corner.
	ShowFPS bool
	// ScreenshotDir is where test-script screenshots are written.
	// Defaults to "screenshots".
	ScreenshotDir string
	// ExitWhenDone ends the game loop once the scene's test runner has
	// run every step.
	ExitWhenDone bool
}

func (c *Config) applyDefaults() {
	if c.Title == "" {
		c.Title = "protoplay"
	}
	if c.Width <= 0 {
		c.Width = 1280
	}
	if c.Height <= 0 {
		c.Height = 720
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = "screenshots"
	}
}

// Game adapts a Scene to ebiten.Game.
type Game struct {
	scene *protoplay.Scene
	cfg   Config
	r     renderer
	shots screenshotQueue
}

// New creates a Game for scene. It takes over the scene's screenshot hook.
func New(scene *protoplay.Scene, cfg Config) *Game {
	cfg.applyDefaults()
	g := &Game{scene: scene, cfg: cfg}
	g.shots.dir = cfg.ScreenshotDir
	scene.OnScreenshot = g.shots.add
	return g
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	x, y, pressed, button := readPointer()
	g.scene.SetPointer(x, y, pressed, button)
	g.scene.Update(1 / float64(ebiten.TPS()))

	if g.cfg.ExitWhenDone {
		if r := g.scene.TestRunner(); r != nil && r.Done() && g.shots.empty() {
			return ebiten.Termination
		}
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(toNRGBA(g.scene.ClearColor, 1))
	g.r.drawTree(screen, g.scene.Root())
	g.shots.flush(screen)
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

// Layout implements ebiten.Game.
func (g *Game) Layout(int, int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window and plays scene until the window is closed.
func Run(scene *protoplay.Scene, cfg Config) error {
	g := New(scene, cfg)
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	ebiten.SetWindowTitle(g.cfg.Title)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

// toNRGBA converts a straight-alpha Color, scaling its alpha by alpha.
func toNRGBA(c protoplay.Color, alpha float64) color.NRGBA {
	c.A *= alpha
	r, g, b, a := c.RGBA8()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}
