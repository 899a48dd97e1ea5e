//go:build ebiten

package app

import (
	"errors"
	"fmt"

	hostcore "microlife/internal/core"
	"microlife/internal/control"
	"microlife/internal/render"
	"microlife/internal/ui"
	"microlife/pkg/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	ledSize  = 48
	ledGap   = 8
	hudWidth = 220
)

// keyButton reads a keyboard key as one of the board's push buttons.
type keyButton ebiten.Key

func (k keyButton) IsPressed() (bool, error) {
	return ebiten.IsKeyPressed(ebiten.Key(k)), nil
}

// Game adapts the control loop to the ebiten.Game interface. Ebiten ticks
// faster than the loop runs; FixedStep decides which ticks run a frame.
type Game struct {
	ctrl    *control.Controller
	display *render.Latest
	painter *render.LEDPainter
	hud     *ui.HUD
	step    *hostcore.FixedStep

	scale    int
	paused   bool
	tickOnce bool
}

// New constructs a Game. A and B act as the board's buttons.
func New(cfg control.Config, scale int, opts ...control.Option) *Game {
	if scale <= 0 {
		scale = 1
	}
	display := &render.Latest{}
	ctrl := control.New(cfg, control.Board{
		Display: display,
		Random:  core.NewRNG(cfg.Seed),
		ButtonA: keyButton(ebiten.KeyA),
		ButtonB: keyButton(ebiten.KeyB),
	}, opts...)
	return &Game{
		ctrl:    ctrl,
		display: display,
		painter: render.NewLEDPainter(ledSize*scale, ledGap*scale),
		hud:     ui.NewHUD(ctrl, hudWidth),
		step:    hostcore.NewFixedStep(ctrl.Config().FrameBudget),
		scale:   scale,
	}
}

// Controller returns the loop driven by the game.
func (g *Game) Controller() *control.Controller { return g.ctrl }

// Update handles keys and runs a loop frame when the frame budget has passed.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}

	g.hud.Update(g.painter.Size())

	if (!g.paused && g.step.ShouldStep()) || g.tickOnce {
		g.ctrl.Frame()
		g.tickOnce = false
	}
	return nil
}

// Draw paints the grid shown by the last frame, or the seed before the first.
func (g *Game) Draw(screen *ebiten.Image) {
	grid := g.display.Grid()
	if g.display.Frames() == 0 {
		grid = g.ctrl.Grid()
	}
	g.painter.Draw(screen, grid)
	g.hud.Draw(screen, g.painter.Size(), g.painter.Size())
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.painter.Size() + g.hud.Width(), g.painter.Size()
}

// Run opens the window and blocks until it is closed.
func Run(cfg control.Config, scale int, opts ...control.Option) error {
	game := New(cfg, scale, opts...)
	w, h := game.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("microlife")
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("running window: %w", err)
	}
	return nil
}
