package dice

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title      string
	Width      int
	Height     int
	TPS        int // ticks per second; 0 keeps ebiten's default of 60
	ClearColor color.RGBA
	// OnUpdate, when set, runs once per tick before the table updates.
	// Returning an error stops the game loop with that error.
	OnUpdate func(dt float64) error
}

// Run opens a window and drives the table from ebiten's game loop: pointer
// input, then Update, then Draw, once per tick. Left mouse drags draggable
// objects and right click flips cards. Run blocks until the window closes.
func Run(t *Table, cfg RunConfig) error {
	if t == nil {
		return errors.New("dice: run: nil table")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 1024, 768
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	return ebiten.RunGame(&game{table: t, cfg: cfg})
}

// game adapts a Table to ebiten.Game.
type game struct {
	table *Table
	cfg   RunConfig
}

func (g *game) Update() error {
	dt := frameDelta(ebiten.TPS(), ebiten.ActualFPS())
	if g.cfg.OnUpdate != nil {
		if err := g.cfg.OnUpdate(dt); err != nil {
			return err
		}
	}

	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx), float64(cy)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.table.FlipAt(x, y)
	}
	g.table.Pointer(x, y, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))

	g.table.Update(dt)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.ClearColor)
	g.table.Draw(ScreenRenderer{Target: screen})
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// frameDelta returns the seconds covered by one Update call. With
// ebiten.SyncWithFPS the tick rate follows the display, so the measured frame
// rate stands in; before the first measurement the delta is zero.
func frameDelta(tps int, actualFPS float64) float64 {
	if tps > 0 {
		return 1.0 / float64(tps)
	}
	if actualFPS > 0 {
		return 1.0 / actualFPS
	}
	return 0
}
