// Command dice opens a table window. It loads a saved scene when one is
// configured, otherwise it deals a small demo layout, and it saves the table
// on exit when a save path is set.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"image/color"
	"os"

	"github.com/phanxgames/dice"
	"github.com/phanxgames/dice/ecs"
	"github.com/phanxgames/dice/script"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	cardW = 60
	cardH = 84
	chipD = 24
)

func main() {
	cfgPath := flag.String("config", "", "path to a config file (yaml, json or toml)")
	flag.Parse()

	cfg, err := Setup(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dice: config: %v\n", err)
		os.Exit(1)
	}

	logger := NewLogger(cfg)
	defer func() { _ = logger.Sync() }()
	dice.SetLogger(logger)

	textures := demoTextures()
	table := dice.NewTable()

	if cfg.ScenePath != "" {
		if err := loadScene(table, cfg.ScenePath); err != nil {
			logger.Fatal("failed to load scene", zap.String("path", cfg.ScenePath), zap.Error(err))
		}
		bindTextures(table, textures)
	} else {
		dealDemo(table, textures)
	}

	runtime := script.New(cfg.ScriptDir)
	for _, root := range table.Roots() {
		if err := runtime.RunTree(root); err != nil {
			logger.Error("script failed", zap.Error(err))
		}
	}

	if cfg.ShowFPS {
		table.AddRoot(dice.NewFPSWidget())
	}

	world := donburi.NewWorld()
	table.SetEventSink(ecs.NewDonburiSink(world))
	ecs.ObjectEventType.Subscribe(world, func(_ donburi.World, e dice.ObjectEvent) {
		logger.Debug("table event",
			zap.Stringer("type", e.Type),
			zap.String("object", e.ObjectID),
			zap.Float64("x", e.X),
			zap.Float64("y", e.Y))
	})

	logger.Info("entering main loop", zap.Int("roots", len(table.Roots())))
	err = dice.Run(table, dice.RunConfig{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		TPS:        cfg.Window.TPS,
		ClearColor: color.RGBA{R: 30, G: 30, B: 30, A: 255},
		OnUpdate: func(float64) error {
			ecs.ObjectEventType.ProcessEvents(world)
			return nil
		},
	})
	if err != nil {
		logger.Error("game loop stopped", zap.Error(err))
	}

	if cfg.SavePath != "" {
		if cfg.ShowFPS {
			table.RemoveRoot(dice.FPSWidgetID)
		}
		if err := saveScene(table, cfg.SavePath); err != nil {
			logger.Error("failed to save scene", zap.String("path", cfg.SavePath), zap.Error(err))
			return
		}
		logger.Info("saved scene", zap.String("path", cfg.SavePath))
	}
	logger.Info("shutting down")
}

// NewLogger builds a development or production zap logger at the configured level.
func NewLogger(cfg *Config) *zap.Logger {
	zc := zap.NewDevelopmentConfig()
	if cfg.Production {
		zc = zap.NewProductionConfig()
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(cfg.LogLevel)); err == nil {
		zc.Level = zap.NewAtomicLevelAt(lvl)
	}
	logger, err := zc.Build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger
}

func loadScene(table *dice.Table, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return table.Load(bytes.NewReader(data))
}

func saveScene(table *dice.Table, path string) error {
	var buf bytes.Buffer
	if err := table.Save(&buf); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// demoTextures creates solid placeholder textures; the demo ships no assets.
func demoTextures() *dice.Textures {
	t := dice.NewTextures()
	t.AddSolid("board", 640, 440, color.RGBA{R: 34, G: 90, B: 50, A: 255})
	t.AddSolid("card_front", cardW, cardH, color.RGBA{R: 240, G: 236, B: 220, A: 255})
	t.AddSolid("card_back", cardW, cardH, color.RGBA{R: 150, G: 40, B: 40, A: 255})
	t.AddSolid("chip", chipD, chipD, color.White)
	return t
}

// bindTextures resolves textures after a load, since documents never carry them.
func bindTextures(table *dice.Table, textures *dice.Textures) {
	for _, root := range table.Roots() {
		dice.Walk(root, func(n dice.Node) bool {
			switch v := n.(type) {
			case *dice.Card:
				v.SetFrontTexture(textures.Get("card_front"))
				v.SetBackTexture(textures.Get("card_back"))
			case *dice.Chip:
				v.SetTexture(textures.Get("chip"))
			default:
				if v.Base().Type == "Board" {
					v.Base().SetTexture(textures.Get("board"))
				}
			}
			return true
		})
	}
}

// dealDemo lays out a board, a hand of cards sliding into place, and a stack
// of chips per player.
func dealDemo(table *dice.Table, textures *dice.Textures) {
	board := dice.NewObject("board", "Board")
	board.Type = "Board"
	board.Draggable = false
	board.SetPosition(512, 384)
	board.SetTexture(textures.Get("board"))
	table.AddRoot(board)

	for i := 0; i < 6; i++ {
		card := dice.NewCard(dice.NewID("card"), fmt.Sprintf("Card %d", i+1))
		card.SetFrontTexture(textures.Get("card_front"))
		card.SetBackTexture(textures.Get("card_back"))
		card.SetProperty("value", i+1)
		card.AddTag("hand")
		card.Player = i % 2
		card.SetPosition(-260, -150)
		board.AddChild(card)
		table.Animate(dice.TweenPosition(card, float64(-175+i*70), 120, 0.4+0.1*float32(i), ease.OutQuad))
	}

	colors := []color.RGBA{{R: 60, G: 120, B: 220, A: 255}, {R: 230, G: 190, B: 40, A: 255}}
	for p, c := range colors {
		for i := 0; i < 5; i++ {
			chip := dice.NewChip(dice.NewID("chip"), fmt.Sprintf("Player %d chip", p+1))
			chip.Player = p
			chip.SetTexture(textures.Get("chip"))
			chip.SetColor(c)
			chip.SetPosition(float64(-250+p*500), float64(-20-i*4))
			chip.ZOrder = i
			board.AddChild(chip)
		}
	}
}
