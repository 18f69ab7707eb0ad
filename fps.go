package dice

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// FPSWidgetID is the id of the object created by NewFPSWidget.
const FPSWidgetID = "fps_widget"

// NewFPSWidget creates an object that displays the current FPS and TPS,
// redrawn every ~0.5 seconds. It is not draggable and sits above ordinary
// roots. Remove it from the table before saving.
func NewFPSWidget() *Object {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	img := ebiten.NewImage(100, 32)

	o := NewObject(FPSWidgetID, "FPS")
	o.Type = "Widget"
	o.Draggable = false
	o.ZOrder = 1 << 20
	o.SetTexture(img)
	// Origin is centred; pin the top-left corner to the screen corner.
	o.SetPosition(o.originX, o.originY)

	lastUpdate := 0.5
	o.OnUpdate = func(dt float64) {
		lastUpdate += dt
		if lastUpdate < 0.5 {
			return
		}
		lastUpdate = 0

		img.Clear()
		img.Fill(color.RGBA{A: 128})
		ebitenutil.DebugPrint(img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	return o
}
