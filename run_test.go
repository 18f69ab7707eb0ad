package dice

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestFrameDelta(t *testing.T) {
	tests := []struct {
		name string
		tps  int
		fps  float64
		want float64
	}{
		{"fixed tps", 60, 0, 1.0 / 60},
		{"fixed tps ignores fps", 30, 144, 1.0 / 30},
		{"sync with fps", ebiten.SyncWithFPS, 120, 1.0 / 120},
		{"sync before first frame", ebiten.SyncWithFPS, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := frameDelta(tt.tps, tt.fps)
			assertNear(t, tt.name, got, tt.want)
			if got < 0 {
				t.Errorf("frameDelta(%d, %v) = %v, want non-negative", tt.tps, tt.fps, got)
			}
		})
	}
}
