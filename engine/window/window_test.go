package window

import "testing"

func TestFramebufferPoint(t *testing.T) {
	tests := []struct {
		name                string
		x, y                float64
		fbWidth, fbHeight   int
		winWidth, winHeight int
		shouldX, shouldY    float32
	}{
		{name: "standard display", x: 400, y: 300, fbWidth: 800, fbHeight: 600, winWidth: 800, winHeight: 600, shouldX: 400, shouldY: 300},
		{name: "retina", x: 400, y: 300, fbWidth: 1600, fbHeight: 1200, winWidth: 800, winHeight: 600, shouldX: 800, shouldY: 600},
		{name: "fractional scale", x: 100, y: 100, fbWidth: 1500, fbHeight: 900, winWidth: 1000, winHeight: 600, shouldX: 150, shouldY: 150},
		{name: "minimized", x: 12, y: 34, fbWidth: 0, fbHeight: 0, winWidth: 0, winHeight: 0, shouldX: 12, shouldY: 34},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := framebufferPoint(tt.x, tt.y, tt.fbWidth, tt.fbHeight, tt.winWidth, tt.winHeight)
			if x != tt.shouldX || y != tt.shouldY {
				t.Errorf("point should be (%v, %v) but is (%v, %v)", tt.shouldX, tt.shouldY, x, y)
			}
		})
	}
}
