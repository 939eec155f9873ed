package renderer_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-freefly/engine/renderer"
)

func TestGridVerticesCount(t *testing.T) {
	tests := []struct {
		halfLines int
		should    int
	}{
		{halfLines: 0, should: 4 + 6},
		{halfLines: 1, should: 12 + 6},
		{halfLines: 20, should: 4*41 + 6},
		{halfLines: -3, should: 4 + 6},
	}

	for _, tt := range tests {
		if is := len(renderer.GridVertices(tt.halfLines, 1)); is != tt.should {
			t.Errorf("halfLines %d: expected %d vertices, got %d", tt.halfLines, tt.should, is)
		}
	}
}

func TestGridVerticesLayout(t *testing.T) {
	vertices := renderer.GridVertices(2, 0.5)

	grid := vertices[:len(vertices)-6]
	for i, v := range grid {
		if v.Position[1] != 0 {
			t.Errorf("grid vertex %d should lie on the XZ plane, got %v", i, v.Position)
		}
		for _, c := range []float32{v.Position[0], v.Position[2]} {
			if c < -1 || c > 1 {
				t.Errorf("grid vertex %d outside the extent: %v", i, v.Position)
			}
		}
	}

	axes := vertices[len(vertices)-6:]
	ends := [][3]float32{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	for i, end := range ends {
		if axes[2*i].Position != ([3]float32{}) {
			t.Errorf("axis %d should start at the origin, got %v", i, axes[2*i].Position)
		}
		if axes[2*i+1].Position != end {
			t.Errorf("axis %d should end at %v, got %v", i, end, axes[2*i+1].Position)
		}
		if axes[2*i].Color != axes[2*i+1].Color {
			t.Errorf("axis %d should have a single color", i)
		}
	}
}

func TestMarshalLineVertices(t *testing.T) {
	vertices := []renderer.LineVertex{
		{Position: [3]float32{1, 2, 3}, Color: [3]float32{0.1, 0.2, 0.3}},
		{Position: [3]float32{-4, 5, -6}, Color: [3]float32{1, 0, 1}},
	}

	buf := renderer.MarshalLineVertices(vertices)
	if len(buf) != 2*renderer.LineVertexStride {
		t.Fatalf("expected %d bytes, got %d", 2*renderer.LineVertexStride, len(buf))
	}

	word := func(i int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	should := []float32{1, 2, 3, 0.1, 0.2, 0.3, -4, 5, -6, 1, 0, 1}
	for i, s := range should {
		if is := word(i); is != s {
			t.Errorf("word %d should be %f but is %f", i, s, is)
		}
	}
}
