package renderer

import (
	"encoding/binary"
	"math"
)

// LineVertex is one end of a line segment in the reference grid.
// Matches the vertex layout of the line shader: position at location 0, color at location 1.
type LineVertex struct {
	Position [3]float32
	Color    [3]float32
}

// LineVertexStride is the size of a marshaled LineVertex in bytes.
const LineVertexStride = 24

var (
	gridColor  = [3]float32{0.35, 0.35, 0.35}
	axisXColor = [3]float32{0.9, 0.2, 0.2}
	axisYColor = [3]float32{0.2, 0.9, 0.2}
	axisZColor = [3]float32{0.2, 0.4, 0.95}
)

// GridVertices builds a line list for a square grid on the XZ plane centered on the origin,
// followed by the three positive world axes in red, green and blue.
//
// Parameters:
//   - halfLines: number of grid lines on each side of the origin
//   - spacing: distance between neighboring grid lines
//
// Returns:
//   - []LineVertex: line list vertices, two per segment
func GridVertices(halfLines int, spacing float32) []LineVertex {
	if halfLines < 0 {
		halfLines = 0
	}
	extent := float32(halfLines) * spacing
	lines := 2*halfLines + 1

	out := make([]LineVertex, 0, 4*lines+6)
	for i := -halfLines; i <= halfLines; i++ {
		o := float32(i) * spacing
		out = append(out,
			LineVertex{Position: [3]float32{-extent, 0, o}, Color: gridColor},
			LineVertex{Position: [3]float32{extent, 0, o}, Color: gridColor},
			LineVertex{Position: [3]float32{o, 0, -extent}, Color: gridColor},
			LineVertex{Position: [3]float32{o, 0, extent}, Color: gridColor},
		)
	}

	axis := extent
	if axis == 0 {
		axis = 1
	}
	out = append(out,
		LineVertex{Position: [3]float32{0, 0, 0}, Color: axisXColor},
		LineVertex{Position: [3]float32{axis, 0, 0}, Color: axisXColor},
		LineVertex{Position: [3]float32{0, 0, 0}, Color: axisYColor},
		LineVertex{Position: [3]float32{0, axis, 0}, Color: axisYColor},
		LineVertex{Position: [3]float32{0, 0, 0}, Color: axisZColor},
		LineVertex{Position: [3]float32{0, 0, axis}, Color: axisZColor},
	)
	return out
}

// MarshalLineVertices serializes vertices into a little-endian vertex buffer.
//
// Parameters:
//   - vertices: the vertices to serialize
//
// Returns:
//   - []byte: the packed vertex data, LineVertexStride bytes per vertex
func MarshalLineVertices(vertices []LineVertex) []byte {
	buf := make([]byte, len(vertices)*LineVertexStride)
	for i, v := range vertices {
		base := i * LineVertexStride
		for j := range 3 {
			binary.LittleEndian.PutUint32(buf[base+j*4:], math.Float32bits(v.Position[j]))
			binary.LittleEndian.PutUint32(buf[base+12+j*4:], math.Float32bits(v.Color[j]))
		}
	}
	return buf
}
