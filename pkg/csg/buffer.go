package csg

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Flat buffer layout, little endian:
//
//	vertex = pos[3]f32 normal[3]f32 uv[2]f32 color[4]u8 color2[4]u8
//	face   = vertex[3]
const (
	VertexSize = 8*4 + 2*4
	FaceSize   = 3 * VertexSize
)

var (
	ErrShortBuffer   = errors.New("csg: buffer shorter than face count")
	ErrNegativeCount = errors.New("csg: negative face count")
)

// EncodeFaces packs faces into a newly allocated flat buffer.
func EncodeFaces(faces []Face) []byte {
	buf := make([]byte, len(faces)*FaceSize)
	off := 0
	for _, f := range faces {
		for _, v := range f {
			off = putVertex(buf, off, v)
		}
	}
	return buf
}

// DecodeFaces reads count faces from buf. Trailing bytes are ignored.
func DecodeFaces(buf []byte, count int) ([]Face, error) {
	if count < 0 {
		return nil, ErrNegativeCount
	}
	if count > len(buf)/FaceSize {
		return nil, fmt.Errorf("%w: have %d bytes, need %d per face for %d faces",
			ErrShortBuffer, len(buf), FaceSize, count)
	}
	faces := make([]Face, count)
	off := 0
	for i := range faces {
		for j := 0; j < 3; j++ {
			faces[i][j], off = getVertex(buf, off)
		}
	}
	return faces, nil
}

// CombineBuffers is the flat-buffer entry point: it decodes two face
// buffers, applies op and returns a newly allocated buffer of the result
// together with its face count. The caller owns the returned buffer.
func CombineBuffers(op Op, a []byte, na int, b []byte, nb int) ([]byte, int, error) {
	fa, err := DecodeFaces(a, na)
	if err != nil {
		return nil, 0, fmt.Errorf("decoding first operand: %w", err)
	}
	fb, err := DecodeFaces(b, nb)
	if err != nil {
		return nil, 0, fmt.Errorf("decoding second operand: %w", err)
	}
	out, err := Combine(op, fa, fb)
	if err != nil {
		return nil, 0, err
	}
	return EncodeFaces(out), len(out), nil
}

func putVertex(buf []byte, off int, v Vertex) int {
	for _, x := range [8]float64{
		v.Pos.X, v.Pos.Y, v.Pos.Z,
		v.Normal.X, v.Normal.Y, v.Normal.Z,
		v.UV.X, v.UV.Y,
	} {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(float32(x)))
		off += 4
	}
	copy(buf[off:], []byte{v.Color.R, v.Color.G, v.Color.B, v.Color.A,
		v.Color2.R, v.Color2.G, v.Color2.B, v.Color2.A})
	return off + 8
}

func getVertex(buf []byte, off int) (Vertex, int) {
	var f [8]float64
	for i := range f {
		f[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[off:])))
		off += 4
	}
	c := buf[off : off+8]
	v := Vertex{
		Pos:    v3.Vec{X: f[0], Y: f[1], Z: f[2]},
		Normal: v3.Vec{X: f[3], Y: f[4], Z: f[5]},
		UV:     v2.Vec{X: f[6], Y: f[7]},
	}
	v.Color.R, v.Color.G, v.Color.B, v.Color.A = c[0], c[1], c[2], c[3]
	v.Color2.R, v.Color2.G, v.Color2.B, v.Color2.A = c[4], c[5], c[6], c[7]
	return v, off + 8
}
