package csg

import (
	"errors"
	"image/color"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

func TestEncodeDecodeFaces(t *testing.T) {
	v := func(x, y, z float64, c uint8) Vertex {
		return Vertex{
			Pos:    v3.Vec{X: x, Y: y, Z: z},
			Normal: v3.Vec{Z: 1},
			UV:     v2.Vec{X: x / 2, Y: y / 4},
			Color:  color.RGBA{R: c, G: 2, B: 3, A: 255},
			Color2: color.RGBA{R: 9, G: 8, B: 7, A: c},
		}
	}
	in := []Face{
		{v(0, 0, 0, 1), v(1, 0, 0, 2), v(0, 1, 0, 3)},
		{v(0.5, 0.25, -2, 4), v(8, 0, 1, 5), v(0, -16, 0.125, 6)},
	}

	buf := EncodeFaces(in)
	if len(buf) != len(in)*FaceSize {
		t.Fatalf("buffer length = %d, want %d", len(buf), len(in)*FaceSize)
	}
	out, err := DecodeFaces(buf, len(in))
	if err != nil {
		t.Fatalf("DecodeFaces() error = %v", err)
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("face %d = %+v, want %+v", i, out[i], in[i])
		}
	}
}

func TestDecodeFacesErrors(t *testing.T) {
	buf := EncodeFaces(unitCube(0))

	if _, err := DecodeFaces(buf[:FaceSize*3-1], 3); !errors.Is(err, ErrShortBuffer) {
		t.Errorf("short buffer error = %v, want ErrShortBuffer", err)
	}
	// A count whose byte size overflows int must be rejected, not allocated.
	if _, err := DecodeFaces(make([]byte, 10), 1<<62); !errors.Is(err, ErrShortBuffer) {
		t.Errorf("huge count error = %v, want ErrShortBuffer", err)
	}
	if _, err := DecodeFaces(buf, -1); !errors.Is(err, ErrNegativeCount) {
		t.Errorf("negative count error = %v, want ErrNegativeCount", err)
	}
	faces, err := DecodeFaces(nil, 0)
	if err != nil || len(faces) != 0 {
		t.Errorf("DecodeFaces(nil, 0) = %d faces, %v; want 0, nil", len(faces), err)
	}
}

func TestCombineBuffers(t *testing.T) {
	a, b := unitCube(0), unitCube(0.5)
	out, n, err := CombineBuffers(OpUnion, EncodeFaces(a), len(a), EncodeFaces(b), len(b))
	if err != nil {
		t.Fatalf("CombineBuffers() error = %v", err)
	}
	if len(out) != n*FaceSize {
		t.Fatalf("buffer length = %d for %d faces", len(out), n)
	}
	faces, err := DecodeFaces(out, n)
	if err != nil {
		t.Fatalf("DecodeFaces() error = %v", err)
	}
	assertNear(t, "volume", SignedVolume(faces), 1.875, 1e-6)
}

func TestCombineBuffersEmptyResult(t *testing.T) {
	a, b := unitCube(0), unitCube(3)
	out, n, err := CombineBuffers(OpIntersect, EncodeFaces(a), len(a), EncodeFaces(b), len(b))
	if err != nil {
		t.Fatalf("CombineBuffers() error = %v", err)
	}
	if n != 0 || len(out) != 0 {
		t.Errorf("CombineBuffers() = %d faces in %d bytes, want empty", n, len(out))
	}
}

func TestCombineBuffersBadInput(t *testing.T) {
	a := EncodeFaces(unitCube(0))
	if _, _, err := CombineBuffers(OpUnion, a, 13, a, 12); !errors.Is(err, ErrShortBuffer) {
		t.Errorf("error = %v, want ErrShortBuffer", err)
	}
	if _, _, err := CombineBuffers(Op(9), a, 12, a, 12); err == nil {
		t.Error("unknown op: error = nil, want error")
	}
}
