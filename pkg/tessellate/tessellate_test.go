package tessellate_test

import (
	"math"
	"testing"

	"github.com/chazu/lignin-bsp/pkg/csg"
	"github.com/chazu/lignin-bsp/pkg/engine"
	"github.com/chazu/lignin-bsp/pkg/kernel"
	"github.com/chazu/lignin-bsp/pkg/kernel/bsp"
	"github.com/chazu/lignin-bsp/pkg/kernel/sdfx"
	"github.com/chazu/lignin-bsp/pkg/tessellate"
)

// newKernel returns a fresh bsp kernel for testing.
func newKernel() kernel.Kernel {
	return bsp.New()
}

func TestNilScene(t *testing.T) {
	meshes, err := tessellate.Tessellate(nil, newKernel())
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if meshes != nil {
		t.Errorf("expected nil meshes, got %d", len(meshes))
	}
}

func TestEmptyScene(t *testing.T) {
	meshes, err := tessellate.Tessellate(engine.NewScene(), newKernel())
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(meshes) != 0 {
		t.Errorf("expected no meshes, got %d", len(meshes))
	}
}

func TestSingleBox(t *testing.T) {
	k := newKernel()
	s := engine.NewScene()
	s.Add("shelf", k.Box(600, 300, 18))

	meshes, err := tessellate.Tessellate(s, k)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(meshes))
	}

	m := meshes[0]
	if m.IsEmpty() {
		t.Fatal("mesh should not be empty")
	}
	if m.PartName != "shelf" {
		t.Errorf("expected PartName %q, got %q", "shelf", m.PartName)
	}
	if m.TriangleCount() != 12 {
		t.Errorf("expected 12 triangles, got %d", m.TriangleCount())
	}
	if got := csg.SignedVolume(m.Faces()); math.Abs(got-600*300*18) > 1e-6 {
		t.Errorf("volume = %f, want %f", got, 600.0*300*18)
	}
}

func TestPartOrderAndNames(t *testing.T) {
	k := newKernel()
	s := engine.NewScene()
	s.Add("left", k.Box(1, 1, 1))
	s.Add("right", k.Translate(k.Box(1, 1, 1), 5, 0, 0))
	s.Add("post", k.Cylinder(10, 1, 8))

	meshes, err := tessellate.Tessellate(s, k)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	want := []string{"left", "right", "post"}
	if len(meshes) != len(want) {
		t.Fatalf("expected %d meshes, got %d", len(want), len(meshes))
	}
	for i, name := range want {
		if meshes[i].PartName != name {
			t.Errorf("mesh %d: PartName %q, want %q", i, meshes[i].PartName, name)
		}
	}
	if got := tessellate.TriangleCount(meshes); got != 12+12+32 {
		t.Errorf("TriangleCount = %d, want 56", got)
	}
}

func TestEmptyPartKeepsMesh(t *testing.T) {
	k := newKernel()
	s := engine.NewScene()
	s.Add("nothing", k.Intersection(k.Box(1, 1, 1), k.Translate(k.Box(1, 1, 1), 3, 0, 0)))

	meshes, err := tessellate.Tessellate(s, k)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(meshes))
	}
	if !meshes[0].IsEmpty() {
		t.Errorf("expected empty mesh, got %d triangles", meshes[0].TriangleCount())
	}
}

func TestNilSolidIsError(t *testing.T) {
	s := engine.NewScene()
	s.Add("broken", nil)
	if _, err := tessellate.Tessellate(s, newKernel()); err == nil {
		t.Fatal("expected error for part without a solid")
	}
}

func TestScriptThroughSdfx(t *testing.T) {
	k := sdfx.NewWithCells(32)
	s, evalErrs, err := engine.NewEngine(k).Evaluate(`
(defpart "plate" (difference (box 40 40 10) (translate (cylinder 20 5) 20 20 5)))
`)
	if err != nil || len(evalErrs) > 0 {
		t.Fatalf("evaluate: %v %v", err, evalErrs)
	}
	meshes, err := tessellate.Tessellate(s, k)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(meshes) != 1 || meshes[0].IsEmpty() {
		t.Fatalf("expected one non-empty mesh, got %v", meshes)
	}
	if meshes[0].PartName != "plate" {
		t.Errorf("PartName = %q", meshes[0].PartName)
	}
}
