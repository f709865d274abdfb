package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/lignin-bsp/pkg/kernel"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpSolid wraps a kernel.Solid so it can flow between builtins.
type sexpSolid struct {
	solid kernel.Solid
	label string
}

func (s *sexpSolid) SexpString(ps *zygo.PrintState) string {
	if s.label != "" {
		return fmt.Sprintf("(solid %q)", s.label)
	}
	return "(solid)"
}
func (s *sexpSolid) Type() *zygo.RegisteredType { return nil }

// sexpVec3 carries a 3-component vector literal.
type sexpVec3 struct {
	x, y, z float64
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.x, v.y, v.z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW reports whether s is a preprocessed keyword and returns its name.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

// kwArgs holds a mixed positional and keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

func parseArgs(args []zygo.Sexp) kwArgs {
	out := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			out.positional = append(out.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			out.kw[name] = args[i+1]
			i++
		} else {
			out.kw[name] = zygo.SexpNull
		}
	}
	return out
}

// number returns keyword key if present, else positional argument pos,
// else def. A negative pos means keyword only.
func (a kwArgs) number(key string, pos int, def float64) (float64, error) {
	if v, ok := a.kw[key]; ok {
		f, err := toFloat64(v)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return f, nil
	}
	if pos >= 0 && pos < len(a.positional) {
		f, err := toFloat64(a.positional[pos])
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return f, nil
	}
	return def, nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

func toSolid(s zygo.Sexp) (kernel.Solid, error) {
	if v, ok := s.(*sexpSolid); ok {
		return v.solid, nil
	}
	return nil, fmt.Errorf("expected solid, got %T (%s)", s, s.SexpString(nil))
}

func toVec3(s zygo.Sexp) (*sexpVec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v, nil
	}
	return nil, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// vector reads a vec3 from keyword key or from the positional arguments
// starting at pos, which may hold either a vec3 or three numbers.
func (a kwArgs) vector(key string, pos int) (*sexpVec3, error) {
	if v, ok := a.kw[key]; ok {
		return toVec3(v)
	}
	rest := a.positional[min(pos, len(a.positional)):]
	switch len(rest) {
	case 1:
		return toVec3(rest[0])
	case 3:
		var xyz [3]float64
		for i, s := range rest {
			f, err := toFloat64(s)
			if err != nil {
				return nil, err
			}
			xyz[i] = f
		}
		return &sexpVec3{xyz[0], xyz[1], xyz[2]}, nil
	}
	return nil, fmt.Errorf("expected a vec3 or three numbers (or :%s)", key)
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the modeling builtins into a zygomys environment.
// Solids are built with k; defpart records parts into scene.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, k kernel.Kernel, segments int, scene *Scene) {

	// (vec3 x y z)
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3: expected 3 arguments, got %d", len(args))
		}
		var xyz [3]float64
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: %w", err)
			}
			xyz[i] = f
		}
		return &sexpVec3{xyz[0], xyz[1], xyz[2]}, nil
	})

	// (box 10 20 30) or (box :x 10 :y 20 :z 30)
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var dims [3]float64
		for i, key := range []string{"x", "y", "z"} {
			f, err := pa.number(key, i, 0)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("box: %w", err)
			}
			if f <= 0 {
				return zygo.SexpNull, fmt.Errorf("box: %s must be positive, got %g", key, f)
			}
			dims[i] = f
		}
		return &sexpSolid{solid: k.Box(dims[0], dims[1], dims[2])}, nil
	})

	// (cylinder :height 20 :radius 5 :segments 16)
	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		height, err := pa.number("height", 0, 0)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
		}
		radius, err := pa.number("radius", 1, 0)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
		}
		segs, err := pa.number("segments", 2, float64(segments))
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
		}
		if height <= 0 || radius <= 0 {
			return zygo.SexpNull, fmt.Errorf("cylinder: height and radius must be positive")
		}
		if segs < 3 {
			return zygo.SexpNull, fmt.Errorf("cylinder: segments must be at least 3, got %g", segs)
		}
		return &sexpSolid{solid: k.Cylinder(height, radius, int(segs))}, nil
	})

	// (translate solid (vec3 1 2 3)), (translate solid 1 2 3) or (translate solid :by v)
	env.AddFunction("translate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) == 0 {
			return zygo.SexpNull, fmt.Errorf("translate: missing solid")
		}
		s, err := toSolid(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("translate: %w", err)
		}
		v, err := pa.vector("by", 1)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("translate: %w", err)
		}
		return &sexpSolid{solid: k.Translate(s, v.x, v.y, v.z)}, nil
	})

	// (rotate solid (vec3 0 0 90)) with angles in degrees, or :by v
	env.AddFunction("rotate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) == 0 {
			return zygo.SexpNull, fmt.Errorf("rotate: missing solid")
		}
		s, err := toSolid(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate: %w", err)
		}
		v, err := pa.vector("by", 1)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate: %w", err)
		}
		return &sexpSolid{solid: k.Rotate(s, v.x, v.y, v.z)}, nil
	})

	// (union a b c ...), (difference a b ...), (intersection a b ...)
	// fold left over their arguments.
	booleans := map[string]func(a, b kernel.Solid) kernel.Solid{
		"union":        k.Union,
		"difference":   k.Difference,
		"intersection": k.Intersection,
	}
	for opName, op := range booleans {
		env.AddFunction(opName, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) < 2 {
				return zygo.SexpNull, fmt.Errorf("%s: expected at least 2 solids, got %d", name, len(args))
			}
			acc, err := toSolid(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: argument 1: %w", name, err)
			}
			for i, a := range args[1:] {
				next, err := toSolid(a)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("%s: argument %d: %w", name, i+2, err)
				}
				acc = op(acc, next)
			}
			return &sexpSolid{solid: acc}, nil
		})
	}

	// (defpart "name" solid)
	env.AddFunction("defpart", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("defpart: expected name and solid, got %d arguments", len(args))
		}
		partName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defpart: name: %w", err)
		}
		if partName == "" {
			return zygo.SexpNull, fmt.Errorf("defpart: name must not be empty")
		}
		s, err := toSolid(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defpart %q: %w", partName, err)
		}
		scene.Add(partName, s)
		return &sexpSolid{solid: s, label: partName}, nil
	})

	// (part "name")
	env.AddFunction("part", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("part: expected 1 argument, got %d", len(args))
		}
		partName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("part: %w", err)
		}
		s := scene.Lookup(partName)
		if s == nil {
			return zygo.SexpNull, fmt.Errorf("part: no part named %q", partName)
		}
		return &sexpSolid{solid: s, label: partName}, nil
	})
}
