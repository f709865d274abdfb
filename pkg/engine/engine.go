// Package engine provides the Lisp evaluation engine for lignin-bsp.
// It wraps zygomys in a sandboxed environment and produces a Scene of named
// solids from user source code, using whatever geometry kernel it is given.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chazu/lignin-bsp/internal/logger"
	"github.com/chazu/lignin-bsp/pkg/kernel"
	zygo "github.com/glycerine/zygomys/zygo"
	"go.uber.org/zap"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine wraps the zygomys interpreter for scene evaluation.
// It is safe for concurrent use; each call to Evaluate creates a fresh
// sandboxed environment for determinism.
type Engine struct {
	kernel kernel.Kernel

	// Segments is the cylinder side count used when a script does not
	// pass :segments.
	Segments int

	mu         sync.Mutex
	generation uint64
}

// NewEngine creates a new Engine that builds solids with k.
func NewEngine(k kernel.Kernel) *Engine {
	return &Engine{kernel: k, Segments: 32}
}

// Kernel returns the geometry kernel the engine evaluates against.
func (e *Engine) Kernel() kernel.Kernel {
	return e.kernel
}

// Evaluate takes Lisp source code and produces a new Scene.
// Each call creates a fresh zygomys sandbox for deterministic evaluation.
//
// Return semantics:
//   - On success: returns scene + nil errors + nil error
//   - On parse/eval failure: returns nil scene + eval errors + nil error
//   - On fatal failure (timeout, panic): returns nil + nil + error
func (e *Engine) Evaluate(source string) (*Scene, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	logger.Debug("evaluation started",
		zap.Uint64("generation", gen),
		zap.String("kernel", e.kernel.Name()),
		zap.Int("bytes", len(source)),
	)
	start := time.Now()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		s, evalErrs, err := e.evaluate(source)
		ch <- evalResult{scene: s, errors: evalErrs, err: err}
	}()

	scene, evalErrs, err := waitWithTimeout(ch, gen, &e.mu, &e.generation)
	switch {
	case err != nil:
		logger.Error("evaluation failed", zap.Uint64("generation", gen), zap.Error(err))
	case len(evalErrs) > 0:
		logger.Debug("evaluation finished with script errors",
			zap.Uint64("generation", gen),
			zap.Int("errors", len(evalErrs)),
			zap.Duration("took", time.Since(start)),
		)
	default:
		logger.Debug("evaluation finished",
			zap.Uint64("generation", gen),
			zap.Int("parts", scene.Len()),
			zap.Duration("took", time.Since(start)),
		)
	}
	return scene, evalErrs, err
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (*Scene, []EvalError, error) {
	scene := NewScene()

	// Empty source is a valid program that produces an empty scene.
	if strings.TrimSpace(source) == "" {
		return scene, nil, nil
	}

	// Sandbox mode prevents user code from accessing the filesystem or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	registerBuiltins(env, e.kernel, e.Segments, scene)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}

	return scene, nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError values,
// pulling a line number out of the message when there is one.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
		}
	}

	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
