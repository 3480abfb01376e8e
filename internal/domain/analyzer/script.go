package analyzer

import (
	"fmt"
	"math"
	"strings"

	lua "github.com/Shopify/go-lua"
)

// scriptEntryPoint is the global the density script must define.
const scriptEntryPoint = "density"

// scriptLibraries are the only standard libraries a density script can use.
var scriptLibraries = []lua.RegistryFunction{
	{Name: "_G", Function: lua.BaseOpen},
	{Name: "math", Function: lua.MathOpen},
}

// scriptBlockedGlobals are base library functions that reach the filesystem.
var scriptBlockedGlobals = []string{"dofile", "loadfile"}

// ScriptNormalizer evaluates a Lua function
//
//	function density(region, count, total, peak) return ... end
//
// for every region. Each analysis runs the script in a fresh interpreter
// with only the base and math libraries, so globals never leak between runs.
type ScriptNormalizer struct {
	src string
}

// NewScriptNormalizer compiles src and checks that it defines density.
func NewScriptNormalizer(src string) (*ScriptNormalizer, error) {
	if strings.TrimSpace(src) == "" {
		return nil, fmt.Errorf("%w: empty script", ErrScript)
	}
	if _, err := newScriptRun(src); err != nil {
		return nil, err
	}
	return &ScriptNormalizer{src: src}, nil
}

// Begin starts a new interpreter for one analysis.
func (n *ScriptNormalizer) Begin() (Normalizer, error) {
	return newScriptRun(n.src)
}

// Normalize evaluates a single region in its own interpreter.
func (n *ScriptNormalizer) Normalize(region string, count, total, peak int) (float64, error) {
	run, err := newScriptRun(n.src)
	if err != nil {
		return 0, err
	}
	return run.Normalize(region, count, total, peak)
}

// scriptRun is one loaded interpreter. It must not be shared between goroutines.
type scriptRun struct {
	state *lua.State
}

func newScriptRun(src string) (*scriptRun, error) {
	state := lua.NewState()
	for _, lib := range scriptLibraries {
		lua.Require(state, lib.Name, lib.Function, true)
		state.Pop(1)
	}
	for _, name := range scriptBlockedGlobals {
		state.PushNil()
		state.SetGlobal(name)
	}

	if err := lua.DoString(state, src); err != nil {
		return nil, fmt.Errorf("%w: load: %v", ErrScript, err)
	}
	state.Global(scriptEntryPoint)
	defined := state.IsFunction(-1)
	state.Pop(1)
	if !defined {
		return nil, fmt.Errorf("%w: script does not define function %q", ErrScript, scriptEntryPoint)
	}
	return &scriptRun{state: state}, nil
}

// Normalize calls the script's density function.
func (r *scriptRun) Normalize(region string, count, total, peak int) (float64, error) {
	l := r.state
	l.Global(scriptEntryPoint)
	l.PushString(region)
	l.PushInteger(count)
	l.PushInteger(total)
	l.PushInteger(peak)
	if err := l.ProtectedCall(4, 1, 0); err != nil {
		l.Pop(1)
		return 0, fmt.Errorf("%w: region %q: %v", ErrScript, region, err)
	}
	v, ok := l.ToNumber(-1)
	l.Pop(1)
	if !ok {
		return 0, fmt.Errorf("%w: region %q: density must return a number", ErrScript, region)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: region %q: density returned %v", ErrScript, region, v)
	}
	return v, nil
}
