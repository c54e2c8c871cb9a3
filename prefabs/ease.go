package prefabs

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/starfolio/common"
)

// ScriptEasePrefix marks an ease name that refers to a script in
// prefabs/scripts, e.g. "script:elastic_out".
const ScriptEasePrefix = "script:"

const easeSamples = 256

const easeDispatchScript = `
__out := ease(__t)
`

// LoadScriptEase compiles the named script and samples its ease(t) function.
// The curve must start at 0 and end at 1.
func LoadScriptEase(name string) (common.Ease, error) {
	src, err := LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("prefabs: ease script %s: %w", name, err)
	}
	return compileEase(name, src)
}

// compileEase samples the ease(t) function defined by src.
func compileEase(name string, src []byte) (common.Ease, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + easeDispatchScript))
	if err := script.Add("__t", 0.0); err != nil {
		return nil, fmt.Errorf("prefabs: ease %s: %w", name, err)
	}
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("prefabs: compile ease %s: %w", name, err)
	}

	samples := make([]float64, easeSamples+1)
	for i := range samples {
		if err := compiled.Set("__t", float64(i)/easeSamples); err != nil {
			return nil, fmt.Errorf("prefabs: ease %s: %w", name, err)
		}
		if err := compiled.Run(); err != nil {
			return nil, fmt.Errorf("prefabs: run ease %s: %w", name, err)
		}
		v := compiled.Get("__out").Float()
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("prefabs: ease %s returned %v at sample %d", name, v, i)
		}
		samples[i] = v
	}
	if math.Abs(samples[0]) > 1e-6 || math.Abs(samples[easeSamples]-1) > 1e-6 {
		return nil, fmt.Errorf("prefabs: ease %s must map 0->0 and 1->1, got %v and %v", name, samples[0], samples[easeSamples])
	}
	samples[0], samples[easeSamples] = 0, 1

	return func(t float64) float64 {
		pos := common.Clamp01(t) * easeSamples
		i := int(pos)
		if i >= easeSamples {
			return samples[easeSamples]
		}
		return common.Lerp(samples[i], samples[i+1], pos-float64(i))
	}, nil
}

// EaseResolver resolves built-in ease names and scripted ones. Scripts are
// compiled once per resolver.
type EaseResolver struct {
	mu    sync.Mutex
	cache map[string]common.Ease
}

func NewEaseResolver() *EaseResolver {
	return &EaseResolver{cache: make(map[string]common.Ease)}
}

func (r *EaseResolver) Resolve(name string) (common.Ease, error) {
	script, ok := strings.CutPrefix(strings.TrimSpace(name), ScriptEasePrefix)
	if !ok {
		return common.ParseEase(name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.cache[script]; ok {
		return e, nil
	}
	e, err := LoadScriptEase(script)
	if err != nil {
		return nil, err
	}
	r.cache[script] = e
	return e, nil
}
