package prefabs

import (
	"math"
	"testing"

	"github.com/milk9111/starfolio/common"
	"github.com/milk9111/starfolio/section"
	"github.com/milk9111/starfolio/transition"
)

func TestSceneSpecMatchesDefaults(t *testing.T) {
	spec, err := LoadSceneSpec()
	if err != nil {
		t.Fatalf("LoadSceneSpec: %v", err)
	}
	cfg, err := spec.AnimationConfig()
	if err != nil {
		t.Fatalf("AnimationConfig: %v", err)
	}

	def := transition.DefaultConfig()
	for _, sec := range section.All {
		if cfg.Transition.Ships[sec] != def.Ships[sec] {
			t.Fatalf("ship %s = %+v, want %+v", sec, cfg.Transition.Ships[sec], def.Ships[sec])
		}
	}
	if cfg.Transition.BlackHole != def.BlackHole {
		t.Fatalf("black hole = %+v", cfg.Transition.BlackHole)
	}
	if cfg.Transition.ShakeInto != def.ShakeInto || cfg.Transition.ReverseScale != 1.5 {
		t.Fatalf("shake/reverse config differs")
	}
	if got, want := cfg.Transition.HeroSchedule.Phases, def.HeroSchedule.Phases; len(got) != len(want) {
		t.Fatalf("hero schedule has %d phases", len(got))
	} else {
		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("hero phase %d = %+v, want %+v", i, got[i], want[i])
			}
		}
	}
	if len(cfg.Spans) != len(section.All) {
		t.Fatalf("spans = %v", cfg.Spans)
	}
	if cfg.Camera.Initial != common.V3(0, 2, 12) {
		t.Fatalf("camera initial = %v", cfg.Camera.Initial)
	}
	if spec.Contact == "" || len(spec.Objects) == 0 {
		t.Fatalf("scene spec missing contact or objects")
	}
}

func TestAnimationConfigRejectsBadSchedule(t *testing.T) {
	spec, err := LoadSceneSpec()
	if err != nil {
		t.Fatalf("LoadSceneSpec: %v", err)
	}
	spec.Schedules = map[string][]transition.PhaseSpec{
		"default": {{Phase: transition.PhaseSetup, Start: 0}},
	}
	if _, err := spec.AnimationConfig(); err == nil {
		t.Fatalf("expected invalid schedule error")
	}
}

func TestScriptEases(t *testing.T) {
	for _, name := range []string{"smoothstep", "elastic_out"} {
		t.Run(name, func(t *testing.T) {
			e, err := LoadScriptEase(name)
			if err != nil {
				t.Fatalf("LoadScriptEase: %v", err)
			}
			if e(0) != 0 || e(1) != 1 {
				t.Fatalf("endpoints %v %v", e(0), e(1))
			}
		})
	}

	e, err := LoadScriptEase("smoothstep")
	if err != nil {
		t.Fatalf("LoadScriptEase: %v", err)
	}
	if got := e(0.25); math.Abs(got-0.15625) > 1e-3 {
		t.Fatalf("smoothstep(0.25) = %v", got)
	}
}

func TestCompileEaseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"syntax", "ease := func(t) { return t +"},
		{"no_ease_func", "x := 1"},
		{"bad_endpoints", "ease := func(t) { return t * 0.5 }"},
		{"not_a_number", "ease := func(t) { return \"fast\" }"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := compileEase(c.name, []byte(c.src)); err == nil {
				t.Fatalf("expected error for %q", c.src)
			}
		})
	}

	e, err := compileEase("linear", []byte("ease := func(t) { return t }"))
	if err != nil {
		t.Fatalf("compileEase: %v", err)
	}
	if got := e(0.4); math.Abs(got-0.4) > 1e-9 {
		t.Fatalf("linear(0.4) = %v", got)
	}
}

func TestEaseResolver(t *testing.T) {
	r := NewEaseResolver()
	if _, err := r.Resolve("power2.inOut"); err != nil {
		t.Fatalf("builtin ease: %v", err)
	}
	a, err := r.Resolve("script:smoothstep")
	if err != nil {
		t.Fatalf("script ease: %v", err)
	}
	b, _ := r.Resolve("script:smoothstep")
	if a(0.3) != b(0.3) {
		t.Fatalf("cached ease differs")
	}
	if _, err := r.Resolve("script:does_not_exist"); err == nil {
		t.Fatalf("expected error for missing script")
	}
}

func TestDecodeComponentSpec(t *testing.T) {
	raw := map[string]any{"position": []any{1, 2, 3}, "scale": []any{0.5}}
	got, err := DecodeComponentSpec[TransformComponentSpec](raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Position != common.V3(1, 2, 3) || got.Scale == nil || *got.Scale != common.Uniform(0.5) {
		t.Fatalf("decoded %+v", got)
	}
}

func TestCleanScriptPath(t *testing.T) {
	cases := map[string]string{
		"smoothstep":                       "scripts/smoothstep.tengo",
		"prefabs/scripts/smoothstep.tengo": "scripts/smoothstep.tengo",
		"scripts/elastic_out":              "scripts/elastic_out.tengo",
	}
	for in, want := range cases {
		if got := cleanScriptPath(in); got != want {
			t.Fatalf("cleanScriptPath(%q) = %q, want %q", in, got, want)
		}
	}
}
