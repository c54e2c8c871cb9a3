package common

import (
	"math"
	"testing"
)

func TestParseEaseEndpoints(t *testing.T) {
	names := []string{
		"", "none", "linear", "power1.in", "power1.out", "power1.inOut",
		"power2.in", "power2.out", "power2.inOut", "power3.inOut",
		"sine.in", "sine.out", "sine.inOut", "back.out", "back.out(1.7)", "power2",
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			e, err := ParseEase(name)
			if err != nil {
				t.Fatalf("ParseEase(%q): %v", name, err)
			}
			if got := e(0); math.Abs(got) > 1e-9 {
				t.Fatalf("ease(0) = %v, want 0", got)
			}
			if got := e(1); math.Abs(got-1) > 1e-9 {
				t.Fatalf("ease(1) = %v, want 1", got)
			}
		})
	}
}

func TestParseEaseRejectsUnknown(t *testing.T) {
	for _, name := range []string{"bounce.out", "back.in", "power2.out(", "back.out(abc)"} {
		if _, err := ParseEase(name); err == nil {
			t.Fatalf("ParseEase(%q) should fail", name)
		}
	}
}

func TestBackOutOvershoots(t *testing.T) {
	e := MustEase("back.out(1.7)")
	peak := 0.0
	for i := 0; i <= 100; i++ {
		if v := e(float64(i) / 100); v > peak {
			peak = v
		}
	}
	if peak <= 1 {
		t.Fatalf("expected overshoot above 1, peak=%v", peak)
	}
}

func TestPowerInOutSymmetric(t *testing.T) {
	e := PowerInOut(2)
	if got := e(0.5); math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("inOut(0.5) = %v, want 0.5", got)
	}
	if a, b := e(0.25), 1-e(0.75); math.Abs(a-b) > 1e-9 {
		t.Fatalf("inOut not symmetric: %v vs %v", a, b)
	}
}

func TestVec3Lerp(t *testing.T) {
	a := V3(0, 4, -10)
	b := V3(-13, 4, 0)
	if got := a.Lerp(b, 0); got != a {
		t.Fatalf("lerp(0) = %v", got)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Fatalf("lerp(1) = %v", got)
	}
	if got := a.Lerp(b, 0.5); !got.ApproxEqual(V3(-6.5, 4, -5), 1e-12) {
		t.Fatalf("lerp(0.5) = %v", got)
	}
}
