package common

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Ease maps normalized progress in [0,1] to eased progress. Ease(0) must be 0
// and Ease(1) must be 1; overshooting curves may leave [0,1] in between.
type Ease func(t float64) float64

func Linear(t float64) float64 { return t }

// PowerIn returns the gsap-style powerN.in curve (t^(n+1)).
func PowerIn(n int) Ease {
	exp := float64(n + 1)
	return func(t float64) float64 {
		return math.Pow(t, exp)
	}
}

func PowerOut(n int) Ease {
	exp := float64(n + 1)
	return func(t float64) float64 {
		return 1 - math.Pow(1-t, exp)
	}
}

func PowerInOut(n int) Ease {
	exp := float64(n + 1)
	return func(t float64) float64 {
		if t < 0.5 {
			return math.Pow(2, exp-1) * math.Pow(t, exp)
		}
		return 1 - math.Pow(-2*t+2, exp)/2
	}
}

func SineInOut(t float64) float64 {
	return -(math.Cos(math.Pi*t) - 1) / 2
}

// BackOut overshoots past 1 before settling; s controls the overshoot.
func BackOut(s float64) Ease {
	return func(t float64) float64 {
		p := t - 1
		return p*p*((s+1)*p+s) + 1
	}
}

const defaultBackOvershoot = 1.70158

// ParseEase resolves a gsap-style ease name such as "power2.inOut",
// "back.out(1.7)", "sine.inOut" or "none". An empty name is linear.
func ParseEase(name string) (Ease, error) {
	raw := strings.TrimSpace(name)
	if raw == "" {
		return Linear, nil
	}

	base, arg, hasArg, err := splitEaseArg(raw)
	if err != nil {
		return nil, err
	}
	base = strings.ToLower(base)

	if base == "none" || base == "linear" {
		return Linear, nil
	}

	family, variant, ok := strings.Cut(base, ".")
	if !ok {
		variant = "out"
	}

	switch family {
	case "power0":
		return Linear, nil
	case "power1", "power2", "power3", "power4":
		n := int(family[len(family)-1] - '0')
		switch variant {
		case "in":
			return PowerIn(n), nil
		case "out":
			return PowerOut(n), nil
		case "inout":
			return PowerInOut(n), nil
		}
	case "sine":
		if variant == "inout" {
			return SineInOut, nil
		}
		if variant == "in" {
			return func(t float64) float64 { return 1 - math.Cos(t*math.Pi/2) }, nil
		}
		if variant == "out" {
			return func(t float64) float64 { return math.Sin(t * math.Pi / 2) }, nil
		}
	case "back":
		if variant == "out" {
			s := defaultBackOvershoot
			if hasArg {
				s = arg
			}
			return BackOut(s), nil
		}
	}
	return nil, fmt.Errorf("common: unknown ease %q", name)
}

// MustEase is ParseEase for names known at compile time.
func MustEase(name string) Ease {
	e, err := ParseEase(name)
	if err != nil {
		panic(err)
	}
	return e
}

func splitEaseArg(raw string) (string, float64, bool, error) {
	open := strings.IndexByte(raw, '(')
	if open < 0 {
		return raw, 0, false, nil
	}
	if !strings.HasSuffix(raw, ")") {
		return "", 0, false, fmt.Errorf("common: malformed ease %q", raw)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw[open+1:len(raw)-1]), 64)
	if err != nil {
		return "", 0, false, fmt.Errorf("common: ease %q: %w", raw, err)
	}
	return raw[:open], v, true, nil
}
