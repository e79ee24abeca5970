/*
Package slicer partitions true tracks into angular slices of the Hough
accumulator.

Slice boundaries are placed by easing functions, monotonic remappings of the
uniform [0,1] slice spacing that let slices near the detector edges be
narrower or wider to balance occupancy.
*/
package slicer

import (
	"fmt"
	"math"
	"sort"
	"sync"

	houghlite "github.com/swdee/go-houghlite"
)

// EasingFunc remaps a normalised slice boundary.  Implementations must be
// monotonic non-decreasing over [0,1] with ease(0)=0 and ease(1)=1
type EasingFunc func(x float64) float64

// Linear applies no remapping
func Linear(x float64) float64 {
	return x
}

// InSquare compresses boundaries quadratically towards zero
func InSquare(x float64) float64 {
	return x * x
}

// InCubic compresses boundaries cubically towards zero
func InCubic(x float64) float64 {
	return x * x * x
}

// InSine places boundaries along a quarter sine wave
func InSine(x float64) float64 {
	return 1 - math.Cos(x*math.Pi/2)
}

// InCirc places boundaries along a quarter circle arc
func InCirc(x float64) float64 {
	return 1 - math.Sqrt(1-x*x)
}

var (
	easingMu sync.RWMutex

	// easings is the registry of named easing strategies.  Registration
	// is last-write-wins
	easings = map[string]EasingFunc{
		"Linear":   Linear,
		"InSquare": InSquare,
		"InCubic":  InCubic,
		"InSine":   InSine,
		"InCirc":   InCirc,
	}
)

// Register adds or replaces the easing strategy stored under the given name
func Register(name string, fn EasingFunc) {
	easingMu.Lock()
	defer easingMu.Unlock()

	easings[name] = fn
}

// ForName returns the easing strategy registered under the given name
func ForName(name string) (EasingFunc, error) {
	easingMu.RLock()
	defer easingMu.RUnlock()

	fn, ok := easings[name]

	if !ok {
		return nil, fmt.Errorf("%w: %q, available: %v",
			houghlite.ErrUnknownStrategy, name, names())
	}

	return fn, nil
}

// Names returns the registered strategy names in sorted order
func Names() []string {
	easingMu.RLock()
	defer easingMu.RUnlock()

	return names()
}

func names() []string {

	out := make([]string, 0, len(easings))

	for name := range easings {
		out = append(out, name)
	}

	sort.Strings(out)

	return out
}
