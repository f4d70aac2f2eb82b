package band

import (
	"errors"
	"fmt"
	"math"
)

const (
	// MinValue is the indicator percent at or below which no band is selected.
	MinValue = 6
	// MaxValue is the indicator percent at or above which no band is selected.
	MaxValue = 100
	// NoSelection is returned when a percent does not fall inside a band.
	NoSelection = -1
)

// ErrUnsupportedCount reports a menu size the band tables do not cover.
var ErrUnsupportedCount = errors.New("unsupported menu item count")

// upper bounds (exclusive) for each band; band i covers [bounds[i-1], bounds[i])
// with the first band starting just above MinValue.
var tables = map[int][]int{
	2: {50, 100},
	3: {35, 68, 100},
	4: {27, 52, 77, 100},
	5: {22, 42, 62, 82, 100},
	6: {19, 34, 50, 66, 82, 100},
}

// Band describes one selectable range of the indicator.
type Band struct {
	Index int
	// Lo is inclusive except for the first band, which excludes MinValue.
	Lo int
	// Hi is exclusive.
	Hi int
}

// Contains reports whether percent falls inside the band.
func (b Band) Contains(percent int) bool {
	if percent <= MinValue {
		return false
	}
	return percent >= b.Lo && percent < b.Hi
}

// Validate reports whether count items can be mapped onto bands.
func Validate(count int) error {
	if _, ok := tables[count]; !ok {
		return fmt.Errorf("%w: %d (want %d-%d)", ErrUnsupportedCount, count, 2, 6)
	}
	return nil
}

// Map returns the band index selected by percent for a menu of count items,
// or NoSelection.
func Map(percent, count int) int {
	bounds, ok := tables[count]
	if !ok || percent <= MinValue || percent >= MaxValue {
		return NoSelection
	}
	for i, hi := range bounds {
		if percent < hi {
			return i
		}
	}
	return NoSelection
}

// Bands returns the band layout for count items, nil when unsupported.
func Bands(count int) []Band {
	bounds, ok := tables[count]
	if !ok {
		return nil
	}
	out := make([]Band, len(bounds))
	lo := MinValue
	for i, hi := range bounds {
		out[i] = Band{Index: i, Lo: lo, Hi: hi}
		lo = hi
	}
	return out
}

// Curve shapes a 0..1 pull fraction before it is turned into an indicator percent.
type Curve int

const (
	// CurveAccelerate squares the fraction so the indicator moves slowly at first.
	CurveAccelerate Curve = iota
	CurveLinear
)

// ParseCurve accepts "accelerate" or "linear".
func ParseCurve(name string) (Curve, error) {
	switch name {
	case "", "accelerate":
		return CurveAccelerate, nil
	case "linear":
		return CurveLinear, nil
	default:
		return CurveAccelerate, fmt.Errorf("unknown indicator curve %q", name)
	}
}

func (c Curve) String() string {
	if c == CurveLinear {
		return "linear"
	}
	return "accelerate"
}

func (c Curve) apply(f float64) float64 {
	if c == CurveLinear {
		return f
	}
	return f * f
}

// Indicator converts a pull fraction into the 0..100 indicator percent.
func Indicator(fraction float64, curve Curve) int {
	if fraction <= 0 || math.IsNaN(fraction) {
		return 0
	}
	if fraction > 1 {
		fraction = 1
	}
	return int(math.Round(MaxValue * curve.apply(fraction)))
}
