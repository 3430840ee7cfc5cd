package charts

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type rgbColor struct{ r, g, b int }

// PiePalette is the fixed wedge palette; it repeats past eight slices.
var PiePalette = []string{"FF9999", "66B2FF", "99FF99", "FFCC99", "FF99CC", "99CCFF", "FFB366", "B3B3FF"}

var (
	black     = rgbColor{0x20, 0x20, 0x20}
	gridGray  = rgbColor{0xE0, 0xE0, 0xE0}
	axisGray  = rgbColor{0x60, 0x60, 0x60}
	skyBlue   = mustHex("87CEEB")
	navy      = mustHex("000080")
	coral     = mustHex("F08080")
	darkRed   = mustHex("8B0000")
	green     = mustHex("008000")
	lightGrn  = mustHex("90EE90")
	darkGrn   = mustHex("006400")
	purple    = mustHex("800080")
	indigo    = mustHex("4B0082")
	trendRed  = mustHex("DD0000")
	meanRed   = mustHex("FF0000")
	medianBlu = mustHex("0000FF")
	orange    = mustHex("FF8C00")
)

// viridis control points, evenly spaced over [0, 1].
var viridisStops = []rgbColor{
	{68, 1, 84},
	{59, 82, 139},
	{33, 145, 140},
	{94, 201, 98},
	{253, 231, 37},
}

func parseHexColor(s string) (rgbColor, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return rgbColor{}, fmt.Errorf("invalid color %q", s)
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return rgbColor{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return rgbColor{int(n >> 16 & 0xFF), int(n >> 8 & 0xFF), int(n & 0xFF)}, nil
}

func mustHex(s string) rgbColor {
	c, err := parseHexColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Viridis samples the viridis color map at t in [0, 1] and returns RRGGBB.
func Viridis(t float64) string {
	c := viridis(t)
	return fmt.Sprintf("%02X%02X%02X", c.r, c.g, c.b)
}

func viridis(t float64) rgbColor {
	t = math.Max(0, math.Min(1, t))
	pos := t * float64(len(viridisStops)-1)
	i := int(math.Floor(pos))
	if i >= len(viridisStops)-1 {
		return viridisStops[len(viridisStops)-1]
	}
	f := pos - float64(i)
	a, b := viridisStops[i], viridisStops[i+1]
	mix := func(x, y int) int { return int(math.Round(float64(x) + (float64(y)-float64(x))*f)) }
	return rgbColor{mix(a.r, b.r), mix(a.g, b.g), mix(a.b, b.b)}
}
