package xlsxreport

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"
)

// ColorScale is a three-stop heat map: minimum, a percentile midpoint and maximum.
type ColorScale struct {
	MinColor      string
	MidColor      string
	MaxColor      string
	MidPercentile float64
}

// DefaultColorScale runs red through yellow to green with the midpoint at the median.
func DefaultColorScale() ColorScale {
	return ColorScale{
		MinColor:      "AA0000",
		MidColor:      "FFFF00",
		MaxColor:      "00AA00",
		MidPercentile: 50,
	}
}

// Validate checks the stop colors and percentile.
func (s ColorScale) Validate() error {
	for _, c := range []string{s.MinColor, s.MidColor, s.MaxColor} {
		if _, err := parseHex(c); err != nil {
			return err
		}
	}
	if s.MidPercentile <= 0 || s.MidPercentile >= 100 {
		return fmt.Errorf("mid percentile must be between 0 and 100, got %v", s.MidPercentile)
	}
	return nil
}

// ColorFor returns the RRGGBB color a spreadsheet shows for v when the scale
// covers values. With no spread in values every cell gets the mid color.
func (s ColorScale) ColorFor(values []float64, v float64) (string, error) {
	if len(values) == 0 {
		return "", fmt.Errorf("color scale needs at least one value")
	}

	data := stats.Float64Data(values)
	lo, err := stats.Min(data)
	if err != nil {
		return "", err
	}
	hi, err := stats.Max(data)
	if err != nil {
		return "", err
	}
	mid, err := s.midpoint(data)
	if err != nil {
		return "", err
	}

	minRGB, err := parseHex(s.MinColor)
	if err != nil {
		return "", err
	}
	midRGB, err := parseHex(s.MidColor)
	if err != nil {
		return "", err
	}
	maxRGB, err := parseHex(s.MaxColor)
	if err != nil {
		return "", err
	}

	switch {
	case lo == hi:
		return formatHex(midRGB), nil
	case v <= lo:
		return formatHex(minRGB), nil
	case v >= hi:
		return formatHex(maxRGB), nil
	case v < mid:
		return formatHex(lerp(minRGB, midRGB, (v-lo)/(mid-lo))), nil
	default:
		return formatHex(lerp(midRGB, maxRGB, (v-mid)/(hi-mid))), nil
	}
}

func (s ColorScale) midpoint(data stats.Float64Data) (float64, error) {
	if s.MidPercentile == 50 {
		return stats.Median(data)
	}
	return stats.Percentile(data, s.MidPercentile)
}

type rgb [3]float64

func parseHex(color string) (rgb, error) {
	c := strings.TrimPrefix(strings.TrimSpace(color), "#")
	if len(c) != 6 {
		return rgb{}, fmt.Errorf("invalid color %q: want RRGGBB", color)
	}
	n, err := strconv.ParseUint(c, 16, 32)
	if err != nil {
		return rgb{}, fmt.Errorf("invalid color %q: %w", color, err)
	}
	return rgb{float64(n >> 16 & 0xFF), float64(n >> 8 & 0xFF), float64(n & 0xFF)}, nil
}

func formatHex(c rgb) string {
	return fmt.Sprintf("%02X%02X%02X", uint8(c[0]+0.5), uint8(c[1]+0.5), uint8(c[2]+0.5))
}

func lerp(a, b rgb, t float64) rgb {
	var out rgb
	for i := range out {
		out[i] = a[i] + (b[i]-a[i])*t
	}
	return out
}

// normalizeColor returns an upper-case RRGGBB without a leading '#'.
func normalizeColor(color string) string {
	return strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(color), "#"))
}
