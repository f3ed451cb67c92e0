// Package si parses and formats the SI-suffixed value strings used by
// design variables ("5n", "20f", "1000", "1.0").
package si

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// unitMap maps a suffix to its multiplier. "M" and "meg" both read as
// mega, per ADE expression conventions.
var unitMap = map[string]float64{
	"T":   1e12,
	"G":   1e9,
	"M":   1e6,
	"meg": 1e6,
	"K":   1e3,
	"k":   1e3,
	"m":   1e-3,
	"u":   1e-6,
	"n":   1e-9,
	"p":   1e-12,
	"f":   1e-15,
}

// valueRe matches a decimal number, an optional SI suffix, and an
// optional trailing unit "s" ("100ps" reads the same as "100p").
var valueRe = regexp.MustCompile(`^([-+]?\d*\.?\d+)(meg|[TGMKkmunpf])?s?$`)

// Parse converts an SI-suffixed value string to a float.
func Parse(val string) (float64, error) {
	matches := valueRe.FindStringSubmatch(strings.TrimSpace(val))
	if matches == nil {
		return 0, fmt.Errorf("invalid value format: %s", val)
	}

	num, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, err
	}

	if matches[2] != "" {
		num *= unitMap[matches[2]]
	}

	return num, nil
}

// IsNumeric reports whether val parses as an SI-suffixed number.
func IsNumeric(val string) bool {
	_, err := Parse(val)
	return err == nil
}

// suffixes in descending multiplier order, for Format.
var suffixes = []struct {
	mult   float64
	suffix string
}{
	{1e12, "T"},
	{1e9, "G"},
	{1e6, "M"},
	{1e3, "K"},
	{1, ""},
	{1e-3, "m"},
	{1e-6, "u"},
	{1e-9, "n"},
	{1e-12, "p"},
	{1e-15, "f"},
}

// Format renders v in engineering notation with the largest suffix that
// keeps the mantissa at or above one, e.g. 5e-9 -> "5n". Magnitudes
// below femto fall back to scientific notation.
func Format(v float64) string {
	if v == 0 {
		return "0"
	}
	abs := math.Abs(v)
	for _, s := range suffixes {
		if abs >= s.mult {
			scaled := v / s.mult
			return strconv.FormatFloat(scaled, 'g', 12, 64) + s.suffix
		}
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
