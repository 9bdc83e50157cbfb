package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	_  = iota // ignore first value
	KB = 1 << (10 * iota)
	MB
	GB
	TB
)

// Helper to format bytes into human-readable units
// Helper to format bytes into human-readable units, avoiding .00 for whole numbers
func FormatBytes(b int64) string {
	val := float64(b)
	var unit string

	switch {
	case b >= TB:
		val /= float64(TB)
		unit = "TB"
	case b >= GB:
		val /= float64(GB)
		unit = "GB"
	case b >= MB:
		val /= float64(MB)
		unit = "MB"
	case b >= KB:
		val /= float64(KB)
		unit = "KB"
	default:
		return fmt.Sprintf("%dB", b)
	}

	// Use %.0f for whole numbers, %.2f for numbers with decimals
	if val == float64(int(val)) {
		return fmt.Sprintf("%.0f%s", val, unit)
	}
	return fmt.Sprintf("%.2f%s", val, unit)
}

var units = []struct {
	suffix string
	mult   uint64
}{
	{"TB", TB},
	{"GB", GB},
	{"MB", MB},
	{"KB", KB},
	{"B", 1},
}

// ParseBytes parses a human readable size such as "64MB" or "1.5GB".
// Units are powers of 1024 and a bare number is a count of bytes.
func ParseBytes(s string) (uint64, error) {
	str := strings.ToUpper(strings.TrimSpace(s))
	if str == "" {
		return 0, fmt.Errorf("invalid size %q", s)
	}

	mult := uint64(1)
	for _, u := range units {
		if strings.HasSuffix(str, u.suffix) {
			str = strings.TrimSpace(strings.TrimSuffix(str, u.suffix))
			mult = u.mult
			break
		}
	}

	if n, err := strconv.ParseUint(str, 10, 64); err == nil {
		return n * mult, nil
	}

	v, err := strconv.ParseFloat(str, 64)
	if err != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	return uint64(v * float64(mult)), nil
}
