// Package format turns raw values into display strings for chat output.
package format

import "strconv"

var byteUnits = []string{"Bytes", "KB", "MB", "GB", "TB", "PB", "EB", "ZB", "YB"}

// Bytes renders n with 1024-based units, rounded to decimals places with
// trailing zeros dropped: 1536 -> "1.5 KB". Zero is "0 Bytes".
func Bytes(n uint64, decimals int) string {
	if n == 0 {
		return "0 Bytes"
	}
	if decimals < 0 {
		decimals = 0
	}

	v := float64(n)
	i := 0
	for v >= 1024 && i < len(byteUnits)-1 {
		v /= 1024
		i++
	}

	rounded, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', decimals, 64), 64)
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + byteUnits[i]
}

// FileSize is Bytes with two decimals.
func FileSize(n uint64) string {
	return Bytes(n, 2)
}
