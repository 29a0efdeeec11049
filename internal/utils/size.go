package utils

import (
	"strconv"
	"strings"
)

const byteUnitStep = 1024

// byteUnits stops at gigabytes; larger snapshots are reported as a multiple of gb.
var byteUnits = []string{"b", "kb", "mb", "gb"}

// FormatFileSize renders a byte count such as 512b, 1.5kb or 12mb. Values below ten units
// keep one decimal. Negative counts render as 0b.
func FormatFileSize(byteCount int64) string {
	if byteCount < byteUnitStep {
		return strconv.FormatInt(max(byteCount, 0), 10) + byteUnits[0]
	}
	scaled := float64(byteCount)
	unitIndex := 0
	for scaled >= byteUnitStep && unitIndex < len(byteUnits)-1 {
		scaled /= byteUnitStep
		unitIndex++
	}
	precision := 0
	if scaled < 10 {
		precision = 1
	}
	formatted := strings.TrimSuffix(strconv.FormatFloat(scaled, 'f', precision, 64), ".0")
	return formatted + byteUnits[unitIndex]
}
