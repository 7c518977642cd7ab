// Package styles contains Lip Gloss style definitions.
package styles

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatOffset renders a click offset with an explicit sign. Zero stays
// bare.
func FormatOffset(clicks int) string {
	if clicks == 0 {
		return "0"
	}
	return fmt.Sprintf("%+d", clicks)
}

// FormatInterval renders a duration compactly: sub-second values in whole
// milliseconds, everything else in seconds.
func FormatInterval(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64) + "s"
}

// FormatClickValues renders a click value set as a comma separated list.
func FormatClickValues(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
