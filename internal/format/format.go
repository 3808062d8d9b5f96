// Package format holds the display helpers shared by the HTTP and terminal
// surfaces: labels, sizes, dates and the badge tables for enum values.
package format

import (
	"fmt"
	"strings"
	"time"
)

// Placeholder is shown where a value is missing
const Placeholder = "-"

// FormatLabel turns an enum value into words: "ON_HOLD" becomes "On Hold"
func FormatLabel(value string) string {
	parts := strings.Split(strings.ToLower(value), "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

// FormatBytes renders a byte count with one decimal in the largest unit below 1024
func FormatBytes(n int64) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	v := float64(n) / 1024
	for _, unit := range []string{"KB", "MB"} {
		if v < 1024 {
			return fmt.Sprintf("%.1f %s", v, unit)
		}
		v /= 1024
	}
	return fmt.Sprintf("%.1f GB", v)
}

// FormatDate renders dates as "Mar 4, 2025", or Placeholder for nil
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return Placeholder
	}
	return t.Format("Jan 2, 2006")
}

// FormatHours renders a time estimate such as "1.5h"
func FormatHours(h *float64) string {
	if h == nil {
		return Placeholder
	}
	s := fmt.Sprintf("%.2f", *h)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	return s + "h"
}

// OrPlaceholder returns s, or Placeholder when s is empty
func OrPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}
