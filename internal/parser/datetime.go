package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizeDate converts a regionally formatted date string to YYYY-MM-DD.
// Supported inputs: DD/MM/YYYY, DD-MM-YYYY, YYYY/MM/DD, YYYY-MM-DD.
// A date whose first component has 4 digits is treated as already
// year-first. Returns ok=false when the string cannot be normalized.
func NormalizeDate(dateStr string) (string, bool) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return "", false
	}

	normalized := strings.ReplaceAll(dateStr, "/", "-")
	parts := strings.Split(normalized, "-")
	if len(parts) != 3 {
		return "", false
	}

	// Already in YYYY-MM-DD format
	if len(parts[0]) == 4 {
		return normalized, true
	}

	// Convert DD-MM-YYYY to YYYY-MM-DD
	day, month, year := parts[0], parts[1], parts[2]
	if day == "" || month == "" || year == "" {
		return "", false
	}

	return fmt.Sprintf("%s-%s-%s", year, pad2(month), pad2(day)), true
}

// NormalizeTime converts a time string to zero-padded 24-hour HH:MM.
// Supported inputs: HH:MM, HH.MM, with optional trailing seconds.
// Returns ok=false on too few components or out-of-range hour/minute.
func NormalizeTime(timeStr string) (string, bool) {
	timeStr = strings.TrimSpace(timeStr)
	if timeStr == "" {
		return "", false
	}

	normalized := strings.ReplaceAll(timeStr, ".", ":")
	parts := strings.Split(normalized, ":")
	if len(parts) < 2 {
		return "", false
	}

	h, errH := strconv.Atoi(strings.TrimSpace(parts[0]))
	m, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errH != nil || errM != nil {
		return "", false
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return "", false
	}

	return fmt.Sprintf("%02d:%02d", h, m), true
}

// TimeToMinutes converts a time string to minutes since midnight,
// normalizing it first.
func TimeToMinutes(timeStr string) (int, bool) {
	normalized, ok := NormalizeTime(timeStr)
	if !ok {
		return 0, false
	}

	h, _ := strconv.Atoi(normalized[:2])
	m, _ := strconv.Atoi(normalized[3:])
	return h*60 + m, true
}

func pad2(s string) string {
	if len(s) < 2 {
		return "0" + s
	}
	return s
}
