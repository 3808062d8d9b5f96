package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	dayFirstRegex = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	isoDateRegex  = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	relativeRegex = regexp.MustCompile(`^(\d+)\s*(hour|hours|day|days|week|weeks)$`)
)

// ParseDueDate parses various due date formats
// Supported formats:
// - yyyy-mm-dd (e.g., "2025-03-15")
// - dd/mm/yyyy (e.g., "15/03/2025")
// - X days (e.g., "3 days", "3days")
// - X hours (e.g., "24 hours")
// - X weeks (e.g., "2 weeks")
func ParseDueDate(input string) (*time.Time, error) {
	return parseDueDateAt(input, time.Now())
}

func parseDueDateAt(input string, now time.Time) (*time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}

	if m := isoDateRegex.FindStringSubmatch(input); m != nil {
		return buildDate(m[3], m[2], m[1])
	}
	if m := dayFirstRegex.FindStringSubmatch(input); m != nil {
		return buildDate(m[1], m[2], m[3])
	}
	if dueDate, err := parseRelativeTime(input, now); err == nil {
		return dueDate, nil
	}

	return nil, fmt.Errorf("invalid date format. Use: yyyy-mm-dd, dd/mm/yyyy, X days, X hours, or X weeks")
}

func buildDate(d, m, y string) (*time.Time, error) {
	day, _ := strconv.Atoi(d)
	month, _ := strconv.Atoi(m)
	year, _ := strconv.Atoi(y)

	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month must be between 1 and 12")
	}
	if year < 2000 || year > 2100 {
		return nil, fmt.Errorf("year must be between 2000 and 2100")
	}

	dueDate := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes 31/02 into March
	if dueDate.Day() != day || dueDate.Month() != time.Month(month) {
		return nil, fmt.Errorf("invalid date")
	}
	return &dueDate, nil
}

// parseRelativeTime parses "3 days", "24 hours" etc. Day and week offsets
// land at the start of the target day.
func parseRelativeTime(input string, now time.Time) (*time.Time, error) {
	matches := relativeRegex.FindStringSubmatch(strings.ToLower(input))
	if len(matches) != 3 {
		return nil, fmt.Errorf("invalid relative time format")
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil {
		return nil, fmt.Errorf("invalid number")
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch matches[2] {
	case "hour", "hours":
		if amount < 1 || amount > 8760 {
			return nil, fmt.Errorf("hours must be between 1 and 8760")
		}
		dueDate := now.Add(time.Duration(amount) * time.Hour)
		return &dueDate, nil
	case "day", "days":
		if amount < 1 || amount > 365 {
			return nil, fmt.Errorf("days must be between 1 and 365")
		}
		dueDate := today.AddDate(0, 0, amount)
		return &dueDate, nil
	case "week", "weeks":
		if amount < 1 || amount > 52 {
			return nil, fmt.Errorf("weeks must be between 1 and 52")
		}
		dueDate := today.AddDate(0, 0, amount*7)
		return &dueDate, nil
	}
	return nil, fmt.Errorf("unsupported time unit")
}

// FormatDueDate formats a due date relative to today for terminal output
func FormatDueDate(dueDate *time.Time) string {
	return formatDueDateAt(dueDate, time.Now())
}

func formatDueDateAt(dueDate *time.Time, now time.Time) string {
	if dueDate == nil {
		return ""
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dueDay := time.Date(dueDate.Year(), dueDate.Month(), dueDate.Day(), 0, 0, 0, 0, time.UTC)
	daysDiff := int(dueDay.Sub(today).Hours() / 24)

	dateStr := dueDate.Format("Jan 2, 2006")
	switch {
	case daysDiff < 0:
		return fmt.Sprintf("overdue (%s)", dateStr)
	case daysDiff == 0:
		return fmt.Sprintf("due today (%s)", dateStr)
	case daysDiff == 1:
		return fmt.Sprintf("due tomorrow (%s)", dateStr)
	case daysDiff <= 7:
		return fmt.Sprintf("due %s (in %d days)", dateStr, daysDiff)
	}
	return fmt.Sprintf("due %s", dateStr)
}
