package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/balkashynov/luna/internal/models"
)

var (
	tagRegex      = regexp.MustCompile(`#([a-zA-Z0-9_,-]+)`)
	projectRegex  = regexp.MustCompile(`@([a-zA-Z0-9_-]+)`)
	priorityRegex = regexp.MustCompile(`\+([a-zA-Z0-9]+)`)
	listRegex     = regexp.MustCompile(`list:([^\s]+)`)
	dueRegex      = regexp.MustCompile(`due:([^\s]+)`)
)

// ParsedTask represents a task parsed from the quick-add syntax
type ParsedTask struct {
	Title    string
	Project  string // slug of the project name
	List     string // slug of the list name
	Tags     []string
	Priority models.Priority
	DueDate  *time.Time
	Errors   []string
}

// ParseTitle extracts metadata from a task title.
// Syntax: "Order samples #fabric,rug @loft-renovation list:materials +high due:3days"
func ParseTitle(input string) ParsedTask {
	result := ParsedTask{
		Tags:   []string{},
		Errors: []string{},
	}

	for _, match := range tagRegex.FindAllStringSubmatch(input, -1) {
		for _, tag := range strings.Split(match[1], ",") {
			tag = strings.ToLower(strings.TrimSpace(tag))
			if tag != "" {
				result.Tags = append(result.Tags, tag)
			}
		}
	}
	input = tagRegex.ReplaceAllString(input, "")

	if m := projectRegex.FindStringSubmatch(input); m != nil {
		result.Project = Slugify(m[1])
		input = projectRegex.ReplaceAllString(input, "")
	}

	if m := listRegex.FindStringSubmatch(input); m != nil {
		result.List = Slugify(m[1])
		input = listRegex.ReplaceAllString(input, "")
	}

	if m := priorityRegex.FindStringSubmatch(input); m != nil {
		p, err := ParsePriority(m[1])
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
		} else {
			result.Priority = p
		}
		input = priorityRegex.ReplaceAllString(input, "")
	}

	if m := dueRegex.FindStringSubmatch(input); m != nil {
		dueDate, err := ParseDueDate(m[1])
		if err != nil {
			result.Errors = append(result.Errors, "Invalid due date '"+m[1]+"': "+err.Error())
		} else {
			result.DueDate = dueDate
		}
		input = dueRegex.ReplaceAllString(input, "")
	}

	result.Title = strings.Join(strings.Fields(input), " ")
	return result
}

// ParsePriority accepts priority names in any case, their first letter, or
// 1 (low) through 4 (urgent). Empty input means NORMAL.
func ParsePriority(s string) (models.Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return models.PriorityNormal, nil
	case "urgent", "u", "4":
		return models.PriorityUrgent, nil
	case "high", "h", "3":
		return models.PriorityHigh, nil
	case "normal", "n", "medium", "2":
		return models.PriorityNormal, nil
	case "low", "l", "1":
		return models.PriorityLow, nil
	}
	return "", fmt.Errorf("invalid priority '%s'. Use: urgent, high, normal, low or 1-4", s)
}
