package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var controlChars = regexp.MustCompile(`[\x00-\x1f\x7f]`)

// RequiredField is a named value that must not be blank
type RequiredField struct {
	Name  string
	Value string
}

// MissingFields returns the names of fields whose value is blank, in order
func MissingFields(fields ...RequiredField) []string {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			missing = append(missing, f.Name)
		}
	}
	return missing
}

// SanitizeString removes control characters and surrounding whitespace
func SanitizeString(s string) string {
	return strings.TrimSpace(controlChars.ReplaceAllString(s, ""))
}

// ParseID parses a positive record identifier from a path segment
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	if id <= 0 {
		return 0, fmt.Errorf("id must be positive: %d", id)
	}
	return id, nil
}
