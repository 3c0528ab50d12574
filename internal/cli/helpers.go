// Package cli provides CLI commands for the shopfloor application.
package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/example/shopfloor/internal/ports/primary"
)

// NewContext creates the context CLI commands run under.
func NewContext() context.Context {
	return context.Background()
}

// dateLayouts are the formats accepted for date flags, tried in order.
var dateLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseDate parses a user-supplied date. Day-only dates resolve to midnight
// local time.
func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD or YYYY-MM-DDTHH:MM)", value)
}

// parseOperationSpec parses a "name:type-work-id:priority" operation flag.
func parseOperationSpec(spec string) (primary.OperationInput, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 3 {
		return primary.OperationInput{}, fmt.Errorf("invalid operation %q (expected name:type-work-id:priority)", spec)
	}
	priority, err := strconv.Atoi(parts[2])
	if err != nil {
		return primary.OperationInput{}, fmt.Errorf("invalid priority in %q: %w", spec, err)
	}
	return primary.OperationInput{
		Name:       strings.TrimSpace(parts[0]),
		TypeWorkID: strings.TrimSpace(parts[1]),
		Priority:   priority,
	}, nil
}

// formatDate renders a date, or a dash when unset.
func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}
