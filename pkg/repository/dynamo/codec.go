package dynamo

import (
	"fmt"
	"time"
)

// timeLayout is a fixed-width UTC timestamp. Fixed width matters: the
// leads GSI range key is created_at, and DynamoDB orders string range
// keys lexicographically.
const timeLayout = "2006-01-02T15:04:05.000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}
