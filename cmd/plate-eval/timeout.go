package main

import (
	"fmt"
	"time"

	"github.com/spf13/cast"
)

// parseTimeout accepts a Go duration or a bare number of seconds.
func parseTimeout(s string) (time.Duration, error) {
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	secs, err := cast.ToFloat64E(s)
	if err != nil {
		return 0, fmt.Errorf("invalid -timeout %q: %w", s, err)
	}
	return time.Duration(secs * float64(time.Second)), nil
}
