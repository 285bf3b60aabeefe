package main

import (
	"testing"
	"time"
)

func TestParseTimeout(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"0", 0, false},
		{"0s", 0, false},
		{"2.5s", 2500 * time.Millisecond, false},
		{"3", 3 * time.Second, false},
		{"1.5", 1500 * time.Millisecond, false},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseTimeout(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseTimeout(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseTimeout(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
