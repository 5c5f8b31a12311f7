package domain

import (
	"testing"
	"time"
)

func TestParseDueDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  time.Time
	}{
		{"2024-01-01T10:00:00Z", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		{"2024-01-01T10:00:00+00:00", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		{"2024-01-01T12:00:00+02:00", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		{"2024-01-01T10:00:00.250Z", time.Date(2024, 1, 1, 10, 0, 0, 250_000_000, time.UTC)},
		{"2024-01-01T10:00:00", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		{"2024-01-01 10:00:00", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		{"2024-01-01T10:00", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		{"2024-01-01", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDueDate(tt.input)
			if err != nil {
				t.Fatalf("ParseDueDate(%q) returned error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDueDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got.Location() != time.UTC {
				t.Errorf("ParseDueDate(%q) location = %v, want UTC", tt.input, got.Location())
			}
		})
	}
}

func TestParseDueDate_Invalid(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "tomorrow", "2024-13-01", "01/02/2024", "2024-01-01T25:00:00Z"} {
		if _, err := ParseDueDate(input); err != ErrInvalidDueDate {
			t.Errorf("ParseDueDate(%q) error = %v, want %v", input, err, ErrInvalidDueDate)
		}
	}
}
