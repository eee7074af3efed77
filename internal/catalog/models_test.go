package catalog

import (
	"errors"
	"testing"

	"github.com/quizmaster-app/quizmaster/internal/domain"
)

func TestDurationSeconds(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"01:30", 5400, false},
		{"00:30", 1800, false},
		{"02:00", 7200, false},
		{"00:00", 0, false},
		{"01:30:00", 5400, false}, // stored time values may carry seconds
		{"", 0, true},
		{"90", 0, true},
		{"1:xx", 0, true},
		{"-1:30", 0, true},
		{"01:75", 0, true},
	}
	for _, c := range cases {
		got, err := DurationSeconds(c.in)
		if c.wantErr {
			if !errors.Is(err, domain.ErrInvalidDuration) {
				t.Errorf("DurationSeconds(%q) err = %v, want ErrInvalidDuration", c.in, err)
			}
			continue
		}
		if err != nil || got != c.want {
			t.Errorf("DurationSeconds(%q) = (%d, %v), want (%d, nil)", c.in, got, err, c.want)
		}
	}
}
