package normalizer

import (
	"errors"
	"testing"

	"cfmigrate/internal/errs"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"March 3rd, 2024", "2024-03-03"},
		{"January 21st, 2023", "2023-01-21"},
		{"1st March 2024", "2024-03-01"},
		{"2 Feb 2024", "2024-02-02"},
		{"Dec 25, 2022", "2022-12-25"},
		{"2024-05-06", "2024-05-06"},
		{"  August   22nd,  2021 ", "2021-08-22"},
		{"june 9th, 2020", "2020-06-09"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeDate(tt.input)
			if err != nil {
				t.Fatalf("NormalizeDate(%q) error = %v", tt.input, err)
			}

			if got != tt.want {
				t.Errorf("NormalizeDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeDate_WithTime(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"March 3rd, 2024 10:00", "2024-03-03"},
		{"March 3, 2024 3:30 PM", "2024-03-03"},
		{"Jan 5th, 2023 23:59", "2023-01-05"},
		{"January 21st, 2023 08:15:30", "2023-01-21"},
		{"21st January 2023 08:15", "2023-01-21"},
		{"2024-05-06 14:00", "2024-05-06"},
		{"2024-05-06 14:00:59", "2024-05-06"},
		{"2024-05-06T23:30:00", "2024-05-06"},
		{"2024-05-06T23:30:00Z", "2024-05-06"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeDate(tt.input)
			if err != nil {
				t.Fatalf("NormalizeDate(%q) error = %v", tt.input, err)
			}

			if got != tt.want {
				t.Errorf("NormalizeDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeDate_Invalid(t *testing.T) {
	for _, input := range []string{"not a date", "", "32nd of Smarch"} {
		t.Run(input, func(t *testing.T) {
			_, err := NormalizeDate(input)
			if err == nil {
				t.Fatal("expected error")
			}

			if !errs.IsDateParse(err) {
				t.Errorf("error %v is not a date parse error", err)
			}

			if !errors.Is(err, ErrInvalidDate) {
				t.Errorf("error %v does not wrap ErrInvalidDate", err)
			}
		})
	}
}
