package normalizer

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"cfmigrate/internal/errs"
)

// ErrInvalidDate is returned when a date string matches no known layout.
var ErrInvalidDate = errors.New("invalid date format")

// DateLayout is the canonical output form.
const DateLayout = "2006-01-02"

var ordinalPattern = regexp.MustCompile(`(\d+)(st|nd|rd|th)`)

// dateLayouts are tried in order. Month names match case-insensitively.
var dateLayouts = []string{
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"Monday, January 2, 2006",
	"Mon, Jan 2, 2006",
	"2 January 2006",
	"2 January, 2006",
	"2 Jan 2006",
	"2 Jan, 2006",
	"January 2006",
	"Jan 2006",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	time.RFC3339,
	// Timestamps; the time of day is dropped from the output.
	"January 2, 2006 15:04",
	"January 2, 2006 3:04 PM",
	"January 2, 2006 15:04:05",
	"Jan 2, 2006 15:04",
	"Jan 2, 2006 3:04 PM",
	"2 January 2006 15:04",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// NormalizeDate reformats a human-written date as YYYY-MM-DD.
// The first ordinal suffix is removed before parsing and dates are read as UTC.
func NormalizeDate(text string) (string, error) {
	cleaned := ordinalPattern.ReplaceAllStringFunc(text, stripOrdinalOnce())
	cleaned = strings.Join(strings.Fields(cleaned), " ")

	for _, layout := range dateLayouts {
		parsed, err := time.ParseInLocation(layout, cleaned, time.UTC)
		if err == nil {
			return parsed.Format(DateLayout), nil
		}
	}

	return "", errs.DateParse(fmt.Errorf("%w: %q", ErrInvalidDate, text), "publish date")
}

// stripOrdinalOnce drops the suffix of the first ordinal only.
func stripOrdinalOnce() func(string) string {
	done := false

	return func(match string) string {
		if done {
			return match
		}

		done = true

		return ordinalPattern.ReplaceAllString(match, "$1")
	}
}
