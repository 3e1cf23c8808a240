// Package stamp appends and verifies a provenance footer on generated markdown reports.
package stamp

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// TagStart opens the footer block.
	TagStart = "<!-- REPORT_STAMP"
	// TagEnd closes the footer block.
	TagEnd = "REPORT_STAMP_END -->"
)

// Stamp verification errors.
var (
	ErrNoStamp      = errors.New("no stamp block found")
	ErrNoHashFound  = errors.New("no hash found in stamp")
	ErrHashMismatch = errors.New("hash mismatch")
)

// Stamp describes who produced a report and from what.
type Stamp struct {
	Generated time.Time
	RunID     string
	Hash      string
	Entries   int
}

var stampRegex = regexp.MustCompile(`(?s)<!--\s*REPORT_STAMP\s*\n(.*?)\n\s*REPORT_STAMP_END\s*-->`)

// Extract splits content into its stamp, if any, and the unstamped body.
func Extract(content string) (*Stamp, string) {
	match := stampRegex.FindStringSubmatch(content)
	body := strings.TrimRight(stampRegex.ReplaceAllString(content, ""), "\n")

	if len(match) < 2 {
		return nil, body
	}

	s := &Stamp{}

	for line := range strings.SplitSeq(match[1], "\n") {
		key, val, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok {
			continue
		}

		val = strings.TrimSpace(val)

		switch strings.TrimSpace(key) {
		case "RUN_ID":
			s.RunID = val
		case "ENTRIES":
			s.Entries, _ = strconv.Atoi(val)
		case "GENERATED":
			if t, err := time.Parse(time.RFC3339, val); err == nil {
				s.Generated = t
			}
		case "HASH":
			s.Hash = val
		}
	}

	return s, body
}

// Hash returns the SHA-256 of the unstamped body.
func Hash(content string) string {
	_, body := Extract(content)
	sum := sha256.Sum256([]byte(body))

	return hex.EncodeToString(sum[:])
}

// Sign replaces any existing stamp with a fresh one for the given run.
func Sign(content, runID string, entries int, now time.Time) string {
	_, body := Extract(content)

	return fmt.Sprintf("%s\n\n%s\nRUN_ID: %s\nENTRIES: %d\nGENERATED: %s\nHASH: %s\n%s\n",
		body, TagStart, runID, entries, now.UTC().Format(time.RFC3339), Hash(body), TagEnd)
}

// Verify checks that the body still matches the stamped hash.
func Verify(content string) (*Stamp, error) {
	s, body := Extract(content)
	if s == nil {
		return nil, ErrNoStamp
	}

	if s.Hash == "" {
		return s, ErrNoHashFound
	}

	if calculated := Hash(body); calculated != s.Hash {
		return s, fmt.Errorf("%w: expected %s, got %s", ErrHashMismatch, s.Hash, calculated)
	}

	return s, nil
}
