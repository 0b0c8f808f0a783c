// Package deadline turns the free-text deadline strings that come back from
// the boards ("~ 02/28(토)", "2026.02.28", "오늘마감", "D-3", "상시채용", ...)
// into comparable calendar dates. Anything it cannot recognize is "no date",
// never an error: an unreadable deadline means a rolling posting, not a bug.
package deadline

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"jobscout-engine/internal/domain"
)

var nonDateChars = regexp.MustCompile(`[^0-9.]`)

// Parse extracts a calendar date from text, relative to now.
// Keyword terms win over numeric shapes; ok is false when no date is found.
func Parse(text string, now time.Time) (time.Time, bool) {
	today := dateOf(now)

	low := strings.ToLower(text)
	if strings.Contains(low, "오늘") || strings.Contains(low, "today") {
		return today, true
	}
	if strings.Contains(low, "내일") || strings.Contains(low, "tomorrow") {
		return today.AddDate(0, 0, 1), true
	}

	// Unify separators, then keep only digits and dots.
	clean := strings.NewReplacer("/", ".", "-", ".").Replace(text)
	clean = nonDateChars.ReplaceAllString(clean, "")
	if clean == "" {
		return time.Time{}, false
	}

	switch strings.Count(clean, ".") {
	case 2:
		parts := strings.SplitN(clean, ".", 3)
		switch len(parts[0]) {
		case 4: // year.month.day
			return makeDate(atoi(parts[0]), atoi(parts[1]), atoi(parts[2]))
		case 2: // month.day.two-digit-year
			return makeDate(expandYear(atoi(parts[2])), atoi(parts[0]), atoi(parts[1]))
		}
	case 1:
		parts := strings.SplitN(clean, ".", 2)
		// month.day: year is assumed current, even in December for a January
		// deadline. Known limitation, kept to match the dataset's history.
		return makeDate(today.Year(), atoi(parts[0]), atoi(parts[1]))
	case 0:
		switch len(clean) {
		case 8: // YYYYMMDD
			return makeDate(atoi(clean[:4]), atoi(clean[4:6]), atoi(clean[6:8]))
		case 4: // MMDD, current year
			return makeDate(today.Year(), atoi(clean[:2]), atoi(clean[2:4]))
		}
	}
	return time.Time{}, false
}

// IsToday reports whether text parses to now's date.
func IsToday(text string, now time.Time) bool {
	d, ok := Parse(text, now)
	return ok && d.Equal(dateOf(now))
}

// IsTomorrow reports whether text parses to the day after now.
func IsTomorrow(text string, now time.Time) bool {
	d, ok := Parse(text, now)
	return ok && d.Equal(dateOf(now).AddDate(0, 0, 1))
}

// IsExpired reports whether text parses to a date strictly before now's date.
// Unparseable deadlines never expire (rolling/always-open postings).
func IsExpired(text string, now time.Time) bool {
	d, ok := Parse(text, now)
	return ok && d.Before(dateOf(now))
}

// DueToday returns the records whose deadline is now's date.
func DueToday(records []domain.JobRecord, now time.Time) []domain.JobRecord {
	var out []domain.JobRecord
	for _, r := range records {
		if IsToday(r.Deadline, now) {
			out = append(out, r)
		}
	}
	return out
}

// DueTomorrow returns the records whose deadline is the day after now.
func DueTomorrow(records []domain.JobRecord, now time.Time) []domain.JobRecord {
	var out []domain.JobRecord
	for _, r := range records {
		if IsTomorrow(r.Deadline, now) {
			out = append(out, r)
		}
	}
	return out
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// makeDate validates components the hard way: time.Date silently normalizes
// Feb 30 into March, so build and compare.
func makeDate(y, m, d int) (time.Time, bool) {
	if y < 0 || m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || t.Month() != time.Month(m) || t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}

// expandYear maps a two-digit year the way strptime's %y does.
func expandYear(yy int) int {
	switch {
	case yy < 0 || yy > 99:
		return -1
	case yy < 69:
		return 2000 + yy
	default:
		return 1900 + yy
	}
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return n
}
