package task

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Similar finds the task whose title is closest to title, provided the
// normalized edit distance is below threshold. A threshold <= 0 disables the
// check.
func Similar(l List, title string, threshold float64) (Task, bool) {
	if threshold <= 0 {
		return Task{}, false
	}
	needle := normalizeTitle(title)
	if needle == "" {
		return Task{}, false
	}
	var (
		best      Task
		bestRatio = threshold
		found     bool
	)
	for _, t := range l {
		ratio := distanceRatio(needle, normalizeTitle(t.Title))
		if ratio < bestRatio {
			best, bestRatio, found = t, ratio, true
		}
	}
	return best, found
}

func distanceRatio(a, b string) float64 {
	maxlen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxlen {
		maxlen = n
	}
	if maxlen == 0 {
		return 0
	}
	return float64(levenshtein.ComputeDistance(a, b)) / float64(maxlen)
}

func normalizeTitle(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
