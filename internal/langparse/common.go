package langparse

import (
	"regexp"
	"sync"
)

var (
	regexCacheMu sync.Mutex
	regexCache   = map[string]*regexp.Regexp{}
)

func compiled(pattern string) *regexp.Regexp {
	regexCacheMu.Lock()
	defer regexCacheMu.Unlock()
	re, ok := regexCache[pattern]
	if !ok {
		re = regexp.MustCompile(pattern)
		regexCache[pattern] = re
	}
	return re
}

// matchFirst returns the first capture group of pattern matched against
// line, or "" if no match. Compiled patterns are cached since the same
// handful of patterns runs once per source line across a whole project;
// parsers run concurrently in the worker pool, so the cache is guarded by
// a mutex rather than left as a bare map.
func matchFirst(line, pattern string) string {
	m := compiled(pattern).FindStringSubmatch(line)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// matchAll returns every capture group of pattern matched against line.
func matchAll(line, pattern string) []string {
	matches := compiled(pattern).FindAllStringSubmatch(line, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if len(m) > 1 {
			out = append(out, m[1])
		}
	}
	return out
}
