package router

import (
	"fmt"
	"regexp"
	"strings"
)

// compileHostPattern turns a host pattern into an anchored capturing
// regexp. A "{name}" placeholder captures one or more non-dot
// characters under that name; "*" matches one or more non-dot
// characters without capturing.
func compileHostPattern(pattern string) (*regexp.Regexp, error) {
	quoted := regexp.QuoteMeta(pattern)
	quoted = strings.ReplaceAll(quoted, `\{`, `(?P<`)
	quoted = strings.ReplaceAll(quoted, `\}`, `>[^.]+)`)
	quoted = strings.ReplaceAll(quoted, `\*`, `[^.]+`)

	re, err := regexp.Compile("^" + quoted + "$")
	if err != nil {
		return nil, fmt.Errorf("invalid host pattern %q: %w", pattern, err)
	}
	return re, nil
}

// hostCaptures extracts the named captures of a compiled host pattern
// from an already-successful match.
func hostCaptures(re *regexp.Regexp, match []string) map[string]string {
	params := make(map[string]string)
	for i, name := range re.SubexpNames() {
		if name != "" && i < len(match) {
			params[name] = match[i]
		}
	}
	return params
}
