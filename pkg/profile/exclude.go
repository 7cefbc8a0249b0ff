package profile

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultExclusions are always skipped when scanning device directories
var DefaultExclusions = []string{".git", ".svn", ".hg", ".DS_Store"}

// Exclusions matches profile paths, relative to their device directory,
// against glob patterns. A pattern without a slash, such as "drafts" or
// "*.old.device.json", matches at any depth unless it starts with "./".
// "*" stays within one path segment and "**" crosses segments. Matching a
// directory excludes everything below it.
type Exclusions struct {
	patterns []string
	regexps  []*regexp.Regexp
}

// NewExclusions compiles patterns on top of DefaultExclusions
func NewExclusions(patterns []string) (*Exclusions, error) {
	all := append(append([]string{}, DefaultExclusions...), patterns...)

	e := &Exclusions{patterns: patterns}
	for _, pattern := range all {
		pattern = filepath.ToSlash(strings.TrimSpace(pattern))
		anchored := strings.HasPrefix(pattern, "./") || strings.HasPrefix(pattern, "/")
		pattern = strings.TrimSuffix(strings.TrimLeft(strings.TrimPrefix(pattern, "./"), "/"), "/")
		if pattern == "" {
			continue
		}

		if !anchored && !strings.Contains(pattern, "/") {
			pattern = "**/" + pattern
		}
		globs := []string{pattern, pattern + "/**"}

		for _, glob := range globs {
			re, err := globToRegexp(glob)
			if err != nil {
				return nil, fmt.Errorf("invalid exclusion pattern %q: %w", pattern, err)
			}
			e.regexps = append(e.regexps, re)
		}
	}
	return e, nil
}

// Patterns returns the configured patterns, without the defaults
func (e *Exclusions) Patterns() []string {
	return append([]string(nil), e.patterns...)
}

// Excluded reports whether rel, a slash or OS separated relative path,
// matches any pattern
func (e *Exclusions) Excluded(rel string) bool {
	if e == nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, re := range e.regexps {
		if re.MatchString(rel) {
			return true
		}
	}
	return false
}

// globToRegexp converts a glob to an anchored regular expression
func globToRegexp(glob string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("^")

	for i := 0; i < len(glob); {
		switch c := glob[i]; c {
		case '*':
			switch {
			case strings.HasPrefix(glob[i:], "**/"):
				// Zero or more leading directories
				b.WriteString("(?:.*/)?")
				i += 3
			case strings.HasPrefix(glob[i:], "**"):
				b.WriteString(".*")
				i += 2
			default:
				b.WriteString("[^/]*")
				i++
			}
		case '?':
			b.WriteString("[^/]")
			i++
		case '[':
			end := strings.IndexByte(glob[i+1:], ']')
			if end < 0 {
				b.WriteString(`\[`)
				i++
				continue
			}
			class := glob[i+1 : i+1+end]
			if strings.HasPrefix(class, "!") {
				class = "^" + class[1:]
			}
			b.WriteString("[" + class + "]")
			i += end + 2
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
			i++
		}
	}

	b.WriteString("$")
	return regexp.Compile(b.String())
}
