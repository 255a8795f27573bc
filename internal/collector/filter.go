package collector

import (
	"path"
	"strings"
)

// NewPathFilter returns a PathFilter built from an ignore list and an
// include list.
//
// Logic:
//  1. If include patterns are set, the path must match at least one of
//     them to be processed.
//  2. If the path contains any ignore entry as a substring, it is
//     excluded.
//  3. Otherwise, the path is included.
//
// Empty lists yield a filter that accepts every path.
func NewPathFilter(ignore, include []string) PathFilter {
	ignore = nonEmpty(ignore)
	include = nonEmpty(include)

	return func(p string) bool {
		if len(include) > 0 {
			matched := false
			for _, pattern := range include {
				if matchGlob(pattern, p) {
					matched = true
					break
				}
			}
			if !matched {
				return false
			}
		}

		for _, entry := range ignore {
			if strings.Contains(p, entry) {
				return false
			}
		}
		return true
	}
}

// matchGlob matches a slash-separated path against a glob pattern. It
// supports path.Match syntax and "dir/**" patterns matching everything
// under dir. Patterns without a separator also match the base name.
func matchGlob(pattern, p string) bool {
	if strings.HasSuffix(pattern, "/**") {
		prefix := strings.TrimSuffix(pattern, "/**")
		return p == prefix || strings.HasPrefix(p, prefix+"/")
	}

	if matched, err := path.Match(pattern, p); err == nil && matched {
		return true
	}

	if !strings.Contains(pattern, "/") {
		matched, err := path.Match(pattern, path.Base(p))
		return err == nil && matched
	}
	return false
}

func nonEmpty(list []string) []string {
	var out []string
	for _, s := range list {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
