// Package version parses and compares dot-separated numeric version
// identifiers like "1.0", "3.1.0", or "10.2.5.1".
package version

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// Version is a parsed dot-separated numeric version. The original text is
// preserved for display; comparison uses the numeric components with
// missing trailing components treated as zero, so "1.2" equals "1.2.0".
type Version struct {
	text       string
	components []int
}

// Parse parses a version string of one or more dot-separated non-negative
// decimal components. Anything else (empty input, empty components,
// non-digits, a leading "v", pre-release suffixes) is an error.
func Parse(s string) (Version, error) {
	if strings.TrimSpace(s) != s || s == "" {
		return Version{}, fmt.Errorf("invalid version %q", s)
	}

	parts := strings.Split(s, ".")
	components := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || p != strconv.Itoa(n) {
			return Version{}, fmt.Errorf("invalid version %q: component %q is not a non-negative integer", s, p)
		}
		components = append(components, n)
	}

	return Version{text: s, components: components}, nil
}

// String returns the original version text.
func (v Version) String() string {
	return v.text
}

// Compare returns -1, 0, or +1 if v is lower than, equal to, or higher
// than o. Versions of different lengths are compared as if the shorter
// one were padded with zeros.
func (v Version) Compare(o Version) int {
	n := len(v.components)
	if len(o.components) > n {
		n = len(o.components)
	}
	for i := 0; i < n; i++ {
		if c := cmp.Compare(v.component(i), o.component(i)); c != 0 {
			return c
		}
	}
	return 0
}

func (v Version) component(i int) int {
	if i < len(v.components) {
		return v.components[i]
	}
	return 0
}
