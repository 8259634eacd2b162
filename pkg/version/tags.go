// Package version provides settings version tag parsing and ordering.
package version

import (
	"fmt"
	"regexp"
	"sort"

	masterminds "github.com/Masterminds/semver/v3"
)

const logPrefix = "version:tags"

// Version tags look like "v1", "v2.1", or "v1.0.3". Minor and patch default
// to zero when omitted.
var tagRegex = regexp.MustCompile(`^v\d+(\.\d+){0,2}$`)

// ValidTag reports whether a string is a well-formed version tag.
func ValidTag(tag string) bool {
	return tagRegex.MatchString(tag)
}

// ParseTag parses a version tag into a comparable version.
func ParseTag(tag string) (*masterminds.Version, error) {
	if !ValidTag(tag) {
		return nil, fmt.Errorf("%s - invalid version tag: %q", logPrefix, tag)
	}
	v, err := masterminds.NewVersion(tag)
	if err != nil {
		return nil, fmt.Errorf("%s - failed to parse version tag %q: %w", logPrefix, tag, err)
	}
	return v, nil
}

// Compare orders two version tags: -1 if a < b, 0 if equal, 1 if a > b.
func Compare(a, b string) (int, error) {
	va, err := ParseTag(a)
	if err != nil {
		return 0, err
	}
	vb, err := ParseTag(b)
	if err != nil {
		return 0, err
	}
	return va.Compare(vb), nil
}

// SortTags sorts version tags ascending in place. Tags that fail to parse sort
// before all valid tags; callers that need strict ordering should validate
// tags first.
func SortTags(tags []string) {
	sort.Slice(tags, func(i, j int) bool {
		vi, erri := ParseTag(tags[i])
		vj, errj := ParseTag(tags[j])
		if erri != nil || errj != nil {
			return errj == nil
		}
		return vi.LessThan(vj)
	})
}

// LatestTag returns the highest version tag, or "" when the slice is empty.
func LatestTag(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	sorted := make([]string, len(tags))
	copy(sorted, tags)
	SortTags(sorted)
	return sorted[len(sorted)-1]
}
