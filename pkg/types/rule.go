package types

import (
	"fmt"
	"strings"
)

// SortRule maps a set of file extensions to one target folder.
// Extensions are stored normalized: lowercase, with a leading dot.
type SortRule struct {
	Extensions   []string `yaml:"extensions"`
	TargetFolder string   `yaml:"target_folder"`
}

// Matches reports whether the rule covers the given extension.
// The comparison is case-insensitive on the suffix only.
func (r SortRule) Matches(ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range r.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// CollisionPolicy decides what happens when a destination already exists.
type CollisionPolicy string

const (
	CollisionSkip      CollisionPolicy = "skip"
	CollisionOverwrite CollisionPolicy = "overwrite"
	CollisionRename    CollisionPolicy = "rename"
)

// ParseCollisionPolicy validates a policy string from the config document.
func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	switch CollisionPolicy(s) {
	case CollisionSkip, CollisionOverwrite, CollisionRename:
		return CollisionPolicy(s), nil
	default:
		return "", fmt.Errorf("unknown collision policy: %q", s)
	}
}

// SorterConfig is the normalized, validated configuration one sort run
// operates on. Rule order is significant: the first matching rule wins.
type SorterConfig struct {
	Rules           []SortRule
	CollisionPolicy CollisionPolicy
	Recursive       bool
	IgnorePatterns  []string
}
