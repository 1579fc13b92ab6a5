// Package index keeps user profiles in a binary search tree ordered by
// calorie requirement.
//
// The tree is never rebalanced. Inserting profiles in sorted order makes it
// degenerate into a list, so Insert is O(n) in the worst case. That is fine
// for the handful of profiles the planner serves.
//
// ProfileIndex has no internal locking; callers sharing one across goroutines
// must serialise access themselves.
package index

import (
	"fmt"
	"iter"
	"slices"

	"github.com/mealmatch/backend/internal/domain"
)

// node owns its profile and both subtrees
type node struct {
	profile     domain.UserProfile
	left, right *node
}

// ProfileIndex is a calorie-keyed binary search tree of user profiles
type ProfileIndex struct {
	root *node
	size int
}

// New creates an empty index
func New() *ProfileIndex {
	return &ProfileIndex{}
}

// Insert places the profile by CalorieRequirement. Smaller keys go left,
// larger keys go right. A key that is already present is rejected with
// domain.ErrDuplicateCalorieKey and the tree is left unchanged, so the
// first profile inserted for a given calorie value wins.
func (t *ProfileIndex) Insert(profile domain.UserProfile) error {
	key := profile.CalorieRequirement
	link := &t.root
	for *link != nil {
		current := (*link).profile
		switch {
		case key < current.CalorieRequirement:
			link = &(*link).left
		case key > current.CalorieRequirement:
			link = &(*link).right
		default:
			return fmt.Errorf("%w: %v is held by %q", domain.ErrDuplicateCalorieKey, key, current.Name)
		}
	}
	*link = &node{profile: profile}
	t.size++
	return nil
}

// All yields profiles in ascending calorie order (left, root, right).
// The sequence can be ranged over any number of times. Mutating the index
// while ranging is not supported.
func (t *ProfileIndex) All() iter.Seq[domain.UserProfile] {
	return func(yield func(domain.UserProfile) bool) {
		walk(t.root, yield)
	}
}

// walk returns false once yield asks to stop
func walk(n *node, yield func(domain.UserProfile) bool) bool {
	if n == nil {
		return true
	}
	return walk(n.left, yield) && yield(n.profile) && walk(n.right, yield)
}

// InOrder returns a snapshot of All
func (t *ProfileIndex) InOrder() []domain.UserProfile {
	profiles := slices.Collect(t.All())
	if profiles == nil {
		return []domain.UserProfile{}
	}
	return profiles
}

// Len returns the number of indexed profiles
func (t *ProfileIndex) Len() int {
	return t.size
}

// Height returns the number of nodes on the longest root-to-leaf path
func (t *ProfileIndex) Height() int {
	return height(t.root)
}

func height(n *node) int {
	if n == nil {
		return 0
	}
	return 1 + max(height(n.left), height(n.right))
}
