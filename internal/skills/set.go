package skills

import "sort"

// Set is a deduplicated collection of skill tokens.
type Set map[string]struct{}

// NewSet returns a Set holding the given skills.
func NewSet(skills ...string) Set {
	s := make(Set, len(skills))
	for _, skill := range skills {
		s.Add(skill)
	}
	return s
}

func (s Set) Add(skill string) { s[skill] = struct{}{} }

func (s Set) Has(skill string) bool {
	_, ok := s[skill]
	return ok
}

func (s Set) Len() int { return len(s) }

// Sorted returns the members in alphabetical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for skill := range s {
		out = append(out, skill)
	}
	sort.Strings(out)
	return out
}

// Intersect counts how many of the given skills are members of s.
func (s Set) Intersect(skills []string) int {
	n := 0
	for _, skill := range skills {
		if s.Has(skill) {
			n++
		}
	}
	return n
}
