package collections

import (
	"fmt"
	"slices"
	"strings"
)

// Set is a generic set data structure using a map with zero-size values
type Set[T comparable] map[T]struct{}

// NewSet creates a new Set with the given initial values
func NewSet[T comparable](vs ...T) Set[T] {
	s := Set[T]{}
	s.Add(vs...)
	return s
}

// NewFoldedSet creates a set of lower-cased strings, for case-insensitive
// membership tests such as HTML tag names.
func NewFoldedSet(vs ...string) Set[string] {
	s := Set[string]{}
	for _, v := range vs {
		s.Add(strings.ToLower(v))
	}
	return s
}

// Add adds one or more values to the set
func (s Set[T]) Add(vs ...T) {
	for _, v := range vs {
		s[v] = struct{}{}
	}
}

// Remove deletes one or more values from the set
func (s Set[T]) Remove(vs ...T) {
	for _, v := range vs {
		delete(s, v)
	}
}

// Has checks if the set contains the given value
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// Len returns the number of values in the set
func (s Set[T]) Len() int {
	return len(s)
}

// Members returns all values in the set as a slice, in no particular order
func (s Set[T]) Members() []T {
	r := make([]T, 0, len(s))
	for v := range s {
		r = append(r, v)
	}
	return r
}

// Sorted returns the members of a string set in lexical order
func Sorted(s Set[string]) []string {
	r := s.Members()
	slices.Sort(r)
	return r
}

// String returns a string representation of the set
func (s Set[T]) String() string {
	return fmt.Sprintf("%v", s.Members())
}
