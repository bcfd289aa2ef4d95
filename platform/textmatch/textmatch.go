// Package textmatch provides the case-insensitive substring matching used by
// catalog search and the assistant keyword lookup.
package textmatch

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fold lowercases s with Unicode case folding so "ÁREA" and "área" compare equal.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// Contains reports whether needle occurs in haystack ignoring case.
// An empty needle matches everything.
func Contains(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(Fold(haystack), Fold(needle))
}

// AnyContains reports whether any haystack contains needle ignoring case.
func AnyContains(haystacks []string, needle string) bool {
	for _, h := range haystacks {
		if Contains(h, needle) {
			return true
		}
	}
	return false
}

// ContainsAny reports whether haystack contains at least one of needles.
func ContainsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if Contains(haystack, n) {
			return true
		}
	}
	return false
}

// AnyContainsAny reports whether at least one haystack contains at least one needle.
func AnyContainsAny(haystacks, needles []string) bool {
	for _, n := range needles {
		if AnyContains(haystacks, n) {
			return true
		}
	}
	return false
}
