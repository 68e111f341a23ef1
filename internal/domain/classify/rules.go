// Package classify infers discipline and gender tags from loosely encoded
// source fields using ordered, first-match-wins rule tables.
package classify

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Predicate reports whether a rule applies to s.
type Predicate func(s string) bool

// Rule pairs a predicate with the tag it yields.
type Rule[T any] struct {
	Name  string
	Match Predicate
	Tag   T
}

// Table is an ordered rule list. Order is part of its contract.
type Table[T any] []Rule[T]

// First returns the tag of the first matching rule.
func (t Table[T]) First(s string) (T, bool) {
	for _, r := range t {
		if r.Match(s) {
			return r.Tag, true
		}
	}
	var zero T
	return zero, false
}

// Then appends other after t, keeping both orders.
func (t Table[T]) Then(other Table[T]) Table[T] {
	out := make(Table[T], 0, len(t)+len(other))
	out = append(out, t...)
	return append(out, other...)
}

// Contains matches when s contains sub (case-sensitive, NFC-normalized).
func Contains(sub string) Predicate {
	sub = norm.NFC.String(sub)
	return func(s string) bool {
		return strings.Contains(norm.NFC.String(s), sub)
	}
}

// ContainsFold matches when s contains sub ignoring case.
func ContainsFold(sub string) Predicate {
	sub = strings.ToLower(sub)
	return func(s string) bool {
		return strings.Contains(strings.ToLower(s), sub)
	}
}

// Pattern matches when the regular expression matches s.
func Pattern(expr string) Predicate {
	re := regexp.MustCompile(expr)
	return re.MatchString
}

func patterns[T any](tag T, exprs ...string) Table[T] {
	t := make(Table[T], 0, len(exprs))
	for _, e := range exprs {
		t = append(t, Rule[T]{Name: e, Match: Pattern(e), Tag: tag})
	}
	return t
}

func substrings[T any](tag T, subs ...string) Table[T] {
	t := make(Table[T], 0, len(subs))
	for _, s := range subs {
		t = append(t, Rule[T]{Name: s, Match: Contains(s), Tag: tag})
	}
	return t
}
