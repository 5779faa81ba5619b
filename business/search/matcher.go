package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"bamkzStore/domain"
)

// Match reports whether text contains query case-insensitively, either as a
// substring or as an in-order subsequence of its characters.
// An empty query matches nothing.
func Match(text, query string) bool {
	if query == "" {
		return false
	}

	t := strings.ToLower(text)
	q := strings.ToLower(query)
	if strings.Contains(t, q) {
		return true
	}

	return isSubsequence(t, q)
}

// Classify returns the most relevant tier the product reaches for query.
// The bool is false when no field matches and the product must be excluded.
func Classify(p domain.Product, query string) (domain.MatchClassification, bool) {
	if query == "" {
		return 0, false
	}

	q := strings.ToLower(query)
	name := strings.ToLower(p.Name)
	category := strings.ToLower(p.Category)
	description := strings.ToLower(p.Description)

	switch {
	case strings.Contains(name, q):
		return domain.MatchExact, true
	case strings.Contains(category, q):
		return domain.MatchCategory, true
	case isSubsequence(name, q) || isSubsequence(description, q):
		return domain.MatchPartial, true
	case Match(category, q):
		return domain.MatchFuzzy, true
	}

	return 0, false
}

// Rank classifies every product, drops the ones that do not match and
// orders the rest by tier. Products in the same tier keep their input order.
func Rank(products []domain.Product, query string) []domain.MatchResult {
	results := make([]domain.MatchResult, 0, len(products))
	for _, p := range products {
		class, ok := Classify(p, query)
		if !ok {
			continue
		}
		results = append(results, domain.MatchResult{
			ProductID:      p.ID,
			Classification: class,
			Product:        p,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Classification < results[j].Classification
	})

	return results
}

func isSubsequence(text, query string) bool {
	if query == "" {
		return false
	}

	for _, r := range text {
		want, size := utf8.DecodeRuneInString(query)
		if r == want {
			query = query[size:]
			if query == "" {
				return true
			}
		}
	}

	return false
}
