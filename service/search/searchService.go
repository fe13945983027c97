// Package searchsvc is the read side of the catalog: pure filtering over a
// book snapshot, never a mutation. Output keeps the input's insertion
// order; there is no relevance re-sort.
package searchsvc

import (
	"sort"
	"strings"

	"github.com/nurkholifah99/campus-library-hub/model"
)

// Fixed autocomplete tuning: suggestions start at two typed characters and
// cap at five rows, matching the search bar they feed.
const (
	autocompleteMinLen = 2
	autocompleteLimit  = 5
)

// Wildcard matches every category or year.
const Wildcard = "*"

type Availability string

const (
	AvailabilityAny         Availability = "any"
	AvailabilityAvailable   Availability = "available"
	AvailabilityUnavailable Availability = "unavailable"
)

// Query is one catalog filter set. Zero values (empty text, empty or "*"
// category, year 0, empty availability) leave that filter inactive; a book
// must pass every active filter.
type Query struct {
	Text         string
	Category     string
	Year         int
	Availability Availability
}

// Search filters books down to those matching q, preserving input order.
func Search(books []model.Book, q Query) []model.Book {
	out := make([]model.Book, 0, len(books))
	for _, b := range books {
		if matches(b, q) {
			out = append(out, b)
		}
	}
	return out
}

// Autocomplete returns up to five title-or-author substring matches for a
// partial query, in input order. Fewer than two characters yields nothing.
func Autocomplete(books []model.Book, text string) []model.Book {
	if len(text) < autocompleteMinLen {
		return nil
	}
	var out []model.Book
	for _, b := range books {
		if matchesText(b, text) {
			out = append(out, b)
			if len(out) == autocompleteLimit {
				break
			}
		}
	}
	return out
}

// Years lists distinct publication years, newest first, for the filter
// sidebar.
func Years(books []model.Book) []int {
	seen := make(map[int]bool)
	var out []int
	for _, b := range books {
		if !seen[b.Year] {
			seen[b.Year] = true
			out = append(out, b.Year)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// Categories lists distinct categories in first-seen order.
func Categories(books []model.Book) []string {
	seen := make(map[string]bool)
	var out []string
	for _, b := range books {
		if !seen[b.Category] {
			seen[b.Category] = true
			out = append(out, b.Category)
		}
	}
	return out
}

func matches(b model.Book, q Query) bool {
	if q.Text != "" && !matchesText(b, q.Text) {
		return false
	}
	if q.Category != "" && q.Category != Wildcard && b.Category != q.Category {
		return false
	}
	if q.Year != 0 && b.Year != q.Year {
		return false
	}
	switch q.Availability {
	case AvailabilityAvailable:
		return b.Available > 0
	case AvailabilityUnavailable:
		return b.Available == 0
	default:
		return true
	}
}

func matchesText(b model.Book, text string) bool {
	t := strings.ToLower(text)
	return strings.Contains(strings.ToLower(b.Title), t) ||
		strings.Contains(strings.ToLower(b.Author), t)
}
