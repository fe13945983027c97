// service/search/search_service_test.go
package searchsvc_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nurkholifah99/campus-library-hub/model"
	searchsvc "github.com/nurkholifah99/campus-library-hub/service/search"
)

var shelf = []model.Book{
	{ID: "b1", Title: "Algoritma dan Struktur Data", Author: "Rinaldi Munir", Category: "Teknologi", Year: 2019, Stock: 2, Available: 1},
	{ID: "b2", Title: "Laskar Pelangi", Author: "Andrea Hirata", Category: "Sastra", Year: 2005, Stock: 3, Available: 0},
	{ID: "b3", Title: "Introduction to Algorithms", Author: "Thomas Cormen", Category: "Teknologi", Year: 2009, Stock: 1, Available: 1},
	{ID: "b4", Title: "Bumi Manusia", Author: "Pramoedya Ananta Toer", Category: "Sastra", Year: 1980, Stock: 2, Available: 2},
	{ID: "b5", Title: "Clean Code", Author: "Robert Martin", Category: "Teknologi", Year: 2008, Stock: 1, Available: 0},
}

func ids(books []model.Book) []string {
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.ID)
	}
	return out
}

func TestSearch_TextAndAvailability(t *testing.T) {
	got := searchsvc.Search(shelf, searchsvc.Query{
		Text:         "algo",
		Category:     "*",
		Availability: searchsvc.AvailabilityAvailable,
	})
	// case-insensitive title-or-author match AND available > 0, input order
	require.Equal(t, []string{"b1", "b3"}, ids(got))
}

func TestSearch_TextMatchesAuthor(t *testing.T) {
	got := searchsvc.Search(shelf, searchsvc.Query{Text: "hirata"})
	require.Equal(t, []string{"b2"}, ids(got))
}

func TestSearch_AllFiltersAnd(t *testing.T) {
	got := searchsvc.Search(shelf, searchsvc.Query{
		Text:         "a",
		Category:     "Sastra",
		Year:         2005,
		Availability: searchsvc.AvailabilityUnavailable,
	})
	require.Equal(t, []string{"b2"}, ids(got))

	// same query with a year nothing matches
	got = searchsvc.Search(shelf, searchsvc.Query{Category: "Sastra", Year: 1999})
	require.Empty(t, got)
}

func TestSearch_EmptyQueryReturnsEverything(t *testing.T) {
	got := searchsvc.Search(shelf, searchsvc.Query{})
	require.Equal(t, []string{"b1", "b2", "b3", "b4", "b5"}, ids(got))
}

func TestSearch_OutputIsSubsequence(t *testing.T) {
	queries := []searchsvc.Query{
		{Text: "a"},
		{Category: "Teknologi"},
		{Availability: searchsvc.AvailabilityUnavailable},
		{Text: "e", Availability: searchsvc.AvailabilityAvailable},
	}
	for _, q := range queries {
		got := searchsvc.Search(shelf, q)
		// every output book appears in the input, in the same relative order
		i := 0
		for _, b := range got {
			for i < len(shelf) && shelf[i].ID != b.ID {
				i++
			}
			require.Less(t, i, len(shelf), "query %+v produced %s out of order", q, b.ID)
			i++
		}
	}
}

func TestAutocomplete(t *testing.T) {
	// below two characters nothing is suggested
	require.Empty(t, searchsvc.Autocomplete(shelf, ""))
	require.Empty(t, searchsvc.Autocomplete(shelf, "a"))

	got := searchsvc.Autocomplete(shelf, "al")
	require.Equal(t, []string{"b1", "b3"}, ids(got))
}

func TestAutocomplete_CapsAtFive(t *testing.T) {
	var books []model.Book
	for i := 0; i < 8; i++ {
		books = append(books, model.Book{ID: string(rune('a' + i)), Title: "Pemrograman Go"})
	}
	got := searchsvc.Autocomplete(books, "go")
	require.Len(t, got, 5)
	require.Equal(t, []string{"a", "b", "c", "d", "e"}, ids(got))
}

func TestFacets(t *testing.T) {
	require.Equal(t, []string{"Teknologi", "Sastra"}, searchsvc.Categories(shelf))
	require.Equal(t, []int{2019, 2009, 2008, 2005, 1980}, searchsvc.Years(shelf))
}
