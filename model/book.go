// model/book.go
package model

// Book is a catalog entry for one title with a finite copy count.
// Available counts copies not currently lent out, so 0 <= Available <= Stock
// must hold at all times.
type Book struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Category    string `json:"category"`
	ISBN        string `json:"isbn"`
	Description string `json:"description"`
	Year        int    `json:"year"`
	Stock       int    `json:"stock"`
	Available   int    `json:"available"`
}

// Lent returns how many copies are currently out with students.
func (b Book) Lent() int { return b.Stock - b.Available }
