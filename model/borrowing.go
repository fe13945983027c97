// model/borrowing.go
package model

import "time"

type BorrowingStatus string

const (
	StatusRequested BorrowingStatus = "REQUESTED"
	StatusBorrowed  BorrowingStatus = "BORROWED"
	StatusReturned  BorrowingStatus = "RETURNED"

	// StatusLate is never stored. It is derived at read time from a
	// BORROWED record whose due date has passed.
	StatusLate BorrowingStatus = "LATE"
)

// BorrowingRecord tracks one student's claim on one copy of a book.
// BookID is a lookup key only; the catalog owns the Book.
type BorrowingRecord struct {
	ID         string          `json:"id"`
	BookID     string          `json:"book_id"`
	StudentID  string          `json:"student_id"`
	Status     BorrowingStatus `json:"status"`
	BorrowDate time.Time       `json:"borrow_date"`
	DueDate    time.Time       `json:"due_date"`
	ReturnDate *time.Time      `json:"return_date,omitempty"`
}

// DisplayStatus is the single place the late rule lives: a BORROWED record
// past its due date reads as LATE while the stored status stays BORROWED.
func (r BorrowingRecord) DisplayStatus(now time.Time) BorrowingStatus {
	if r.Status == StatusBorrowed && now.After(r.DueDate) {
		return StatusLate
	}
	return r.Status
}

// Active reports whether the record still pins a book (pending or lent).
func (r BorrowingRecord) Active() bool {
	return r.Status == StatusRequested || r.Status == StatusBorrowed
}
