package borrowsvc

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/nurkholifah99/campus-library-hub/model"
	catalogrepo "github.com/nurkholifah99/campus-library-hub/repository/catalog"
	ledgerrepo "github.com/nurkholifah99/campus-library-hub/repository/ledger"
	studentrepo "github.com/nurkholifah99/campus-library-hub/repository/student"
)

// errors used by controllers

type ErrCode string

const (
	ErrBookUnavailable   ErrCode = "BOOK_UNAVAILABLE"
	ErrInvalidTransition ErrCode = "INVALID_TRANSITION"
	ErrNotFound          ErrCode = "NOT_FOUND"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// HistoryRow is a ledger record joined with book and student display data.
// Status carries the display status, so an overdue loan reads LATE here
// while the stored record stays BORROWED.
type HistoryRow struct {
	ID          string                `json:"id"`
	BookID      string                `json:"book_id"`
	BookTitle   string                `json:"book_title"`
	BookAuthor  string                `json:"book_author"`
	StudentID   string                `json:"student_id"`
	StudentName string                `json:"student_name"`
	StudentNIM  string                `json:"student_nim"`
	Status      model.BorrowingStatus `json:"status"`
	BorrowDate  time.Time             `json:"borrow_date"`
	DueDate     time.Time             `json:"due_date"`
	ReturnDate  *time.Time            `json:"return_date,omitempty"`
}

// Stats feeds the admin dashboard cards.
type Stats struct {
	TotalBooks    int `json:"total_books"`
	BorrowedBooks int `json:"borrowed_books"`
	LateReturns   int `json:"late_returns"`
	NewRequests   int `json:"new_requests"`
}

type Catalog interface {
	Get(id string) (model.Book, error)
	Count() int
	AdjustAvailable(id string, delta int) error
}

type Ledger interface {
	Create(bookID, studentID string) (model.BorrowingRecord, error)
	Get(id string) (model.BorrowingRecord, error)
	SetStatus(id string, status model.BorrowingStatus, returnDate *time.Time) error
	Remove(id string) error
	List() []model.BorrowingRecord
	ListByStudent(studentID string) []model.BorrowingRecord
	ListByStatus(status model.BorrowingStatus) []model.BorrowingRecord
}

type Students interface {
	Get(id string) (model.Student, error)
}

type Service interface {
	// Request files a REQUESTED record; availability is checked but not
	// yet consumed.
	Request(ctx context.Context, studentID, bookID string) (*model.BorrowingRecord, error)

	// Approve hands the copy over: available -= 1, status -> BORROWED.
	Approve(ctx context.Context, recordID string) error

	// Reject drops a pending request without touching availability.
	Reject(ctx context.Context, recordID string) error

	// Return takes the copy back: available += 1, status -> RETURNED.
	Return(ctx context.Context, recordID string) error

	MyHistory(ctx context.Context, studentID string) ([]HistoryRow, error)
	ListBorrowings(ctx context.Context, status model.BorrowingStatus) ([]HistoryRow, error)
	Stats(ctx context.Context) (Stats, error)
}

// ----- Service implementation -----

// service is the coordinator that keeps book availability and ledger status
// moving together. mu serializes the mutating calls; every guard runs
// before the first mutation so a failed call leaves both stores untouched.
type service struct {
	mu       sync.Mutex
	books    Catalog
	ledger   Ledger
	students Students
	now      func() time.Time
}

func New(books Catalog, ledger Ledger, students Students) Service {
	return NewWithClock(books, ledger, students, time.Now)
}

func NewWithClock(books Catalog, ledger Ledger, students Students, now func() time.Time) Service {
	return &service{books: books, ledger: ledger, students: students, now: now}
}

func (s *service) Request(ctx context.Context, studentID, bookID string) (*model.BorrowingRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.students.Get(studentID); err != nil {
		return nil, makeErr(ErrNotFound)
	}
	book, err := s.books.Get(bookID)
	if err != nil {
		return nil, makeErr(ErrNotFound)
	}
	if book.Available <= 0 {
		return nil, makeErr(ErrBookUnavailable)
	}

	rec, err := s.ledger.Create(bookID, studentID)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *service) Approve(ctx context.Context, recordID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.ledger.Get(recordID)
	if err != nil {
		return makeErr(ErrNotFound)
	}
	if rec.Status != model.StatusRequested {
		return makeErr(ErrInvalidTransition)
	}

	// Re-check availability at approval time: an admin stock edit may have
	// shrunk it since the request was filed. AdjustAvailable is bounds
	// checked, so taking the copy and checking it is one atomic step.
	if err := s.books.AdjustAvailable(rec.BookID, -1); err != nil {
		if errors.Is(err, catalogrepo.ErrNotFound) {
			return makeErr(ErrNotFound)
		}
		return makeErr(ErrBookUnavailable)
	}
	if err := s.ledger.SetStatus(recordID, model.StatusBorrowed, nil); err != nil {
		// Undo the book effect; unreachable while the coordinator is the
		// only status writer, since the REQUESTED guard above still holds.
		_ = s.books.AdjustAvailable(rec.BookID, +1)
		return makeErr(ErrInvalidTransition)
	}
	return nil
}

func (s *service) Reject(ctx context.Context, recordID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.ledger.Get(recordID)
	if err != nil {
		return makeErr(ErrNotFound)
	}
	if rec.Status != model.StatusRequested {
		return makeErr(ErrInvalidTransition)
	}
	if err := s.ledger.Remove(recordID); err != nil {
		return makeErr(ErrNotFound)
	}
	return nil
}

func (s *service) Return(ctx context.Context, recordID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.ledger.Get(recordID)
	if err != nil {
		return makeErr(ErrNotFound)
	}
	if rec.Status != model.StatusBorrowed {
		// RETURNED is terminal, so a second return lands here and the
		// availability counter is never incremented twice.
		return makeErr(ErrInvalidTransition)
	}

	if err := s.books.AdjustAvailable(rec.BookID, +1); err != nil {
		if errors.Is(err, catalogrepo.ErrNotFound) {
			return makeErr(ErrNotFound)
		}
		return err
	}
	returnedAt := s.now()
	if err := s.ledger.SetStatus(recordID, model.StatusReturned, &returnedAt); err != nil {
		_ = s.books.AdjustAvailable(rec.BookID, -1)
		return makeErr(ErrInvalidTransition)
	}
	return nil
}

func (s *service) MyHistory(ctx context.Context, studentID string) ([]HistoryRow, error) {
	if _, err := s.students.Get(studentID); err != nil {
		return nil, makeErr(ErrNotFound)
	}
	return s.join(s.ledger.ListByStudent(studentID)), nil
}

// ListBorrowings returns all records, or only those whose display status
// matches when one is given. Filtering on LATE therefore works without
// LATE ever being stored.
func (s *service) ListBorrowings(ctx context.Context, status model.BorrowingStatus) ([]HistoryRow, error) {
	if status == "" {
		return s.join(s.ledger.List()), nil
	}
	switch status {
	case model.StatusRequested, model.StatusBorrowed, model.StatusReturned, model.StatusLate:
		return s.join(s.ledger.ListByStatus(status)), nil
	default:
		return nil, makeErr(ErrNotFound)
	}
}

func (s *service) Stats(ctx context.Context) (Stats, error) {
	return Stats{
		TotalBooks:    s.books.Count(),
		BorrowedBooks: len(s.ledger.ListByStatus(model.StatusBorrowed)),
		LateReturns:   len(s.ledger.ListByStatus(model.StatusLate)),
		NewRequests:   len(s.ledger.ListByStatus(model.StatusRequested)),
	}, nil
}

func (s *service) join(recs []model.BorrowingRecord) []HistoryRow {
	now := s.now()
	rows := make([]HistoryRow, 0, len(recs))
	for _, rec := range recs {
		row := HistoryRow{
			ID:         rec.ID,
			BookID:     rec.BookID,
			StudentID:  rec.StudentID,
			Status:     rec.DisplayStatus(now),
			BorrowDate: rec.BorrowDate,
			DueDate:    rec.DueDate,
			ReturnDate: rec.ReturnDate,
		}
		if book, err := s.books.Get(rec.BookID); err == nil {
			row.BookTitle = book.Title
			row.BookAuthor = book.Author
		}
		if st, err := s.students.Get(rec.StudentID); err == nil {
			row.StudentName = st.Name
			row.StudentNIM = st.NIM
		}
		rows = append(rows, row)
	}
	return rows
}

// interface conformance for the real stores
var (
	_ Catalog  = (*catalogrepo.Store)(nil)
	_ Ledger   = (*ledgerrepo.Store)(nil)
	_ Students = (*studentrepo.Store)(nil)
)
