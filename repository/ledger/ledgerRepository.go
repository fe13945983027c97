package ledgerrepo

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nurkholifah99/campus-library-hub/model"
)

// LoanPeriod is the fixed borrowing policy: due 14 days after the request.
const LoanPeriod = 14 * 24 * time.Hour

var (
	ErrNotFound          = errors.New("borrowing record not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// allowed transitions between stored statuses; LATE never appears here
// because it is derived at read time, not stored.
var transitions = map[model.BorrowingStatus]model.BorrowingStatus{
	model.StatusRequested: model.StatusBorrowed,
	model.StatusBorrowed:  model.StatusReturned,
}

// Store is the in-memory authoritative set of BorrowingRecord entities in
// insertion order. Status only moves through SetStatus, which enforces the
// transition table; the coordinator is its only mutating caller.
type Store struct {
	mu      sync.RWMutex
	records map[string]*model.BorrowingRecord
	order   []string
	now     func() time.Time
}

func New() *Store {
	return NewWithClock(time.Now)
}

// NewWithClock lets tests pin the wall clock the late derivation reads.
func NewWithClock(now func() time.Time) *Store {
	return &Store{records: make(map[string]*model.BorrowingRecord), now: now}
}

// Create allocates a REQUESTED record. Availability is deliberately not
// checked here; that guard belongs to the coordinator so book and ledger
// are only ever mutated together.
func (s *Store) Create(bookID, studentID string) (model.BorrowingRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	rec := model.BorrowingRecord{
		ID:         uuid.NewString(),
		BookID:     bookID,
		StudentID:  studentID,
		Status:     model.StatusRequested,
		BorrowDate: now,
		DueDate:    now.Add(LoanPeriod),
	}
	s.records[rec.ID] = &rec
	s.order = append(s.order, rec.ID)
	return rec, nil
}

func (s *Store) Get(id string) (model.BorrowingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return model.BorrowingRecord{}, ErrNotFound
	}
	return *rec, nil
}

// SetStatus applies a stored-status transition, failing with
// ErrInvalidTransition for anything outside the table. returnDate is set
// only when moving to RETURNED.
func (s *Store) SetStatus(id string, status model.BorrowingStatus, returnDate *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}
	if transitions[rec.Status] != status {
		return ErrInvalidTransition
	}
	rec.Status = status
	if status == model.StatusReturned {
		rec.ReturnDate = returnDate
	}
	return nil
}

// Remove deletes a record outright. Rejecting a request removes it rather
// than marking it returned: no copy ever left the shelf, so it must not
// pollute borrowing history.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return ErrNotFound
	}
	delete(s.records, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) List() []model.BorrowingRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(func(model.BorrowingRecord) bool { return true })
}

func (s *Store) ListByStudent(studentID string) []model.BorrowingRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(func(r model.BorrowingRecord) bool { return r.StudentID == studentID })
}

// ListByStatus filters on the display status, so asking for LATE yields
// overdue BORROWED records and asking for BORROWED yields only the ones
// still within their due date.
func (s *Store) ListByStatus(status model.BorrowingStatus) []model.BorrowingRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	return s.snapshot(func(r model.BorrowingRecord) bool { return r.DisplayStatus(now) == status })
}

// CountActiveByBook reports how many REQUESTED or BORROWED records still
// reference the book; the catalog's delete guard depends on it.
func (s *Store) CountActiveByBook(bookID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, rec := range s.records {
		if rec.BookID == bookID && rec.Active() {
			n++
		}
	}
	return n
}

// CountBorrowedByBook counts records currently in stored BORROWED state,
// overdue or not. For every book this must equal stock - available.
func (s *Store) CountBorrowedByBook(bookID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, rec := range s.records {
		if rec.BookID == bookID && rec.Status == model.StatusBorrowed {
			n++
		}
	}
	return n
}

func (s *Store) snapshot(keep func(model.BorrowingRecord) bool) []model.BorrowingRecord {
	var out []model.BorrowingRecord
	for _, id := range s.order {
		if rec := *s.records[id]; keep(rec) {
			out = append(out, rec)
		}
	}
	return out
}
