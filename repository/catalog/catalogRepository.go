package catalogrepo

import (
	"errors"
	"sync"

	"github.com/nurkholifah99/campus-library-hub/model"
)

var (
	ErrNotFound              = errors.New("book not found")
	ErrDuplicateID           = errors.New("book id already exists")
	ErrInvalidStockReduction = errors.New("stock below lent count")
	ErrAvailabilityBounds    = errors.New("available out of bounds")
)

// UpdateFields carries a partial book edit; nil means "leave as is".
// Stock edits shift Available by the same delta so the lent count is
// preserved.
type UpdateFields struct {
	Title       *string
	Author      *string
	Category    *string
	ISBN        *string
	Description *string
	Year        *int
	Stock       *int
}

// Store is the in-memory authoritative set of Book entities, keyed by id
// and iterated in insertion order. Stock and Available are only ever
// mutated through the methods here, never by handing out live pointers.
type Store struct {
	mu    sync.RWMutex
	books map[string]*model.Book
	order []string
}

func New() *Store {
	return &Store{books: make(map[string]*model.Book)}
}

func (s *Store) Add(b model.Book) error {
	if b.Available != b.Stock {
		return errors.New("new book must have available == stock")
	}
	if b.Stock < 0 {
		return errors.New("stock must be >= 0")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[b.ID]; ok {
		return ErrDuplicateID
	}
	cp := b
	s.books[b.ID] = &cp
	s.order = append(s.order, b.ID)
	return nil
}

func (s *Store) Update(id string, f UpdateFields) (model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.books[id]
	if !ok {
		return model.Book{}, ErrNotFound
	}

	if f.Stock != nil {
		lent := b.Stock - b.Available
		if *f.Stock < lent {
			return model.Book{}, ErrInvalidStockReduction
		}
	}

	if f.Title != nil {
		b.Title = *f.Title
	}
	if f.Author != nil {
		b.Author = *f.Author
	}
	if f.Category != nil {
		b.Category = *f.Category
	}
	if f.ISBN != nil {
		b.ISBN = *f.ISBN
	}
	if f.Description != nil {
		b.Description = *f.Description
	}
	if f.Year != nil {
		b.Year = *f.Year
	}
	if f.Stock != nil {
		delta := *f.Stock - b.Stock
		b.Stock = *f.Stock
		b.Available += delta
	}
	return *b, nil
}

func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[id]; !ok {
		return ErrNotFound
	}
	delete(s.books, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) Get(id string) (model.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.books[id]
	if !ok {
		return model.Book{}, ErrNotFound
	}
	return *b, nil
}

// List returns a fresh snapshot in insertion order; callers may range over
// it as often as they like without holding any lock.
func (s *Store) List() []model.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Book, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.books[id])
	}
	return out
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// AdjustAvailable moves the available counter by delta, refusing any move
// that would leave it outside [0, stock]. The coordinator calls this as the
// book half of a status transition.
func (s *Store) AdjustAvailable(id string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.books[id]
	if !ok {
		return ErrNotFound
	}
	next := b.Available + delta
	if next < 0 || next > b.Stock {
		return ErrAvailabilityBounds
	}
	b.Available = next
	return nil
}
