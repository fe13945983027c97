package studentrepo

import (
	"errors"
	"sync"

	"github.com/nurkholifah99/campus-library-hub/model"
)

var ErrNotFound = errors.New("student not found")

// Store is the read-only student directory. The borrowing core only ever
// looks students up for existence checks and display joins; entries are
// added at registration time and never edited by the core.
type Store struct {
	mu       sync.RWMutex
	students map[string]model.Student
	byNIM    map[string]string
	order    []string
}

func New() *Store {
	return &Store{
		students: make(map[string]model.Student),
		byNIM:    make(map[string]string),
	}
}

func (s *Store) Add(st model.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.students[st.ID]; ok {
		return errors.New("student id already exists")
	}
	if _, ok := s.byNIM[st.NIM]; ok {
		return errors.New("nim already registered")
	}
	s.students[st.ID] = st
	s.byNIM[st.NIM] = st.ID
	s.order = append(s.order, st.ID)
	return nil
}

func (s *Store) Get(id string) (model.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.students[id]
	if !ok {
		return model.Student{}, ErrNotFound
	}
	return st, nil
}

func (s *Store) GetByNIM(nim string) (model.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byNIM[nim]
	if !ok {
		return model.Student{}, ErrNotFound
	}
	return s.students[id], nil
}

func (s *Store) List() []model.Student {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Student, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.students[id])
	}
	return out
}
