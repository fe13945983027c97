package userrepo

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/nurkholifah99/campus-library-hub/model"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

// Store holds auth accounts in memory, keyed by lowercased email.
type Store struct {
	mu      sync.RWMutex
	byID    map[int64]*model.User
	byEmail map[string]int64
	nextID  int64
}

func New() *Store {
	return &Store{byID: make(map[int64]*model.User), byEmail: make(map[string]int64)}
}

func (s *Store) Create(u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(u.Email))
	if _, ok := s.byEmail[email]; ok {
		return ErrEmailTaken
	}
	s.nextID++
	u.ID = s.nextID
	u.Email = email
	u.CreatedAt = time.Now().UTC()

	cp := *u
	s.byID[u.ID] = &cp
	s.byEmail[email] = u.ID
	return nil
}

func (s *Store) ByEmail(email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *s.byID[id]
	return &cp, nil
}

func (s *Store) ByID(id int64) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}
