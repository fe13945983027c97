package catalogsvc

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/nurkholifah99/campus-library-hub/model"
	catalogrepo "github.com/nurkholifah99/campus-library-hub/repository/catalog"
	ledgerrepo "github.com/nurkholifah99/campus-library-hub/repository/ledger"
)

type ErrCode string

const (
	ErrDuplicateID           ErrCode = "DUPLICATE_ID"
	ErrInvalidStockReduction ErrCode = "INVALID_STOCK_REDUCTION"
	ErrBookInUse             ErrCode = "BOOK_IN_USE"
	ErrNotFound              ErrCode = "NOT_FOUND"
	ErrBadInput              ErrCode = "BAD_INPUT"
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

// CreateBook is the admin add-book payload. A new book always starts with
// every copy on the shelf, so only stock is taken and available mirrors it.
type CreateBook struct {
	Title       string
	Author      string
	Category    string
	ISBN        string
	Description string
	Year        int
	Stock       int
}

// UpdateBook mirrors catalogrepo.UpdateFields at the service boundary.
type UpdateBook = catalogrepo.UpdateFields

type Catalog interface {
	Add(b model.Book) error
	Update(id string, f catalogrepo.UpdateFields) (model.Book, error)
	Remove(id string) error
	Get(id string) (model.Book, error)
	List() []model.Book
}

// ActiveRefs answers how many live borrowings still point at a book; the
// delete guard consults it so no record is ever orphaned.
type ActiveRefs interface {
	CountActiveByBook(bookID string) int
}

type Service interface {
	Create(ctx context.Context, in CreateBook) (model.Book, error)
	Update(ctx context.Context, id string, f UpdateBook) (model.Book, error)
	Remove(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (model.Book, error)
	List(ctx context.Context) ([]model.Book, error)
}

type service struct {
	books Catalog
	refs  ActiveRefs
}

func New(books Catalog, refs ActiveRefs) Service {
	return &service{books: books, refs: refs}
}

func (s *service) Create(ctx context.Context, in CreateBook) (model.Book, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Author) == "" ||
		strings.TrimSpace(in.Category) == "" || in.Stock < 0 {
		return model.Book{}, makeErr(ErrBadInput)
	}

	b := model.Book{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Author:      in.Author,
		Category:    in.Category,
		ISBN:        in.ISBN,
		Description: in.Description,
		Year:        in.Year,
		Stock:       in.Stock,
		Available:   in.Stock,
	}
	if err := s.books.Add(b); err != nil {
		if errors.Is(err, catalogrepo.ErrDuplicateID) {
			return model.Book{}, makeErr(ErrDuplicateID)
		}
		return model.Book{}, err
	}
	return b, nil
}

func (s *service) Update(ctx context.Context, id string, f UpdateBook) (model.Book, error) {
	b, err := s.books.Update(id, f)
	switch {
	case err == nil:
		return b, nil
	case errors.Is(err, catalogrepo.ErrNotFound):
		return model.Book{}, makeErr(ErrNotFound)
	case errors.Is(err, catalogrepo.ErrInvalidStockReduction):
		return model.Book{}, makeErr(ErrInvalidStockReduction)
	default:
		return model.Book{}, err
	}
}

func (s *service) Remove(ctx context.Context, id string) error {
	if _, err := s.books.Get(id); err != nil {
		return makeErr(ErrNotFound)
	}
	if s.refs.CountActiveByBook(id) > 0 {
		return makeErr(ErrBookInUse)
	}
	if err := s.books.Remove(id); err != nil {
		return makeErr(ErrNotFound)
	}
	return nil
}

func (s *service) Get(ctx context.Context, id string) (model.Book, error) {
	b, err := s.books.Get(id)
	if err != nil {
		return model.Book{}, makeErr(ErrNotFound)
	}
	return b, nil
}

func (s *service) List(ctx context.Context) ([]model.Book, error) {
	return s.books.List(), nil
}

var (
	_ Catalog    = (*catalogrepo.Store)(nil)
	_ ActiveRefs = (*ledgerrepo.Store)(nil)
)
