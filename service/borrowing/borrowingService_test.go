// service/borrowing/borrowing_service_test.go
package borrowsvc_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nurkholifah99/campus-library-hub/model"
	catalogrepo "github.com/nurkholifah99/campus-library-hub/repository/catalog"
	ledgerrepo "github.com/nurkholifah99/campus-library-hub/repository/ledger"
	studentrepo "github.com/nurkholifah99/campus-library-hub/repository/student"
	borrowsvc "github.com/nurkholifah99/campus-library-hub/service/borrowing"
)

type fixture struct {
	books    *catalogrepo.Store
	ledger   *ledgerrepo.Store
	students *studentrepo.Store
	svc      borrowsvc.Service
	clock    *time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	clock := &start
	now := func() time.Time { return *clock }

	f := &fixture{
		books:    catalogrepo.New(),
		ledger:   ledgerrepo.NewWithClock(now),
		students: studentrepo.New(),
		clock:    clock,
	}
	f.svc = borrowsvc.NewWithClock(f.books, f.ledger, f.students, now)

	require.NoError(t, f.students.Add(model.Student{ID: "alice", NIM: "1101", Name: "Alice"}))
	require.NoError(t, f.students.Add(model.Student{ID: "bob", NIM: "1102", Name: "Bob"}))
	return f
}

func (f *fixture) addBook(t *testing.T, id string, stock int) {
	t.Helper()
	require.NoError(t, f.books.Add(model.Book{
		ID: id, Title: "Algoritma " + id, Author: "Rinaldi", Category: "Teknologi",
		Year: 2020, Stock: stock, Available: stock,
	}))
}

// checkInvariants asserts 0 <= available <= stock and that the lent count
// matches the ledger's BORROWED records for every book.
func (f *fixture) checkInvariants(t *testing.T) {
	t.Helper()
	for _, b := range f.books.List() {
		require.GreaterOrEqual(t, b.Available, 0, "book %s", b.ID)
		require.LessOrEqual(t, b.Available, b.Stock, "book %s", b.ID)
		require.Equal(t, f.ledger.CountBorrowedByBook(b.ID), b.Stock-b.Available, "book %s", b.ID)
	}
}

func TestRequestApproveLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addBook(t, "b1", 2)

	// two students request the same title
	r1, err := f.svc.Request(ctx, "alice", "b1")
	require.NoError(t, err)
	require.Equal(t, model.StatusRequested, r1.Status)
	r2, err := f.svc.Request(ctx, "bob", "b1")
	require.NoError(t, err)

	// a request reserves nothing
	b, _ := f.books.Get("b1")
	require.Equal(t, 2, b.Available)
	f.checkInvariants(t)

	require.NoError(t, f.svc.Approve(ctx, r1.ID))
	b, _ = f.books.Get("b1")
	require.Equal(t, 1, b.Available)

	require.NoError(t, f.svc.Approve(ctx, r2.ID))
	b, _ = f.books.Get("b1")
	require.Equal(t, 0, b.Available)
	f.checkInvariants(t)

	// no copies left: a third request is refused
	_, err = f.svc.Request(ctx, "alice", "b1")
	require.Equal(t, borrowsvc.ErrBookUnavailable, borrowsvc.Code(err))
	f.checkInvariants(t)
}

func TestRejectLeavesAvailabilityAlone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addBook(t, "b1", 1)

	rec, err := f.svc.Request(ctx, "alice", "b1")
	require.NoError(t, err)

	require.NoError(t, f.svc.Reject(ctx, rec.ID))

	// record gone, never part of history
	_, err = f.ledger.Get(rec.ID)
	require.ErrorIs(t, err, ledgerrepo.ErrNotFound)
	b, _ := f.books.Get("b1")
	require.Equal(t, 1, b.Available)
	f.checkInvariants(t)

	// rejecting twice reports not found
	require.Equal(t, borrowsvc.ErrNotFound, borrowsvc.Code(f.svc.Reject(ctx, rec.ID)))
}

func TestReturnIsTerminal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addBook(t, "b1", 1)

	rec, err := f.svc.Request(ctx, "alice", "b1")
	require.NoError(t, err)
	require.NoError(t, f.svc.Approve(ctx, rec.ID))

	require.NoError(t, f.svc.Return(ctx, rec.ID))
	b, _ := f.books.Get("b1")
	require.Equal(t, 1, b.Available)

	// second return fails and must not double-increment
	require.Equal(t, borrowsvc.ErrInvalidTransition, borrowsvc.Code(f.svc.Return(ctx, rec.ID)))
	b, _ = f.books.Get("b1")
	require.Equal(t, 1, b.Available)
	f.checkInvariants(t)

	got, err := f.ledger.Get(rec.ID)
	require.NoError(t, err)
	require.Equal(t, model.StatusReturned, got.Status)
	require.NotNil(t, got.ReturnDate)
}

func TestApproveGuards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addBook(t, "b1", 1)

	rec, err := f.svc.Request(ctx, "alice", "b1")
	require.NoError(t, err)
	require.NoError(t, f.svc.Approve(ctx, rec.ID))

	// approving an already-borrowed record
	require.Equal(t, borrowsvc.ErrInvalidTransition, borrowsvc.Code(f.svc.Approve(ctx, rec.ID)))

	// unknown record
	require.Equal(t, borrowsvc.ErrNotFound, borrowsvc.Code(f.svc.Approve(ctx, "nope")))
	f.checkInvariants(t)
}

func TestApproveRechecksAvailability(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addBook(t, "b1", 2)

	r1, err := f.svc.Request(ctx, "alice", "b1")
	require.NoError(t, err)
	r2, err := f.svc.Request(ctx, "bob", "b1")
	require.NoError(t, err)
	require.NoError(t, f.svc.Approve(ctx, r1.ID))

	// admin shrinks stock to the lent count; no copy is free anymore
	one := 1
	_, err = f.books.Update("b1", catalogrepo.UpdateFields{Stock: &one})
	require.NoError(t, err)

	err = f.svc.Approve(ctx, r2.ID)
	require.Equal(t, borrowsvc.ErrBookUnavailable, borrowsvc.Code(err))

	// failed approval mutated neither store
	got, _ := f.ledger.Get(r2.ID)
	require.Equal(t, model.StatusRequested, got.Status)
	b, _ := f.books.Get("b1")
	require.Equal(t, 0, b.Available)
	f.checkInvariants(t)
}

func TestRequestUnknownRefs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addBook(t, "b1", 1)

	_, err := f.svc.Request(ctx, "alice", "nope")
	require.Equal(t, borrowsvc.ErrNotFound, borrowsvc.Code(err))
	_, err = f.svc.Request(ctx, "nobody", "b1")
	require.Equal(t, borrowsvc.ErrNotFound, borrowsvc.Code(err))
	require.Empty(t, f.ledger.List())
}

func TestHistoryJoinAndLateDisplay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addBook(t, "b1", 1)

	rec, err := f.svc.Request(ctx, "alice", "b1")
	require.NoError(t, err)
	require.NoError(t, f.svc.Approve(ctx, rec.ID))

	rows, err := f.svc.MyHistory(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Algoritma b1", rows[0].BookTitle)
	require.Equal(t, "Alice", rows[0].StudentName)
	require.Equal(t, model.StatusBorrowed, rows[0].Status)

	// push the clock past the due date: display flips to LATE, store stays
	*f.clock = f.clock.Add(15 * 24 * time.Hour)
	rows, err = f.svc.MyHistory(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, model.StatusLate, rows[0].Status)
	stored, _ := f.ledger.Get(rec.ID)
	require.Equal(t, model.StatusBorrowed, stored.Status)

	// returning a late loan still works and clears the late display
	require.NoError(t, f.svc.Return(ctx, rec.ID))
	rows, _ = f.svc.MyHistory(ctx, "alice")
	require.Equal(t, model.StatusReturned, rows[0].Status)
	f.checkInvariants(t)
}

func TestListBorrowingsStatusFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addBook(t, "b1", 2)

	r1, _ := f.svc.Request(ctx, "alice", "b1")
	_, err := f.svc.Request(ctx, "bob", "b1")
	require.NoError(t, err)
	require.NoError(t, f.svc.Approve(ctx, r1.ID))

	all, err := f.svc.ListBorrowings(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	requested, err := f.svc.ListBorrowings(ctx, model.StatusRequested)
	require.NoError(t, err)
	require.Len(t, requested, 1)

	*f.clock = f.clock.Add(15 * 24 * time.Hour)
	late, err := f.svc.ListBorrowings(ctx, model.StatusLate)
	require.NoError(t, err)
	require.Len(t, late, 1)
	require.Equal(t, r1.ID, late[0].ID)

	_, err = f.svc.ListBorrowings(ctx, "BOGUS")
	require.Equal(t, borrowsvc.ErrNotFound, borrowsvc.Code(err))
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addBook(t, "b1", 2)
	f.addBook(t, "b2", 1)

	r1, _ := f.svc.Request(ctx, "alice", "b1")
	_, err := f.svc.Request(ctx, "bob", "b2")
	require.NoError(t, err)
	require.NoError(t, f.svc.Approve(ctx, r1.ID))

	stats, err := f.svc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, borrowsvc.Stats{
		TotalBooks:    2,
		BorrowedBooks: 1,
		LateReturns:   0,
		NewRequests:   1,
	}, stats)

	*f.clock = f.clock.Add(15 * 24 * time.Hour)
	stats, err = f.svc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, stats.BorrowedBooks)
	require.Equal(t, 1, stats.LateReturns)
}
