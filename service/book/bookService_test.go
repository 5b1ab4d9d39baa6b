// service/book/book_service_test.go
package booksvc_test

import (
	"context"
	"errors"
	"testing"

	"bookrental/model"
	booksvc "bookrental/service/book"
	"bookrental/util/apperr"
)

type repoMock struct {
	createFn         func(ctx context.Context, b *booksvc.Book) error
	updateFn         func(ctx context.Context, b *booksvc.Book) error
	listFn           func(ctx context.Context) ([]booksvc.Book, error)
	detailFn         func(ctx context.Context, id int64) (*booksvc.Book, error)
	authorExistsFn   func(ctx context.Context, id int64) (bool, error)
	bookTypeExistsFn func(ctx context.Context, id int64) (bool, error)
}

func (m *repoMock) CreateBook(ctx context.Context, b *booksvc.Book) error { return m.createFn(ctx, b) }
func (m *repoMock) UpdateBook(ctx context.Context, b *booksvc.Book) error { return m.updateFn(ctx, b) }
func (m *repoMock) List(ctx context.Context) ([]booksvc.Book, error)      { return m.listFn(ctx) }
func (m *repoMock) Detail(ctx context.Context, id int64) (*booksvc.Book, error) {
	return m.detailFn(ctx, id)
}
func (m *repoMock) AuthorExists(ctx context.Context, id int64) (bool, error) {
	if m.authorExistsFn == nil {
		return true, nil
	}
	return m.authorExistsFn(ctx, id)
}
func (m *repoMock) BookTypeExists(ctx context.Context, id int64) (bool, error) {
	if m.bookTypeExistsFn == nil {
		return true, nil
	}
	return m.bookTypeExistsFn(ctx, id)
}

func TestCreate_Validation(t *testing.T) {
	s := booksvc.New(&repoMock{})
	if _, err := s.Create(context.Background(), "", 1, 1); apperr.Code(err) != apperr.ErrValidation {
		t.Fatalf("expected validation error for empty title, got %v", err)
	}
	if _, err := s.Create(context.Background(), "The River Between", 0, 1); apperr.Code(err) != apperr.ErrValidation {
		t.Fatalf("expected validation error for missing author, got %v", err)
	}
	if _, err := s.Create(context.Background(), "The River Between", 1, -1); apperr.Code(err) != apperr.ErrValidation {
		t.Fatalf("expected validation error for missing book type, got %v", err)
	}
}

func TestCreate_MissingReferencesAreIntegrityErrors(t *testing.T) {
	created := false
	m := &repoMock{
		bookTypeExistsFn: func(ctx context.Context, id int64) (bool, error) { return id != 404, nil },
		createFn: func(ctx context.Context, b *booksvc.Book) error {
			created = true
			return nil
		},
	}
	s := booksvc.New(m)

	_, err := s.Create(context.Background(), "The River Between", 1, 404)
	if apperr.Code(err) != apperr.ErrIntegrity {
		t.Fatalf("got %v; want integrity error", err)
	}
	if created {
		t.Fatal("book must not be persisted")
	}

	m.authorExistsFn = func(ctx context.Context, id int64) (bool, error) { return false, nil }
	if _, err := s.Create(context.Background(), "The River Between", 9, 1); apperr.Code(err) != apperr.ErrIntegrity {
		t.Fatalf("got %v; want integrity error", err)
	}
}

func TestCreate_Success(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, b *booksvc.Book) error {
			if b.Title != "The River Between" || b.AuthorID != 1 || b.BookTypeID != 2 {
				return errors.New("bad args")
			}
			b.ID = 42
			return nil
		},
	}
	s := booksvc.New(m)
	id, err := s.Create(context.Background(), "  The River Between ", 1, 2)
	if err != nil || id != 42 {
		t.Fatalf("got id=%v err=%v; want 42 nil", id, err)
	}
}

func TestUpdate_UnknownBook(t *testing.T) {
	m := &repoMock{
		detailFn: func(ctx context.Context, id int64) (*booksvc.Book, error) {
			return nil, apperr.NotFound("book not found")
		},
	}
	_, err := booksvc.New(m).Update(context.Background(), 5, "Title", 1, 1)
	if apperr.Code(err) != apperr.ErrNotFound {
		t.Fatalf("got %v; want not found", err)
	}
}

func TestUpdate_Success(t *testing.T) {
	stored := &model.Book{ID: 5, Title: "Old", AuthorID: 1, BookTypeID: 1}
	m := &repoMock{
		detailFn: func(ctx context.Context, id int64) (*booksvc.Book, error) { return stored, nil },
		updateFn: func(ctx context.Context, b *booksvc.Book) error {
			stored = b
			return nil
		},
	}
	got, err := booksvc.New(m).Update(context.Background(), 5, "Things Fall Apart", 2, 3)
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got.ID != 5 || got.Title != "Things Fall Apart" || got.AuthorID != 2 || got.BookTypeID != 3 {
		t.Fatalf("unexpected book %+v", got)
	}
}

func TestPassThroughs(t *testing.T) {
	m := &repoMock{
		listFn:   func(ctx context.Context) ([]booksvc.Book, error) { return nil, nil },
		detailFn: func(ctx context.Context, id int64) (*booksvc.Book, error) { return &booksvc.Book{}, nil },
	}
	s := booksvc.New(m)

	if _, err := s.List(context.Background()); err != nil {
		t.Fatalf("List error: %v", err)
	}
	if _, err := s.Detail(context.Background(), 99); err != nil {
		t.Fatalf("Detail error: %v", err)
	}
}
