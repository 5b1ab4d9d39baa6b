package booksvc

import (
	"context"

	"bookrental/model"
	repo "bookrental/repository/book"
	"bookrental/util/apperr"
	"bookrental/util/fields"
)

type Book = repo.Book

type Repo interface {
	CreateBook(ctx context.Context, b *Book) error
	UpdateBook(ctx context.Context, b *Book) error
	List(ctx context.Context) ([]Book, error)
	Detail(ctx context.Context, id int64) (*Book, error)
	AuthorExists(ctx context.Context, id int64) (bool, error)
	BookTypeExists(ctx context.Context, id int64) (bool, error)
}

type Service interface {
	Create(ctx context.Context, title string, authorID, bookTypeID int64) (int64, error)
	Update(ctx context.Context, id int64, title string, authorID, bookTypeID int64) (*Book, error)
	List(ctx context.Context) ([]Book, error)
	Detail(ctx context.Context, id int64) (*Book, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) build(ctx context.Context, id int64, title string, authorID, bookTypeID int64) (*Book, error) {
	title, err := fields.Required("title", title, 300)
	if err != nil {
		return nil, err
	}
	if authorID <= 0 || bookTypeID <= 0 {
		return nil, apperr.Validation("author and book type are required")
	}
	if err := s.mustExist(ctx, "author", authorID, s.r.AuthorExists); err != nil {
		return nil, err
	}
	if err := s.mustExist(ctx, "book type", bookTypeID, s.r.BookTypeExists); err != nil {
		return nil, err
	}
	return &model.Book{ID: id, Title: title, AuthorID: authorID, BookTypeID: bookTypeID}, nil
}

func (s *service) mustExist(ctx context.Context, what string, id int64, exists func(context.Context, int64) (bool, error)) error {
	ok, err := exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Integrity("%s %d does not exist", what, id)
	}
	return nil
}

func (s *service) Create(ctx context.Context, title string, authorID, bookTypeID int64) (int64, error) {
	b, err := s.build(ctx, 0, title, authorID, bookTypeID)
	if err != nil {
		return 0, err
	}
	if err := s.r.CreateBook(ctx, b); err != nil {
		return 0, err
	}
	return b.ID, nil
}

func (s *service) Update(ctx context.Context, id int64, title string, authorID, bookTypeID int64) (*Book, error) {
	if _, err := s.r.Detail(ctx, id); err != nil {
		return nil, err
	}
	b, err := s.build(ctx, id, title, authorID, bookTypeID)
	if err != nil {
		return nil, err
	}
	if err := s.r.UpdateBook(ctx, b); err != nil {
		return nil, err
	}
	return s.r.Detail(ctx, id)
}

func (s *service) List(ctx context.Context) ([]Book, error)            { return s.r.List(ctx) }
func (s *service) Detail(ctx context.Context, id int64) (*Book, error) { return s.r.Detail(ctx, id) }
