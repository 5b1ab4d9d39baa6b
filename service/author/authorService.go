package authorsvc

import (
	"context"

	"bookrental/model"
	"bookrental/util/apperr"
	"bookrental/util/fields"
)

type Repo interface {
	Create(ctx context.Context, a *model.Author) error
	ByID(ctx context.Context, id int64) (*model.Author, error)
	List(ctx context.Context) ([]model.Author, error)
	Update(ctx context.Context, a *model.Author) error
	Delete(ctx context.Context, id int64) error
	EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error)
	CountBooks(ctx context.Context, id int64) (int64, error)
}

type Input struct {
	FirstName string
	LastName  string
	Email     string
}

type Service interface {
	Create(ctx context.Context, in Input) (*model.Author, error)
	Get(ctx context.Context, id int64) (*model.Author, error)
	List(ctx context.Context) ([]model.Author, error)
	Update(ctx context.Context, id int64, in Input) (*model.Author, error)
	// Delete refuses while any book references the author.
	Delete(ctx context.Context, id int64) error
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) build(ctx context.Context, id int64, in Input) (*model.Author, error) {
	first, err := fields.Required("first name", in.FirstName, 64)
	if err != nil {
		return nil, err
	}
	last, err := fields.Required("last name", in.LastName, 64)
	if err != nil {
		return nil, err
	}
	email, err := fields.Email(in.Email)
	if err != nil {
		return nil, err
	}
	taken, err := s.r.EmailTaken(ctx, email, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Validation("email %s is already used by another author", email)
	}
	return &model.Author{ID: id, FirstName: first, LastName: last, Email: email}, nil
}

func (s *service) Create(ctx context.Context, in Input) (*model.Author, error) {
	a, err := s.build(ctx, 0, in)
	if err != nil {
		return nil, err
	}
	if err := s.r.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Get(ctx context.Context, id int64) (*model.Author, error) { return s.r.ByID(ctx, id) }
func (s *service) List(ctx context.Context) ([]model.Author, error)         { return s.r.List(ctx) }

func (s *service) Update(ctx context.Context, id int64, in Input) (*model.Author, error) {
	if _, err := s.r.ByID(ctx, id); err != nil {
		return nil, err
	}
	a, err := s.build(ctx, id, in)
	if err != nil {
		return nil, err
	}
	if err := s.r.Update(ctx, a); err != nil {
		return nil, err
	}
	return s.r.ByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.r.ByID(ctx, id); err != nil {
		return err
	}
	n, err := s.r.CountBooks(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperr.Integrity("author %d is referenced by %d book(s)", id, n)
	}
	return s.r.Delete(ctx, id)
}
