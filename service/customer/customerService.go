package customersvc

import (
	"context"

	"bookrental/model"
	"bookrental/util/apperr"
	"bookrental/util/fields"
)

type Repo interface {
	Create(ctx context.Context, c *model.Customer) error
	ByID(ctx context.Context, id int64) (*model.Customer, error)
	List(ctx context.Context) ([]model.Customer, error)
	Update(ctx context.Context, c *model.Customer) error
	EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error)
}

type Input struct {
	FirstName string
	LastName  string
	Email     string
}

type Service interface {
	Create(ctx context.Context, in Input) (*model.Customer, error)
	Get(ctx context.Context, id int64) (*model.Customer, error)
	List(ctx context.Context) ([]model.Customer, error)
	Update(ctx context.Context, id int64, in Input) (*model.Customer, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) build(ctx context.Context, id int64, in Input) (*model.Customer, error) {
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
		return nil, apperr.Validation("email %s is already used by another customer", email)
	}
	return &model.Customer{ID: id, FirstName: first, LastName: last, Email: email}, nil
}

func (s *service) Create(ctx context.Context, in Input) (*model.Customer, error) {
	c, err := s.build(ctx, 0, in)
	if err != nil {
		return nil, err
	}
	if err := s.r.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Get(ctx context.Context, id int64) (*model.Customer, error) {
	return s.r.ByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]model.Customer, error) { return s.r.List(ctx) }

func (s *service) Update(ctx context.Context, id int64, in Input) (*model.Customer, error) {
	if _, err := s.r.ByID(ctx, id); err != nil {
		return nil, err
	}
	c, err := s.build(ctx, id, in)
	if err != nil {
		return nil, err
	}
	if err := s.r.Update(ctx, c); err != nil {
		return nil, err
	}
	return s.r.ByID(ctx, id)
}
