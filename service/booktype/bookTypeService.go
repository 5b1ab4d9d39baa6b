package booktypesvc

import (
	"context"

	"github.com/shopspring/decimal"

	"bookrental/model"
	"bookrental/util/apperr"
	"bookrental/util/fields"
)

type Repo interface {
	Create(ctx context.Context, bt *model.BookType) error
	ByID(ctx context.Context, id int64) (*model.BookType, error)
	List(ctx context.Context) ([]model.BookType, error)
	Update(ctx context.Context, bt *model.BookType) error
	Delete(ctx context.Context, id int64) error
	NameTaken(ctx context.Context, name string, exceptID int64) (bool, error)
	CountBooks(ctx context.Context, id int64) (int64, error)
	AddTier(ctx context.Context, t *model.CustomPricing) error

	CreateCondition(ctx context.Context, c *model.ConditionPricing) error
	ListConditions(ctx context.Context) ([]model.ConditionPricing, error)
	ConditionTaken(ctx context.Context, condition string) (bool, error)
}

type Input struct {
	Name          string
	RentCharge    decimal.Decimal
	CustomPricing bool
	MinimumCharge *decimal.Decimal
	NoOfDays      *int
}

type Service interface {
	Create(ctx context.Context, in Input) (*model.BookType, error)
	Get(ctx context.Context, id int64) (*model.BookType, error)
	List(ctx context.Context) ([]model.BookType, error)
	Update(ctx context.Context, id int64, in Input) (*model.BookType, error)
	// Delete refuses while any book references the type.
	Delete(ctx context.Context, id int64) error
	AddTier(ctx context.Context, id int64, minimumCharge decimal.Decimal, noOfDays int) (*model.CustomPricing, error)

	CreateCondition(ctx context.Context, condition string) (*model.ConditionPricing, error)
	ListConditions(ctx context.Context) ([]model.ConditionPricing, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) build(ctx context.Context, id int64, in Input) (*model.BookType, error) {
	name, err := fields.Required("name", in.Name, 30)
	if err != nil {
		return nil, err
	}
	if in.RentCharge.IsNegative() {
		return nil, apperr.Validation("rent charge must not be negative")
	}
	if (in.MinimumCharge == nil) != (in.NoOfDays == nil) {
		return nil, apperr.Validation("minimum charge and number of days must be set together")
	}
	bt := &model.BookType{
		ID:            id,
		Name:          name,
		RentCharge:    in.RentCharge.Round(2),
		CustomPricing: in.CustomPricing,
	}
	if in.MinimumCharge != nil {
		if err := checkTier(*in.MinimumCharge, *in.NoOfDays); err != nil {
			return nil, err
		}
		mc := in.MinimumCharge.Round(2)
		days := *in.NoOfDays
		bt.MinimumCharge, bt.NoOfDays = &mc, &days
	}

	taken, err := s.r.NameTaken(ctx, name, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Validation("book type %q already exists", name)
	}
	return bt, nil
}

func checkTier(minimumCharge decimal.Decimal, noOfDays int) error {
	if minimumCharge.IsNegative() {
		return apperr.Validation("minimum charge must not be negative")
	}
	if noOfDays <= 0 {
		return apperr.Validation("number of days must be greater than zero")
	}
	return nil
}

func (s *service) Create(ctx context.Context, in Input) (*model.BookType, error) {
	bt, err := s.build(ctx, 0, in)
	if err != nil {
		return nil, err
	}
	if err := s.r.Create(ctx, bt); err != nil {
		return nil, err
	}
	return bt, nil
}

func (s *service) Get(ctx context.Context, id int64) (*model.BookType, error) {
	return s.r.ByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]model.BookType, error) { return s.r.List(ctx) }

func (s *service) Update(ctx context.Context, id int64, in Input) (*model.BookType, error) {
	if _, err := s.r.ByID(ctx, id); err != nil {
		return nil, err
	}
	bt, err := s.build(ctx, id, in)
	if err != nil {
		return nil, err
	}
	if err := s.r.Update(ctx, bt); err != nil {
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
		return apperr.Integrity("book type %d is referenced by %d book(s)", id, n)
	}
	return s.r.Delete(ctx, id)
}

func (s *service) AddTier(ctx context.Context, id int64, minimumCharge decimal.Decimal, noOfDays int) (*model.CustomPricing, error) {
	if err := checkTier(minimumCharge, noOfDays); err != nil {
		return nil, err
	}
	bt, err := s.r.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, t := range bt.Tiers {
		if t.NoOfDays == noOfDays {
			return nil, apperr.Validation("book type %d already has a %d-day tier", id, noOfDays)
		}
	}
	t := &model.CustomPricing{BookTypeID: id, MinimumCharge: minimumCharge.Round(2), NoOfDays: noOfDays}
	if err := s.r.AddTier(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) CreateCondition(ctx context.Context, condition string) (*model.ConditionPricing, error) {
	condition, err := fields.Required("condition", condition, 64)
	if err != nil {
		return nil, err
	}
	taken, err := s.r.ConditionTaken(ctx, condition)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Validation("condition %q already exists", condition)
	}
	c := &model.ConditionPricing{Condition: condition}
	if err := s.r.CreateCondition(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) ListConditions(ctx context.Context) ([]model.ConditionPricing, error) {
	return s.r.ListConditions(ctx)
}
