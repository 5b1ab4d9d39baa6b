// Package pricing resolves the per-day rate of a book from its book type.
package pricing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"bookrental/model"
	"bookrental/util/apperr"
)

// BookTypeLookup loads a book type with its custom pricing tiers. It returns
// an apperr NotFound error for unknown ids.
type BookTypeLookup interface {
	ByID(ctx context.Context, id int64) (*model.BookType, error)
}

type Service interface {
	// ResolveRate follows book -> book type and returns the per-day rate for
	// a rental of the given duration.
	ResolveRate(ctx context.Context, book model.Book, duration int) (decimal.Decimal, error)
	// BookType loads the pricing data of a book type.
	BookType(ctx context.Context, id int64) (*model.BookType, error)
	// Rate is the pure rate computation for an already loaded book type.
	Rate(bt model.BookType, duration int) decimal.Decimal
}

type service struct {
	lookup BookTypeLookup
	policy TierPolicy
}

func New(lookup BookTypeLookup, policy TierPolicy) Service {
	if policy == nil {
		policy = DefaultPolicy
	}
	return &service{lookup: lookup, policy: policy}
}

func (s *service) BookType(ctx context.Context, id int64) (*model.BookType, error) {
	bt, err := s.lookup.ByID(ctx, id)
	if err != nil {
		if apperr.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, err, "book type %d not found", id)
		}
		return nil, fmt.Errorf("load book type %d: %w", id, err)
	}
	if bt == nil {
		return nil, apperr.NotFound("book type %d not found", id)
	}
	return bt, nil
}

func (s *service) ResolveRate(ctx context.Context, book model.Book, duration int) (decimal.Decimal, error) {
	bt, err := s.BookType(ctx, book.BookTypeID)
	if err != nil {
		return decimal.Zero, err
	}
	return s.Rate(*bt, duration), nil
}

func (s *service) Rate(bt model.BookType, duration int) decimal.Decimal {
	return Rate(bt, duration, s.policy)
}

// Rate returns the per-day rate of bt for duration days, rounded to cents.
// Flat-priced types use RentCharge. Custom-priced types use the selected
// tier's MinimumCharge, falling back to RentCharge when no tier applies.
func Rate(bt model.BookType, duration int, policy TierPolicy) decimal.Decimal {
	flat := nonNegative(bt.RentCharge)
	if !bt.CustomPricing {
		return flat
	}
	if t, ok := policy.Select(Tiers(bt), duration); ok {
		return nonNegative(t.Rate)
	}
	return flat
}

// Tiers collects the candidate tiers of bt: its CustomPricing rows plus the
// inline MinimumCharge/NoOfDays pair when both are set.
func Tiers(bt model.BookType) []Tier {
	out := make([]Tier, 0, len(bt.Tiers)+1)
	for _, cp := range bt.Tiers {
		out = append(out, Tier{NoOfDays: cp.NoOfDays, Rate: cp.MinimumCharge})
	}
	if bt.MinimumCharge != nil && bt.NoOfDays != nil && *bt.NoOfDays > 0 {
		out = append(out, Tier{NoOfDays: *bt.NoOfDays, Rate: *bt.MinimumCharge})
	}
	return out
}

// TotalCost is rate times duration, rounded to cents.
func TotalCost(rate decimal.Decimal, duration int) decimal.Decimal {
	return rate.Mul(decimal.NewFromInt(int64(duration))).Round(2)
}

// nonNegative rounds to cents and clamps negative values to zero.
func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d.Round(2)
}
