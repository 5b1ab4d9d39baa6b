package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"bookrental/model"
	"bookrental/util/apperr"
)

type lookupMock struct {
	byIDFn func(ctx context.Context, id int64) (*model.BookType, error)
}

func (m *lookupMock) ByID(ctx context.Context, id int64) (*model.BookType, error) {
	return m.byIDFn(ctx, id)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func intPtr(i int) *int { return &i }

func requireDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, dec(want).Equal(got), "want %s got %s", want, got)
}

func regular() model.BookType {
	return model.BookType{ID: 1, Name: "Regular", RentCharge: dec("1.5")}
}

func customRegular() model.BookType {
	bt := regular()
	bt.CustomPricing = true
	bt.Tiers = []model.CustomPricing{
		{BookTypeID: 1, NoOfDays: 2, MinimumCharge: dec("1.00")},
		{BookTypeID: 1, NoOfDays: 5, MinimumCharge: dec("1.25")},
	}
	return bt
}

func TestRate_FlatUsesRentCharge(t *testing.T) {
	for _, d := range []int{1, 4, 30} {
		requireDec(t, "1.50", Rate(regular(), d, DefaultPolicy))
	}
}

func TestRate_CustomIgnoredWhenDisabled(t *testing.T) {
	bt := customRegular()
	bt.CustomPricing = false
	requireDec(t, "1.50", Rate(bt, 1, DefaultPolicy))
}

func TestRate_SmallestCoveringTier(t *testing.T) {
	bt := customRegular()
	requireDec(t, "1.00", Rate(bt, 1, DefaultPolicy))
	requireDec(t, "1.00", Rate(bt, 2, DefaultPolicy))
	requireDec(t, "1.25", Rate(bt, 3, DefaultPolicy))
	requireDec(t, "1.25", Rate(bt, 5, DefaultPolicy))
	// beyond every tier: flat rate
	requireDec(t, "1.50", Rate(bt, 6, DefaultPolicy))
}

func TestRate_LargestReachedTier(t *testing.T) {
	p, err := PolicyByName(PolicyLargestReached)
	require.NoError(t, err)

	bt := customRegular()
	requireDec(t, "1.50", Rate(bt, 1, p))
	requireDec(t, "1.00", Rate(bt, 2, p))
	requireDec(t, "1.00", Rate(bt, 4, p))
	requireDec(t, "1.25", Rate(bt, 5, p))
	requireDec(t, "1.25", Rate(bt, 40, p))
}

func TestRate_InlineTierAndTieBreak(t *testing.T) {
	bt := customRegular()
	bt.MinimumCharge = decPtr("0.90")
	bt.NoOfDays = intPtr(2)

	// two tiers of 2 days: the cheaper one wins under both policies
	requireDec(t, "0.90", Rate(bt, 2, DefaultPolicy))
	lr, _ := PolicyByName(PolicyLargestReached)
	requireDec(t, "0.90", Rate(bt, 3, lr))

	// inline pair is ignored unless both halves are set
	bt = regular()
	bt.CustomPricing = true
	bt.MinimumCharge = decPtr("0.50")
	requireDec(t, "1.50", Rate(bt, 1, DefaultPolicy))
}

func TestRate_IsDeterministicAndNonNegative(t *testing.T) {
	bt := customRegular()
	bt.Tiers[0], bt.Tiers[1] = bt.Tiers[1], bt.Tiers[0]
	first := Rate(bt, 3, DefaultPolicy)
	for i := 0; i < 10; i++ {
		require.True(t, first.Equal(Rate(bt, 3, DefaultPolicy)))
	}

	neg := regular()
	neg.RentCharge = dec("-2")
	require.True(t, Rate(neg, 3, DefaultPolicy).IsZero())
}

func TestTotalCost(t *testing.T) {
	requireDec(t, "6.00", TotalCost(dec("1.50"), 4))
	requireDec(t, "0.00", TotalCost(decimal.Zero, 9))
	require.Equal(t, "6.00", TotalCost(dec("1.5"), 4).StringFixed(2))
}

func TestPolicyByName(t *testing.T) {
	p, err := PolicyByName("")
	require.NoError(t, err)
	require.Equal(t, PolicySmallestCovering, p.Name())

	_, err = PolicyByName("cheapest")
	require.Error(t, err)
}

func TestResolveRate_FollowsBookType(t *testing.T) {
	m := &lookupMock{
		byIDFn: func(ctx context.Context, id int64) (*model.BookType, error) {
			require.Equal(t, int64(1), id)
			bt := customRegular()
			return &bt, nil
		},
	}
	s := New(m, nil)

	rate, err := s.ResolveRate(context.Background(), model.Book{ID: 3, BookTypeID: 1}, 4)
	require.NoError(t, err)
	requireDec(t, "1.25", rate)
}

func TestResolveRate_UnknownBookTypeIsNotFound(t *testing.T) {
	m := &lookupMock{
		byIDFn: func(ctx context.Context, id int64) (*model.BookType, error) {
			return nil, apperr.NotFound("book type not found")
		},
	}
	s := New(m, DefaultPolicy)

	rate, err := s.ResolveRate(context.Background(), model.Book{ID: 3, BookTypeID: 99}, 4)
	require.Error(t, err)
	require.Equal(t, apperr.ErrNotFound, apperr.Code(err))
	require.True(t, rate.IsZero())
}

func TestResolveRate_StoreErrorPropagates(t *testing.T) {
	boom := errors.New("db down")
	m := &lookupMock{
		byIDFn: func(ctx context.Context, id int64) (*model.BookType, error) { return nil, boom },
	}
	_, err := New(m, nil).ResolveRate(context.Background(), model.Book{BookTypeID: 1}, 1)
	require.ErrorIs(t, err, boom)
	require.Equal(t, apperr.ErrCode(""), apperr.Code(err))
}
