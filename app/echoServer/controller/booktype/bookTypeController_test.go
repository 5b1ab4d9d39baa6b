package booktype

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"bookrental/model"
	booktypesvc "bookrental/service/booktype"
	"bookrental/util/apperr"
)

type svcMock struct {
	booktypesvc.Service
	createFn func(ctx context.Context, in booktypesvc.Input) (*model.BookType, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (m *svcMock) Create(ctx context.Context, in booktypesvc.Input) (*model.BookType, error) {
	return m.createFn(ctx, in)
}
func (m *svcMock) Delete(ctx context.Context, id int64) error { return m.deleteFn(ctx, id) }

func TestCreateRendersMoneyWithTwoDecimals(t *testing.T) {
	m := &svcMock{
		createFn: func(ctx context.Context, in booktypesvc.Input) (*model.BookType, error) {
			require.Equal(t, "1.5", in.RentCharge.String())
			require.NotNil(t, in.MinimumCharge)
			require.Equal(t, 5, *in.NoOfDays)
			mc := *in.MinimumCharge
			return &model.BookType{
				ID: 3, Name: in.Name, RentCharge: in.RentCharge, CustomPricing: true,
				MinimumCharge: &mc, NoOfDays: in.NoOfDays,
				Tiers: []model.CustomPricing{{ID: 1, MinimumCharge: decimal.NewFromInt(1), NoOfDays: 10}},
			}, nil
		},
	}
	h := &Controller{Svc: m, V: validator.New()}
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/v1/book-types", strings.NewReader(
		`{"name":"Novel","rent_charge":1.5,"custom_pricing":true,"minimum_charge":"2","no_of_days":5}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Create(e.NewContext(req, rec)))
	require.Equal(t, http.StatusCreated, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, `"rent_charge":"1.50"`)
	require.Contains(t, body, `"minimum_charge":"2.00"`)
	require.Contains(t, body, `"tiers":[{"id":1,"minimum_charge":"1.00","no_of_days":10}]`)
}

func TestDeleteConflict(t *testing.T) {
	m := &svcMock{
		deleteFn: func(ctx context.Context, id int64) error {
			return apperr.Integrity("book type %d is referenced by 2 book(s)", id)
		},
	}
	h := &Controller{Svc: m, V: validator.New()}
	c := echo.New().NewContext(httptest.NewRequest(http.MethodDelete, "/v1/book-types/3", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("3")

	var he *echo.HTTPError
	require.ErrorAs(t, h.Delete(c), &he)
	require.Equal(t, http.StatusConflict, he.Code)
}
