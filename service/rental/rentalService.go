package rental

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"bookrental/model"
	rrepo "bookrental/repository/rental"
	"bookrental/service/pricing"
	"bookrental/util/apperr"
)

type StatementRow = rrepo.StatementRow

type Repo interface {
	CustomerExists(ctx context.Context, tx *gorm.DB, customerID int64) (bool, error)
	ExistingBookIDs(ctx context.Context, tx *gorm.DB, bookIDs []int64) ([]int64, error)
	InsertRentals(ctx context.Context, tx *gorm.DB, rentals []model.Rental) error

	BookByID(ctx context.Context, bookID int64) (*model.Book, error)
	StatementRow(ctx context.Context, rentalID int64) (*StatementRow, error)
	StatementRows(ctx context.Context, rentalIDs []int64) ([]StatementRow, error)
	StatementRowsByCustomer(ctx context.Context, customerID int64) ([]StatementRow, error)
}

type Service interface {
	// Create rents every distinct book to the customer for durationDays,
	// one rental per book, all or nothing.
	Create(ctx context.Context, customerID int64, bookIDs []int64, durationDays int) ([]model.Rental, error)

	// Statement joins a rental to its customer, book, author and book type.
	Statement(ctx context.Context, rentalID int64) (*model.StatementView, error)

	// Statements returns the statements of several rentals, ordered by rental id.
	// Unknown ids are skipped.
	Statements(ctx context.Context, rentalIDs []int64) ([]model.StatementView, error)

	// ListByCustomer returns the customer's statements, newest first.
	ListByCustomer(ctx context.Context, customerID int64) ([]model.StatementView, error)

	// TotalCost is the resolved rate of the rented book times the duration.
	TotalCost(ctx context.Context, r model.Rental) (decimal.Decimal, error)
}

// ----- Service implementation -----

type service struct {
	db *gorm.DB
	r  Repo
	p  pricing.Service
}

func New(db *gorm.DB, r Repo, p pricing.Service) Service {
	return &service{db: db, r: r, p: p}
}

func (s *service) Create(ctx context.Context, customerID int64, bookIDs []int64, durationDays int) ([]model.Rental, error) {
	if durationDays <= 0 {
		return nil, apperr.Validation("duration must be greater than zero")
	}
	ids := distinct(bookIDs)
	if len(ids) == 0 {
		return nil, apperr.Validation("at least one book is required")
	}

	var out []model.Rental
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := s.r.CustomerExists(ctx, tx, customerID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Validation("unknown customer %d", customerID)
		}

		found, err := s.r.ExistingBookIDs(ctx, tx, ids)
		if err != nil {
			return err
		}
		if missing := missingIDs(ids, found); len(missing) > 0 {
			return apperr.Validation("unknown book ids: %s", joinIDs(missing))
		}

		rows := make([]model.Rental, 0, len(ids))
		for _, id := range ids {
			rows = append(rows, model.Rental{
				CustomerID: customerID,
				BookID:     id,
				Duration:   durationDays,
			})
		}
		if err := s.r.InsertRentals(ctx, tx, rows); err != nil {
			return err
		}
		out = rows
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) Statement(ctx context.Context, rentalID int64) (*model.StatementView, error) {
	row, err := s.r.StatementRow(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	bt, err := s.p.BookType(ctx, row.BookTypeID)
	if err != nil {
		return nil, err
	}
	v := s.view(*row, *bt)
	return &v, nil
}

func (s *service) Statements(ctx context.Context, rentalIDs []int64) ([]model.StatementView, error) {
	rows, err := s.r.StatementRows(ctx, distinct(rentalIDs))
	if err != nil {
		return nil, err
	}
	return s.views(ctx, rows)
}

func (s *service) ListByCustomer(ctx context.Context, customerID int64) ([]model.StatementView, error) {
	rows, err := s.r.StatementRowsByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, rows)
}

// views loads each distinct book type once.
func (s *service) views(ctx context.Context, rows []StatementRow) ([]model.StatementView, error) {
	types := make(map[int64]*model.BookType)
	out := make([]model.StatementView, 0, len(rows))
	for _, row := range rows {
		bt, ok := types[row.BookTypeID]
		if !ok {
			var err error
			if bt, err = s.p.BookType(ctx, row.BookTypeID); err != nil {
				return nil, err
			}
			types[row.BookTypeID] = bt
		}
		out = append(out, s.view(row, *bt))
	}
	return out, nil
}

func (s *service) TotalCost(ctx context.Context, r model.Rental) (decimal.Decimal, error) {
	book := r.Book
	if book == nil {
		var err error
		if book, err = s.r.BookByID(ctx, r.BookID); err != nil {
			return decimal.Zero, err
		}
	}
	rate, err := s.p.ResolveRate(ctx, *book, r.Duration)
	if err != nil {
		return decimal.Zero, err
	}
	return pricing.TotalCost(rate, r.Duration), nil
}

func (s *service) view(row StatementRow, bt model.BookType) model.StatementView {
	rate := s.p.Rate(bt, row.Duration)
	return model.StatementView{
		RentalID:     row.RentalID,
		CustomerID:   row.CustomerID,
		CustomerName: model.Customer{FirstName: row.CustomerFirstName, LastName: row.CustomerLastName}.FullName(),
		BookID:       row.BookID,
		BookTitle:    row.BookTitle,
		AuthorName:   model.Author{FirstName: row.AuthorFirstName, LastName: row.AuthorLastName}.FullName(),
		BookTypeName: bt.Name,
		Duration:     row.Duration,
		UnitRate:     rate,
		TotalCost:    pricing.TotalCost(rate, row.Duration),
		CreatedAt:    row.CreatedAt,
	}
}

// distinct keeps the first occurrence of every id, preserving order.
func distinct(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func missingIDs(want, found []int64) []int64 {
	have := make(map[int64]struct{}, len(found))
	for _, id := range found {
		have[id] = struct{}{}
	}
	var out []int64
	for _, id := range want {
		if _, ok := have[id]; !ok {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ", ")
}
