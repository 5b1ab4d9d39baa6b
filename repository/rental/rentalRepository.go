// repository/rental/repo.go
package rental

import (
	"context"
	"time"

	"gorm.io/gorm"

	"bookrental/model"
	"bookrental/repository/dberr"
)

// StatementRow is one rental joined to its customer, book and author.
type StatementRow struct {
	RentalID          int64
	CustomerID        int64
	CustomerFirstName string
	CustomerLastName  string
	BookID            int64
	BookTitle         string
	BookTypeID        int64
	AuthorFirstName   string
	AuthorLastName    string
	Duration          int
	CreatedAt         time.Time
}

type Repo interface {
	// Inside a ledger transaction
	CustomerExists(ctx context.Context, tx *gorm.DB, customerID int64) (bool, error)
	ExistingBookIDs(ctx context.Context, tx *gorm.DB, bookIDs []int64) ([]int64, error)
	InsertRentals(ctx context.Context, tx *gorm.DB, rentals []model.Rental) error

	// Reads
	BookByID(ctx context.Context, bookID int64) (*model.Book, error)
	StatementRow(ctx context.Context, rentalID int64) (*StatementRow, error)
	StatementRows(ctx context.Context, rentalIDs []int64) ([]StatementRow, error)
	StatementRowsByCustomer(ctx context.Context, customerID int64) ([]StatementRow, error)
}

type repo struct {
	db *gorm.DB
}

func New(db *gorm.DB) Repo { return &repo{db: db} }

func (r *repo) CustomerExists(ctx context.Context, tx *gorm.DB, customerID int64) (bool, error) {
	var n int64
	err := tx.WithContext(ctx).Model(&model.Customer{}).Where("id = ?", customerID).Count(&n).Error
	return n > 0, dberr.Map(err, "customer")
}

func (r *repo) ExistingBookIDs(ctx context.Context, tx *gorm.DB, bookIDs []int64) ([]int64, error) {
	var ids []int64
	err := tx.WithContext(ctx).Model(&model.Book{}).Where("id IN ?", bookIDs).Pluck("id", &ids).Error
	return ids, dberr.Map(err, "book")
}

func (r *repo) InsertRentals(ctx context.Context, tx *gorm.DB, rentals []model.Rental) error {
	return dberr.Map(tx.WithContext(ctx).Omit("Customer", "Book").Create(&rentals).Error, "rental")
}

func (r *repo) BookByID(ctx context.Context, bookID int64) (*model.Book, error) {
	var b model.Book
	if err := r.db.WithContext(ctx).First(&b, bookID).Error; err != nil {
		return nil, dberr.Map(err, "book")
	}
	return &b, nil
}

const statementColumns = `
	r.id          AS rental_id,
	r.customer_id AS customer_id,
	c.first_name  AS customer_first_name,
	c.last_name   AS customer_last_name,
	r.book_id     AS book_id,
	b.title       AS book_title,
	b.book_type_id AS book_type_id,
	a.first_name  AS author_first_name,
	a.last_name   AS author_last_name,
	r.duration    AS duration,
	r.created_at  AS created_at`

func (r *repo) statementQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("rentals AS r").
		Select(statementColumns).
		Joins("JOIN customers c ON c.id = r.customer_id").
		Joins("JOIN books b ON b.id = r.book_id").
		Joins("JOIN authors a ON a.id = b.author_id")
}

func (r *repo) StatementRow(ctx context.Context, rentalID int64) (*StatementRow, error) {
	var rows []StatementRow
	if err := r.statementQuery(ctx).Where("r.id = ?", rentalID).Limit(1).Scan(&rows).Error; err != nil {
		return nil, dberr.Map(err, "rental")
	}
	if len(rows) == 0 {
		return nil, dberr.Map(gorm.ErrRecordNotFound, "rental")
	}
	return &rows[0], nil
}

// StatementRows loads several statements in one query, ordered by rental id.
func (r *repo) StatementRows(ctx context.Context, rentalIDs []int64) ([]StatementRow, error) {
	if len(rentalIDs) == 0 {
		return nil, nil
	}
	var rows []StatementRow
	err := r.statementQuery(ctx).
		Where("r.id IN ?", rentalIDs).
		Order("r.id").
		Scan(&rows).Error
	return rows, dberr.Map(err, "rental")
}

func (r *repo) StatementRowsByCustomer(ctx context.Context, customerID int64) ([]StatementRow, error) {
	var rows []StatementRow
	err := r.statementQuery(ctx).
		Where("r.customer_id = ?", customerID).
		Order("r.created_at DESC, r.id DESC").
		Scan(&rows).Error
	return rows, dberr.Map(err, "rental")
}
