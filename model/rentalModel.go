// model/rental.go
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rental is one book rented by one customer. Its cost is derived from the
// book type at read time and never stored.
type Rental struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	CustomerID int64     `json:"customer_id" gorm:"not null;index"`
	Customer   *Customer `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	BookID     int64     `json:"book_id" gorm:"not null;index"`
	Book       *Book     `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Duration   int       `json:"duration" gorm:"not null;check:duration > 0"`
	Timestamps
}

// StatementView is the fully joined, printable shape of a rental.
type StatementView struct {
	RentalID     int64           `json:"rental_id"`
	CustomerID   int64           `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	BookID       int64           `json:"book_id"`
	BookTitle    string          `json:"book_title"`
	AuthorName   string          `json:"author_name"`
	BookTypeName string          `json:"book_type_name"`
	Duration     int             `json:"duration"`
	UnitRate     decimal.Decimal `json:"unit_rate"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	CreatedAt    time.Time       `json:"created_at"`
}
