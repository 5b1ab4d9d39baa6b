package rental

import (
	"time"

	"bookrental/app/echoServer/render"
	"bookrental/model"
)

type CreateRentalReq struct {
	CustomerID int64   `json:"customer_id" validate:"required,gt=0"`
	BookIDs    []int64 `json:"book_ids" validate:"required,min=1,dive,gt=0"`
	Duration   int     `json:"duration" validate:"required,gt=0"`
}

// StatementResp renders money with exactly two fractional digits.
type StatementResp struct {
	RentalID     int64     `json:"rental_id"`
	CustomerID   int64     `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	BookID       int64     `json:"book_id"`
	BookTitle    string    `json:"book_title"`
	AuthorName   string    `json:"author_name"`
	BookTypeName string    `json:"book_type_name"`
	Duration     int       `json:"duration"`
	UnitRate     string    `json:"unit_rate"`
	TotalCost    string    `json:"total_cost"`
	CreatedAt    time.Time `json:"created_at"`
}

type ArchiveResp struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

func toResp(v model.StatementView) StatementResp {
	return StatementResp{
		RentalID:     v.RentalID,
		CustomerID:   v.CustomerID,
		CustomerName: v.CustomerName,
		BookID:       v.BookID,
		BookTitle:    v.BookTitle,
		AuthorName:   v.AuthorName,
		BookTypeName: v.BookTypeName,
		Duration:     v.Duration,
		UnitRate:     render.Money(v.UnitRate),
		TotalCost:    render.Money(v.TotalCost),
		CreatedAt:    v.CreatedAt,
	}
}
