// model/book_type.go
package model

import "github.com/shopspring/decimal"

// BookType is a pricing category shared by many books ("Regular", "Fiction").
// When CustomPricing is set, the rate comes from a duration tier instead of
// RentCharge. MinimumCharge/NoOfDays form an inline tier that is considered
// together with Tiers.
type BookType struct {
	ID            int64            `json:"id" gorm:"primaryKey"`
	Name          string           `json:"name" gorm:"size:30;uniqueIndex;not null"`
	RentCharge    decimal.Decimal  `json:"rent_charge" gorm:"type:numeric(10,2);not null;check:rent_charge >= 0"`
	CustomPricing bool             `json:"custom_pricing" gorm:"not null"`
	MinimumCharge *decimal.Decimal `json:"minimum_charge,omitempty" gorm:"type:numeric(10,2)"`
	NoOfDays      *int             `json:"no_of_days,omitempty"`
	Tiers         []CustomPricing  `json:"tiers,omitempty" gorm:"foreignKey:BookTypeID;constraint:OnDelete:CASCADE"`
	Timestamps
}

// CustomPricing is one duration tier of a book type: rentals selected into
// this tier are charged MinimumCharge per day.
type CustomPricing struct {
	ID            int64           `json:"id" gorm:"primaryKey"`
	BookTypeID    int64           `json:"book_type_id" gorm:"not null;uniqueIndex:idx_custom_pricing_tier"`
	MinimumCharge decimal.Decimal `json:"minimum_charge" gorm:"type:numeric(10,2);not null;check:minimum_charge >= 0"`
	NoOfDays      int             `json:"no_of_days" gorm:"not null;uniqueIndex:idx_custom_pricing_tier;check:no_of_days > 0"`
	Timestamps
}

type ConditionPricing struct {
	ID        int64  `json:"id" gorm:"primaryKey"`
	Condition string `json:"condition" gorm:"size:64;uniqueIndex;not null"`
	Timestamps
}
