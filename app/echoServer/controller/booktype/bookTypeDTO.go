package booktype

import (
	"time"

	"github.com/shopspring/decimal"

	"bookrental/app/echoServer/render"
	"bookrental/model"
)

// BookTypeReq accepts money as JSON numbers or strings ("1.50").
type BookTypeReq struct {
	Name          string           `json:"name" validate:"required,max=30"`
	RentCharge    decimal.Decimal  `json:"rent_charge"`
	CustomPricing bool             `json:"custom_pricing"`
	MinimumCharge *decimal.Decimal `json:"minimum_charge,omitempty"`
	NoOfDays      *int             `json:"no_of_days,omitempty" validate:"omitempty,gt=0"`
}

type TierReq struct {
	MinimumCharge decimal.Decimal `json:"minimum_charge"`
	NoOfDays      int             `json:"no_of_days" validate:"required,gt=0"`
}

type ConditionReq struct {
	Condition string `json:"condition" validate:"required,max=64"`
}

type TierResp struct {
	ID            int64  `json:"id"`
	MinimumCharge string `json:"minimum_charge"`
	NoOfDays      int    `json:"no_of_days"`
}

type BookTypeResp struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	RentCharge    string     `json:"rent_charge"`
	CustomPricing bool       `json:"custom_pricing"`
	MinimumCharge *string    `json:"minimum_charge"`
	NoOfDays      *int       `json:"no_of_days"`
	Tiers         []TierResp `json:"tiers"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func tierResp(t model.CustomPricing) TierResp {
	return TierResp{ID: t.ID, MinimumCharge: render.Money(t.MinimumCharge), NoOfDays: t.NoOfDays}
}

func toResp(bt *model.BookType) BookTypeResp {
	out := BookTypeResp{
		ID:            bt.ID,
		Name:          bt.Name,
		RentCharge:    render.Money(bt.RentCharge),
		CustomPricing: bt.CustomPricing,
		NoOfDays:      bt.NoOfDays,
		Tiers:         make([]TierResp, 0, len(bt.Tiers)),
		CreatedAt:     bt.CreatedAt,
		UpdatedAt:     bt.UpdatedAt,
	}
	if bt.MinimumCharge != nil {
		s := render.Money(*bt.MinimumCharge)
		out.MinimumCharge = &s
	}
	for _, t := range bt.Tiers {
		out.Tiers = append(out.Tiers, tierResp(t))
	}
	return out
}
