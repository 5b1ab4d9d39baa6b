package booktyperepo

import (
	"context"

	"gorm.io/gorm"

	"bookrental/model"
	"bookrental/repository/dberr"
)

type Repo interface {
	Create(ctx context.Context, bt *model.BookType) error
	// ByID loads the book type together with its custom pricing tiers.
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

type repo struct{ db *gorm.DB }

func New(db *gorm.DB) Repo { return &repo{db: db} }

func withTiers(db *gorm.DB) *gorm.DB {
	return db.Preload("Tiers", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("no_of_days, id")
	})
}

func (r *repo) Create(ctx context.Context, bt *model.BookType) error {
	return dberr.Map(r.db.WithContext(ctx).Omit("Tiers").Create(bt).Error, "book type")
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.BookType, error) {
	var bt model.BookType
	if err := withTiers(r.db.WithContext(ctx)).First(&bt, id).Error; err != nil {
		return nil, dberr.Map(err, "book type")
	}
	return &bt, nil
}

func (r *repo) List(ctx context.Context) ([]model.BookType, error) {
	var out []model.BookType
	err := withTiers(r.db.WithContext(ctx)).Order("name, id").Find(&out).Error
	return out, dberr.Map(err, "book type")
}

func (r *repo) Update(ctx context.Context, bt *model.BookType) error {
	res := r.db.WithContext(ctx).Model(bt).Omit("Tiers").
		Select("name", "rent_charge", "custom_pricing", "minimum_charge", "no_of_days", "updated_at").
		Updates(bt)
	if res.Error != nil {
		return dberr.Map(res.Error, "book type")
	}
	if res.RowsAffected == 0 {
		return dberr.Map(gorm.ErrRecordNotFound, "book type")
	}
	return nil
}

// Delete removes a book type and its tiers in one transaction.
func (r *repo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_type_id = ?", id).Delete(&model.CustomPricing{}).Error; err != nil {
			return dberr.Map(err, "custom pricing")
		}
		res := tx.Delete(&model.BookType{}, id)
		if res.Error != nil {
			return dberr.Map(res.Error, "book type")
		}
		if res.RowsAffected == 0 {
			return dberr.Map(gorm.ErrRecordNotFound, "book type")
		}
		return nil
	})
}

func (r *repo) NameTaken(ctx context.Context, name string, exceptID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.BookType{}).
		Where("lower(name) = lower(?) AND id <> ?", name, exceptID).
		Count(&n).Error
	return n > 0, dberr.Map(err, "book type")
}

func (r *repo) CountBooks(ctx context.Context, id int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Book{}).Where("book_type_id = ?", id).Count(&n).Error
	return n, dberr.Map(err, "book")
}

func (r *repo) AddTier(ctx context.Context, t *model.CustomPricing) error {
	return dberr.Map(r.db.WithContext(ctx).Create(t).Error, "custom pricing tier")
}

func (r *repo) CreateCondition(ctx context.Context, c *model.ConditionPricing) error {
	return dberr.Map(r.db.WithContext(ctx).Create(c).Error, "condition pricing")
}

func (r *repo) ListConditions(ctx context.Context) ([]model.ConditionPricing, error) {
	var out []model.ConditionPricing
	err := r.db.WithContext(ctx).Order("condition, id").Find(&out).Error
	return out, dberr.Map(err, "condition pricing")
}

func (r *repo) ConditionTaken(ctx context.Context, condition string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.ConditionPricing{}).
		Where("lower(condition) = lower(?)", condition).
		Count(&n).Error
	return n > 0, dberr.Map(err, "condition pricing")
}
