package customerrepo

import (
	"context"

	"gorm.io/gorm"

	"bookrental/model"
	"bookrental/repository/dberr"
)

type Repo interface {
	Create(ctx context.Context, c *model.Customer) error
	ByID(ctx context.Context, id int64) (*model.Customer, error)
	List(ctx context.Context) ([]model.Customer, error)
	Update(ctx context.Context, c *model.Customer) error
	EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error)
}

type repo struct{ db *gorm.DB }

func New(db *gorm.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, c *model.Customer) error {
	return dberr.Map(r.db.WithContext(ctx).Create(c).Error, "customer")
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Customer, error) {
	var c model.Customer
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, dberr.Map(err, "customer")
	}
	return &c, nil
}

func (r *repo) List(ctx context.Context) ([]model.Customer, error) {
	var out []model.Customer
	err := r.db.WithContext(ctx).Order("last_name, first_name, id").Find(&out).Error
	return out, dberr.Map(err, "customer")
}

func (r *repo) Update(ctx context.Context, c *model.Customer) error {
	res := r.db.WithContext(ctx).Model(c).Select("first_name", "last_name", "email", "updated_at").Updates(c)
	if res.Error != nil {
		return dberr.Map(res.Error, "customer")
	}
	if res.RowsAffected == 0 {
		return dberr.Map(gorm.ErrRecordNotFound, "customer")
	}
	return nil
}

func (r *repo) EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Customer{}).
		Where("lower(email) = lower(?) AND id <> ?", email, exceptID).
		Count(&n).Error
	return n > 0, dberr.Map(err, "customer")
}
