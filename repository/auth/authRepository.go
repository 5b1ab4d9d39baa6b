package auth

import (
	"context"

	"gorm.io/gorm"

	"bookrental/model"
	"bookrental/repository/dberr"
)

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	ByID(ctx context.Context, id int64) (*model.User, error)
	ByEmail(ctx context.Context, email string) (*model.User, error)
	ByUsername(ctx context.Context, username string) (*model.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

type repo struct{ db *gorm.DB }

func New(db *gorm.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, u *model.User) error {
	return dberr.Map(r.db.WithContext(ctx).Create(u).Error, "user")
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *repo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.first(ctx, "lower(email) = lower(?)", email)
}

func (r *repo) ByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *repo) first(ctx context.Context, query string, arg any) (*model.User, error) {
	u := &model.User{}
	if err := r.db.WithContext(ctx).Where(query, arg).First(u).Error; err != nil {
		return nil, dberr.Map(err, "user")
	}
	return u, nil
}

func (r *repo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	res := r.db.WithContext(ctx).Model(&model.User{ID: id}).Update("password_hash", passwordHash)
	if res.Error != nil {
		return dberr.Map(res.Error, "user")
	}
	if res.RowsAffected == 0 {
		return dberr.Map(gorm.ErrRecordNotFound, "user")
	}
	return nil
}
