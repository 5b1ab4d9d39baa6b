package authorrepo

import (
	"context"

	"gorm.io/gorm"

	"bookrental/model"
	"bookrental/repository/dberr"
)

type Repo interface {
	Create(ctx context.Context, a *model.Author) error
	ByID(ctx context.Context, id int64) (*model.Author, error)
	List(ctx context.Context) ([]model.Author, error)
	Update(ctx context.Context, a *model.Author) error
	Delete(ctx context.Context, id int64) error

	EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error)
	CountBooks(ctx context.Context, id int64) (int64, error)
}

type repo struct{ db *gorm.DB }

func New(db *gorm.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, a *model.Author) error {
	return dberr.Map(r.db.WithContext(ctx).Create(a).Error, "author")
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Author, error) {
	var a model.Author
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, dberr.Map(err, "author")
	}
	return &a, nil
}

func (r *repo) List(ctx context.Context) ([]model.Author, error) {
	var out []model.Author
	err := r.db.WithContext(ctx).Order("last_name, first_name, id").Find(&out).Error
	return out, dberr.Map(err, "author")
}

func (r *repo) Update(ctx context.Context, a *model.Author) error {
	res := r.db.WithContext(ctx).Model(a).Select("first_name", "last_name", "email", "updated_at").Updates(a)
	if res.Error != nil {
		return dberr.Map(res.Error, "author")
	}
	if res.RowsAffected == 0 {
		return dberr.Map(gorm.ErrRecordNotFound, "author")
	}
	return nil
}

// Delete removes an author. Callers check CountBooks first; the RESTRICT
// foreign key still rejects a delete that races a new book.
func (r *repo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Author{}, id)
	if res.Error != nil {
		return dberr.Map(res.Error, "author")
	}
	if res.RowsAffected == 0 {
		return dberr.Map(gorm.ErrRecordNotFound, "author")
	}
	return nil
}

func (r *repo) EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Author{}).
		Where("lower(email) = lower(?) AND id <> ?", email, exceptID).
		Count(&n).Error
	return n > 0, dberr.Map(err, "author")
}

func (r *repo) CountBooks(ctx context.Context, id int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Book{}).Where("author_id = ?", id).Count(&n).Error
	return n, dberr.Map(err, "book")
}
