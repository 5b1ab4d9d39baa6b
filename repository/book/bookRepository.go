package bookrepo

import (
	"context"

	"gorm.io/gorm"

	"bookrental/model"
	"bookrental/repository/dberr"
)

type Book = model.Book

type Repo interface {
	CreateBook(ctx context.Context, b *Book) error
	UpdateBook(ctx context.Context, b *Book) error
	List(ctx context.Context) ([]Book, error)
	Detail(ctx context.Context, id int64) (*Book, error)

	AuthorExists(ctx context.Context, id int64) (bool, error)
	BookTypeExists(ctx context.Context, id int64) (bool, error)
}

type repo struct{ db *gorm.DB }

func New(db *gorm.DB) Repo { return &repo{db} }

func (r *repo) CreateBook(ctx context.Context, b *Book) error {
	return dberr.Map(r.db.WithContext(ctx).Omit("Author", "BookType").Create(b).Error, "book")
}

func (r *repo) UpdateBook(ctx context.Context, b *Book) error {
	res := r.db.WithContext(ctx).Model(b).Omit("Author", "BookType").
		Select("title", "author_id", "book_type_id", "updated_at").
		Updates(b)
	if res.Error != nil {
		return dberr.Map(res.Error, "book")
	}
	if res.RowsAffected == 0 {
		return dberr.Map(gorm.ErrRecordNotFound, "book")
	}
	return nil
}

func (r *repo) List(ctx context.Context) ([]Book, error) {
	var out []Book
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("BookType").
		Order("id DESC").
		Find(&out).Error
	return out, dberr.Map(err, "book")
}

func (r *repo) Detail(ctx context.Context, id int64) (*Book, error) {
	var b Book
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("BookType").
		First(&b, id).Error
	if err != nil {
		return nil, dberr.Map(err, "book")
	}
	return &b, nil
}

func (r *repo) AuthorExists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.db, &model.Author{}, id)
}

func (r *repo) BookTypeExists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.db, &model.BookType{}, id)
}

func exists(ctx context.Context, db *gorm.DB, m any, id int64) (bool, error) {
	var n int64
	if err := db.WithContext(ctx).Model(m).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
