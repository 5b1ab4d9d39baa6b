// model/book.go
package model

type Book struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	Title      string    `json:"title" gorm:"size:300;not null"`
	AuthorID   int64     `json:"author_id" gorm:"not null;index"`
	Author     *Author   `json:"author,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	BookTypeID int64     `json:"book_type_id" gorm:"not null;index"`
	BookType   *BookType `json:"book_type,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Timestamps
}
