package book

type BookReq struct {
	Title      string `json:"title" validate:"required,max=300"`
	AuthorID   int64  `json:"author_id" validate:"required,gt=0"`
	BookTypeID int64  `json:"book_type_id" validate:"required,gt=0"`
}

type BookResp struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	AuthorID   int64  `json:"author_id"`
	AuthorName string `json:"author_name,omitempty"`
	BookTypeID int64  `json:"book_type_id"`
	BookType   string `json:"book_type,omitempty"`
}
