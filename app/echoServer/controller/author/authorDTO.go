package author

type AuthorReq struct {
	FirstName string `json:"first_name" validate:"required,max=64"`
	LastName  string `json:"last_name" validate:"required,max=64"`
	Email     string `json:"email" validate:"required,email,max=120"`
}
