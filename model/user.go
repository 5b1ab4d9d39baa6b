package model

type User struct {
	ID           int64  `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"size:64;uniqueIndex;not null"`
	Email        string `json:"email" gorm:"size:120;uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"size:128;not null"`
	Timestamps
}

// model/user.go

// RegisterReq represents user registration payload
// swagger:model RegisterReq
type RegisterReq struct {
	Username  string `json:"username" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Password2 string `json:"password2" validate:"required,eqfield=Password"`
}

// LoginReq represents login payload
// swagger:model LoginReq
type LoginReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ResetRequestReq asks for a password reset email.
type ResetRequestReq struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordReq sets a new password using a reset token.
type ResetPasswordReq struct {
	Token     string `json:"token" validate:"required"`
	Password  string `json:"password" validate:"required,min=6"`
	Password2 string `json:"password2" validate:"required,eqfield=Password"`
}
