// model/author.go
package model

import "strings"

type Author struct {
	ID        int64  `json:"id" gorm:"primaryKey"`
	FirstName string `json:"first_name" gorm:"size:64;not null"`
	LastName  string `json:"last_name" gorm:"size:64;not null"`
	Email     string `json:"email" gorm:"size:120;uniqueIndex;not null"`
	Timestamps
}

func (a Author) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}
