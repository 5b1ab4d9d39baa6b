// model/customer.go
package model

import "strings"

type Customer struct {
	ID        int64  `json:"id" gorm:"primaryKey"`
	FirstName string `json:"first_name" gorm:"size:64;not null"`
	LastName  string `json:"last_name" gorm:"size:64;not null"`
	Email     string `json:"email" gorm:"size:120;uniqueIndex;not null"`
	Timestamps
}

func (c Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
