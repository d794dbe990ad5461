package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name  string `gorm:"column:name;size:255" json:"name"`
	Email string `gorm:"column:email;size:255;not null;uniqueIndex" json:"email"`
	Role  string `gorm:"column:role;size:50" json:"role,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}
