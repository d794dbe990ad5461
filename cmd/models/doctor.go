package models

import (
	"gorm.io/gorm"
)

type Doctor struct {
	gorm.Model
	Name      string `gorm:"column:name;size:255;not null" json:"name"`
	Email     string `gorm:"column:email;size:255;not null;uniqueIndex" json:"email"`
	Specialty string `gorm:"column:specialty;size:255;not null" json:"specialty"`
	Image     string `gorm:"column:image;size:500" json:"img,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}
