package models

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type AppointmentOption struct {
	gorm.Model
	Name  string `gorm:"column:name;size:255;not null;uniqueIndex" json:"name"`

	Slots pq.StringArray `gorm:"type:text[];column:slots;not null" json:"slots"`

	Price float64 `gorm:"column:price;not null" json:"price"`
}

func (AppointmentOption) TableName() string {
	return "appointment_options"
}
