package models

import (
	"gorm.io/gorm"
)

type Booking struct {
	gorm.Model
	AppointmentDate string  `gorm:"column:appointment_date;size:100;not null;uniqueIndex:idx_bookings_identity" json:"appointmentDate"`
	Email           string  `gorm:"column:email;size:255;not null;uniqueIndex:idx_bookings_identity" json:"email"`
	Treatment       string  `gorm:"column:treatment;size:255;not null;uniqueIndex:idx_bookings_identity" json:"treatment"`
	Patient         string  `gorm:"column:patient;size:255" json:"patient"`
	Slot            string  `gorm:"column:slot;size:100;not null" json:"slot"`
	Phone           string  `gorm:"column:phone;size:20" json:"phone"`
	Price           float64 `gorm:"column:price;not null" json:"price"`
	Paid            bool    `gorm:"column:paid;default:false" json:"paid"`
	TransactionID   string  `gorm:"column:transaction_id;size:255" json:"transactionId,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}
