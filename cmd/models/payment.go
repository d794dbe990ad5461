package models

import (
	"gorm.io/gorm"
)

type Payment struct {
	gorm.Model
	BookingID     uint    `gorm:"column:booking_id;not null" json:"bookingId"`
	Email         string  `gorm:"column:email;size:255" json:"email"`
	TransactionID string  `gorm:"column:transaction_id;size:255;not null" json:"transactionId"`
	Amount        float64 `gorm:"column:amount;not null" json:"amount"`

	Booking *Booking `gorm:"foreignKey:BookingID" json:"booking,omitempty"`
}

func (Payment) TableName() string {
	return "payments"
}
