package models

import (
	"time"
)

// SaleStatus is the closed set of payment states a sale can be in.
type SaleStatus string

const (
	SalePaid      SaleStatus = "paid"
	SalePending   SaleStatus = "pending"
	SaleCancelled SaleStatus = "cancelled"
)

// Sale carries a denormalized copy of the performance name rather than a
// foreign key, matching how the report reads it back.
type Sale struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	SaleDate        time.Time  `json:"sale_date" gorm:"index;not null"`
	PerformanceName string     `json:"performance_name" gorm:"type:varchar(255);not null;index"`
	Tickets         int        `json:"tickets" gorm:"not null"`
	Amount          float64    `json:"amount" gorm:"not null"`
	Customer        string     `json:"customer" gorm:"type:varchar(255)"`
	CustomerContact string     `json:"customer_contact" gorm:"type:varchar(255)"`
	Status          SaleStatus `json:"status" gorm:"type:varchar(20);default:'paid'"`
	PaymentMethod   string     `json:"payment_method" gorm:"type:varchar(50)"`
	CreatedBy       *uint      `json:"created_by" gorm:"index"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Performance is a small reference list feeding the sales filter dropdown.
type Performance struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"type:varchar(255);uniqueIndex;not null"`
	Description string  `json:"description" gorm:"type:text"`
	BasePrice   float64 `json:"base_price"`
	Active      bool    `json:"active" gorm:"default:true"`
}
