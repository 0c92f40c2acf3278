package models

import (
	"time"
)

// ServerStatus is the closed set of states a monitored machine can report.
type ServerStatus string

const (
	StatusOnline  ServerStatus = "online"
	StatusOffline ServerStatus = "offline"
	StatusWarning ServerStatus = "warning"
)

type Server struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	Name        string       `json:"name" gorm:"type:varchar(255);not null"`
	IP          string       `json:"ip" gorm:"type:varchar(45);not null"`
	Description string       `json:"description" gorm:"type:text"`
	Status      ServerStatus `json:"status" gorm:"type:varchar(20);default:'online'"`
	LastCheck   time.Time    `json:"last_check"`
	CreatedBy   *uint        `json:"created_by" gorm:"index"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
