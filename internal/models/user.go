package models

import (
	"time"
)

// Role is the closed set of roles a session can carry.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Admin accounts carry role id 2; every other id is a regular user.
const AdminRoleID = 2

func RoleFromID(id int) Role {
	if id == AdminRoleID {
		return RoleAdmin
	}
	return RoleUser
}

func (r Role) ID() int {
	if r == RoleAdmin {
		return AdminRoleID
	}
	return 1
}

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Login        string    `json:"login" gorm:"type:varchar(64);uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"`
	FullName     string    `json:"full_name" gorm:"type:varchar(200);not null"`
	Phone        string    `json:"phone" gorm:"type:varchar(20);uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	RoleID       int       `json:"role_id" gorm:"default:1"`
	Active       bool      `json:"active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) Role() Role {
	return RoleFromID(u.RoleID)
}

func (u *User) IsAdmin() bool {
	return u.Role() == RoleAdmin
}

type Session struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Token     string    `json:"token" gorm:"type:varchar(500);uniqueIndex;not null"`
	Role      Role      `json:"role" gorm:"type:varchar(20);not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// AuthLog rows record every login, logout and registration attempt.
type AuthLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    *uint     `json:"user_id" gorm:"index"`
	Login     string    `json:"login" gorm:"type:varchar(64)"` // login as submitted, known user or not
	IPAddress string    `json:"ip_address" gorm:"type:varchar(45)"`
	UserAgent string    `json:"user_agent" gorm:"type:varchar(500)"`
	Success   bool      `json:"success"`
	Reason    string    `json:"reason" gorm:"type:varchar(50);not null"` // login, logout, registration, invalid_credentials, user_inactive
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// EmailQueue holds queued welcome mails. Nothing drains it; it is an audit sink.
type EmailQueue struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Recipient string    `json:"recipient" gorm:"type:varchar(255);not null"`
	Subject   string    `json:"subject" gorm:"type:varchar(255)"`
	Body      string    `json:"body" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}
