package models

import "github.com/google/uuid"

// User represents a registered account. The password hash is never serialized.
type User struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Email        string    `json:"email" db:"email" gorm:"type:text;not null;unique"`
	Username     string    `json:"username" db:"username" gorm:"type:text;not null;unique"`
	FirstName    string    `json:"first_name" db:"first_name" gorm:"type:text;not null"`
	LastName     string    `json:"last_name" db:"last_name" gorm:"type:text;not null"`
	PasswordHash string    `json:"-" db:"password_hash" gorm:"type:text;not null"`
	IsAdmin      bool      `json:"-" db:"is_admin" gorm:"not null;default:false"`
}
