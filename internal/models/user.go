package models

import (
	"gorm.io/gorm"
)

// User represents an operator allowed to inspect and modify the cache
type User struct {
	ID       string `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"unique;not null"`
	Password string `json:"-" gorm:"not null"`
	gorm.Model
}

// TableName specifies the table name for User Model
func (User) TableName() string {
	return "users"
}

// UserResponse is the public view of a user, and the value type of the user lookup cache
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// ToResponse strips the password and gorm bookkeeping fields
func (u User) ToResponse() UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username}
}
