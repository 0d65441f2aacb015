package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an account that can own cats. Password and role never serialize;
// the wire contract keeps the original API's mongo-style field names.
type User struct {
	ID        string         `gorm:"type:text;primaryKey" json:"_id"`
	UserName  string         `gorm:"column:user_name;unique;not null" json:"user_name" binding:"required" form:"user_name"`
	Email     string         `gorm:"unique;not null" json:"email" binding:"required,email" form:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Role      string         `gorm:"not null;default:user" json:"-"`
	CreatedAt string         `json:"created_at,omitempty"`
	UpdatedAt string         `json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	u.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	u.UpdatedAt = u.CreatedAt
	return
}

// UserOutput is the minimal identity echoed by registration and token checks.
type UserOutput struct {
	ID       string `json:"_id"`
	UserName string `json:"user_name"`
	Email    string `json:"email"`
}

func (u *User) Output() UserOutput {
	return UserOutput{ID: u.ID, UserName: u.UserName, Email: u.Email}
}
