package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cat is an owned animal record. OwnerID always references an existing user;
// only admins may reassign it. Filename and the coordinates are stamped by
// the upload middleware, never taken from the client body directly.
type Cat struct {
	ID        string         `gorm:"type:text;primaryKey" json:"_id"`
	CatName   string         `gorm:"column:cat_name;not null" json:"cat_name" form:"cat_name" binding:"required"`
	OwnerID   string         `gorm:"column:owner_id;index;not null" json:"owner_id"`
	Owner     *User          `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Weight    float64        `json:"weight" form:"weight" binding:"required,gt=0"`
	Filename  string         `json:"filename"`
	Birthdate time.Time      `json:"birthdate" form:"birthdate" time_format:"2006-01-02" binding:"required"`
	Longitude float64        `json:"longitude"`
	Latitude  float64        `json:"latitude"`
	CreatedAt string         `json:"created_at"`
	UpdatedAt string         `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Cat) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	c.UpdatedAt = c.CreatedAt
	return
}
