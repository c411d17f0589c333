package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          string  `json:"id" bson:"_id" gorm:"type:varchar(36);primaryKey"`
	Name        string  `json:"name" bson:"name" gorm:"not null" validate:"required"`
	Description string  `json:"description,omitempty" bson:"description,omitempty"`
	Price       float64 `json:"price" bson:"price" gorm:"not null" validate:"gte=0"`
	Stock       int     `json:"stock" bson:"stock" gorm:"not null" validate:"gte=0"`
	Category    string  `json:"category,omitempty" bson:"category,omitempty"`

	// AssignedTo holds the id of the customer the product is currently
	// assigned to. Nil means unassigned.
	AssignedTo *string `json:"assignedTo" bson:"assignedTo" gorm:"type:varchar(36);index"`
	IsActive   bool    `json:"isActive" bson:"isActive" gorm:"default:true;index"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = NewID()
	}
	return
}
