package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultVisitFrequency is the revisit interval, in days, used when a customer
// is created without one.
const DefaultVisitFrequency = 30

type Customer struct {
	ID string `json:"id" bson:"_id" gorm:"type:varchar(36);primaryKey"`

	StoreName         string   `json:"storeName" bson:"storeName" gorm:"not null" validate:"required"`
	AuthorizedPersons []string `json:"authorizedPersons" bson:"authorizedPersons" gorm:"serializer:json"`
	Phone             string   `json:"phone" bson:"phone" gorm:"not null" validate:"required,phone"`
	Address           string   `json:"address" bson:"address" gorm:"not null" validate:"required"`
	City              string   `json:"city" bson:"city" gorm:"not null" validate:"required"`
	District          string   `json:"district" bson:"district" gorm:"not null" validate:"required"`
	LocationLink      string   `json:"locationLink,omitempty" bson:"locationLink,omitempty"`
	RoutineName       string   `json:"routineName" bson:"routineName" gorm:"not null" validate:"required"`
	InitialPoints     float64  `json:"initialPoints" bson:"initialPoints" gorm:"not null" validate:"gte=0"`
	VisitFrequency    int      `json:"visitFrequency" bson:"visitFrequency" gorm:"not null;default:30" validate:"gte=1"`
	IsActive          bool     `json:"isActive" bson:"isActive" gorm:"default:true;index"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = NewID()
	}
	return
}
