package models

import (
	"time"

	"gorm.io/gorm"
)

type VisitStatus string

const (
	VisitScheduled VisitStatus = "scheduled"
	VisitCompleted VisitStatus = "completed"
	VisitCancelled VisitStatus = "cancelled"
)

func (s VisitStatus) Valid() bool {
	switch s {
	case VisitScheduled, VisitCompleted, VisitCancelled:
		return true
	}
	return false
}

// Terminal reports whether the scheduler must leave a visit in this status alone.
func (s VisitStatus) Terminal() bool {
	return s == VisitCompleted || s == VisitCancelled
}

type Visit struct {
	ID            string      `json:"id" bson:"_id" gorm:"type:varchar(36);primaryKey"`
	CustomerID    string      `json:"customerId" bson:"customerId" gorm:"type:varchar(36);not null;index:idx_visits_customer_date,priority:1"`
	VisitDate     time.Time   `json:"visitDate" bson:"visitDate" gorm:"not null;index;index:idx_visits_customer_date,priority:2"`
	NextVisitDate time.Time   `json:"nextVisitDate" bson:"nextVisitDate" gorm:"not null;index"`
	Status        VisitStatus `json:"status" bson:"status" gorm:"type:varchar(20);not null;default:'scheduled'"`
	Notes         string      `json:"notes,omitempty" bson:"notes,omitempty"`
	IsActive      bool        `json:"isActive" bson:"isActive" gorm:"default:true;index"`

	// GeneratedOn is the scheduler day that created this visit by rolling
	// over its predecessor. Nil for visits created through the API.
	GeneratedOn *time.Time `json:"generatedOn,omitempty" bson:"generatedOn,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (v *Visit) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == "" {
		v.ID = NewID()
	}
	return
}

// NextVisitDate returns the date of the visit that follows one held on
// visitDate, frequency calendar days later.
func NextVisitDate(visitDate time.Time, frequency int) time.Time {
	return visitDate.AddDate(0, 0, frequency)
}
