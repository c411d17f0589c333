// models/reminder_log.go
package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ReminderSent   = "sent"
	ReminderFailed = "failed"
)

// VisitReminderLog records one attempt to remind a customer of an upcoming visit.
type VisitReminderLog struct {
	ID           string    `json:"id" bson:"_id" gorm:"type:varchar(36);primaryKey"`
	VisitID      string    `json:"visitId" bson:"visitId" gorm:"type:varchar(36);index;not null"`
	CustomerID   string    `json:"customerId" bson:"customerId" gorm:"type:varchar(36);index;not null"`
	Message      string    `json:"message" bson:"message" gorm:"type:text"`
	Status       string    `json:"status" bson:"status" gorm:"type:varchar(20)"`        // sent, failed
	ErrorMessage string    `json:"errorMessage,omitempty" bson:"errorMessage,omitempty" gorm:"type:text"`
	Channel      string    `json:"channel" bson:"channel" gorm:"type:varchar(20)"`      // whatsapp, sms
	ProviderID   string    `json:"providerId,omitempty" bson:"providerId,omitempty"`
	SentAt       time.Time `json:"sentAt" bson:"sentAt"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

func (r *VisitReminderLog) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = NewID()
	}
	return
}
