package models

import (
	"time"

	"gorm.io/gorm"
)

type Direction string

const (
	CustomerToProduct Direction = "customer_to_product"
	ProductToCustomer Direction = "product_to_customer"
)

// EntityType tags the kind of record a suggestion endpoint refers to.
type EntityType string

const (
	EntityCustomer EntityType = "Customer"
	EntityProduct  EntityType = "Product"
)

type SuggestionStatus string

const (
	SuggestionPending  SuggestionStatus = "pending"
	SuggestionAccepted SuggestionStatus = "accepted"
	SuggestionRejected SuggestionStatus = "rejected"
)

func (s SuggestionStatus) Valid() bool {
	switch s {
	case SuggestionPending, SuggestionAccepted, SuggestionRejected:
		return true
	}
	return false
}

// Suggestion is one direction of a customer/product suggestion link. Links are
// always stored as two mirrored records, see NewSuggestionPair.
type Suggestion struct {
	ID         string     `json:"id" bson:"_id" gorm:"type:varchar(36);primaryKey"`
	Direction  Direction  `json:"direction" bson:"direction" gorm:"type:varchar(32);not null;index:idx_suggestions_direction,priority:1"`
	SourceID   string     `json:"sourceId" bson:"sourceId" gorm:"type:varchar(36);not null;index:idx_suggestions_pair,priority:1"`
	SourceType EntityType `json:"sourceType" bson:"sourceType" gorm:"type:varchar(16);not null"`
	TargetID   string     `json:"targetId" bson:"targetId" gorm:"type:varchar(36);not null;index:idx_suggestions_pair,priority:2"`
	TargetType EntityType `json:"targetType" bson:"targetType" gorm:"type:varchar(16);not null"`

	Status         SuggestionStatus `json:"status" bson:"status" gorm:"type:varchar(16);not null;default:'pending'"`
	SuggestionNote string           `json:"suggestionNote,omitempty" bson:"suggestionNote,omitempty"`
	ResponseNote   string           `json:"responseNote,omitempty" bson:"responseNote,omitempty"`
	RespondedAt    *time.Time       `json:"respondedAt,omitempty" bson:"respondedAt,omitempty"`
	SuggestedAt    time.Time        `json:"suggestedAt" bson:"suggestedAt" gorm:"index:idx_suggestions_suggested_at,sort:desc"`
	IsActive       bool             `json:"isActive" bson:"isActive" gorm:"default:true;index:idx_suggestions_pair,priority:3;index:idx_suggestions_direction,priority:2"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (s *Suggestion) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = NewID()
	}
	return
}

// EntityRef is a tagged reference to a customer or a product.
type EntityRef struct {
	ID   string
	Type EntityType
}

// PairKey identifies a suggestion link. A key and its Transpose address the
// two mirrored records of the same link.
type PairKey struct {
	Source EntityRef
	Target EntityRef
}

func (k PairKey) Transpose() PairKey {
	return PairKey{Source: k.Target, Target: k.Source}
}

func (s *Suggestion) Key() PairKey {
	return PairKey{
		Source: EntityRef{ID: s.SourceID, Type: s.SourceType},
		Target: EntityRef{ID: s.TargetID, Type: s.TargetType},
	}
}

// NewSuggestionPair builds the two pending records that make up one
// customer/product link: product_to_customer first, then customer_to_product.
func NewSuggestionPair(customerID, productID, note string, at time.Time) [2]Suggestion {
	base := Suggestion{
		Status:         SuggestionPending,
		SuggestionNote: note,
		SuggestedAt:    at,
		IsActive:       true,
	}

	toCustomer := base
	toCustomer.ID = NewID()
	toCustomer.Direction = ProductToCustomer
	toCustomer.SourceID, toCustomer.SourceType = productID, EntityProduct
	toCustomer.TargetID, toCustomer.TargetType = customerID, EntityCustomer

	toProduct := base
	toProduct.ID = NewID()
	toProduct.Direction = CustomerToProduct
	toProduct.SourceID, toProduct.SourceType = customerID, EntityCustomer
	toProduct.TargetID, toProduct.TargetType = productID, EntityProduct

	return [2]Suggestion{toCustomer, toProduct}
}
