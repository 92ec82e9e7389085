package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MovementType distinguishes the two stock mutations.
type MovementType string

const (
	MovementPurchase MovementType = "purchase"
	MovementRestock  MovementType = "restock"
)

// StockMovement is the audit trail of every accepted purchase and restock.
// Rows are written asynchronously after the stock update commits.
type StockMovement struct {
	ID        uuid.UUID    `json:"id" gorm:"type:char(36);primaryKey"`
	SweetID   uuid.UUID    `json:"sweetId" gorm:"type:char(36);not null;index"`
	UserID    uuid.UUID    `json:"userId" gorm:"type:char(36);not null;index"`
	Type      MovementType `json:"type" gorm:"type:varchar(20);not null;index"`
	Quantity  int          `json:"quantity" gorm:"not null"`
	CreatedAt time.Time    `json:"createdAt"`
}

// BeforeCreate sets UUID before creating the record.
func (m *StockMovement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
