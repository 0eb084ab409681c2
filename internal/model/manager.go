package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Manager extends a User with employment data.
type Manager struct {
	ID          uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID       `json:"-" gorm:"type:char(36);uniqueIndex;not null"`
	User        *User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	EmployeeID  string          `json:"employeeId" gorm:"uniqueIndex;size:50;not null"`
	Department  string          `json:"department" gorm:"size:100;not null;index"`
	Salary      decimal.Decimal `json:"salary" gorm:"type:decimal(12,2);not null"`
	HireDate    time.Time       `json:"hireDate" gorm:"not null"`
	Permissions []string        `json:"permissions" gorm:"serializer:json;type:json"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (m *Manager) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.HireDate.IsZero() {
		m.HireDate = time.Now()
	}
	return nil
}
