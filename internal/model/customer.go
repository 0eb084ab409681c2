package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Address is an optional postal address embedded into Customer.
type Address struct {
	Street  string `json:"street" gorm:"size:255"`
	City    string `json:"city" gorm:"size:100;index:idx_customer_location"`
	State   string `json:"state" gorm:"size:100;index:idx_customer_location"`
	ZipCode string `json:"zipCode" gorm:"size:20"`
	Country string `json:"country" gorm:"size:100"`
}

// Customer extends a User with dealership customer data.
type Customer struct {
	ID              uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID          uuid.UUID `json:"-" gorm:"type:char(36);uniqueIndex;not null"`
	User            *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Address         Address   `json:"address" gorm:"embedded;embeddedPrefix:address_"`
	DrivingLicense  string    `json:"drivingLicense" gorm:"size:100"`
	PreferredBrands []string  `json:"preferredBrands" gorm:"serializer:json;type:json"`

	// Set semantics: a car appears at most once, enforced by the
	// composite key of the join table.
	PurchaseHistory []Car `json:"purchaseHistory" gorm:"many2many:customer_purchases"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
