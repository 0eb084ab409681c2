package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Fuel types accepted for a car.
const (
	FuelGasoline = "gasoline"
	FuelDiesel   = "diesel"
	FuelElectric = "electric"
	FuelHybrid   = "hybrid"
)

// Transmission types accepted for a car.
const (
	TransmissionManual    = "manual"
	TransmissionAutomatic = "automatic"
)

// Car is a vehicle in the dealership inventory.
//
// brand/model/description carry a FULLTEXT index for free-text search;
// the range-filtered columns are indexed individually.
type Car struct {
	ID           uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Brand        string          `json:"brand" gorm:"size:100;not null;index;index:idx_cars_search,class:FULLTEXT,composite:search"`
	Model        string          `json:"model" gorm:"size:100;not null;index;index:idx_cars_search,class:FULLTEXT,composite:search"`
	Year         int             `json:"year" gorm:"not null;index"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null;index"`
	Color        string          `json:"color" gorm:"size:50;not null"`
	Mileage      int             `json:"mileage" gorm:"not null;index"`
	FuelType     string          `json:"fuelType" gorm:"size:20;not null;index"`
	Transmission string          `json:"transmission" gorm:"size:20;not null;index"`
	BodyType     string          `json:"bodyType" gorm:"size:50;not null;index"`
	Engine       string          `json:"engine" gorm:"size:100;not null"`
	Features     []string        `json:"features" gorm:"serializer:json;type:json"`
	IsAvailable  bool            `json:"isAvailable" gorm:"default:true;index"`
	CategoryID   uuid.UUID       `json:"categoryId" gorm:"type:char(36);not null;index"`
	Category     *Category       `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Images       []string        `json:"images" gorm:"serializer:json;type:json"`
	Description  string          `json:"description" gorm:"type:text;index:idx_cars_search,class:FULLTEXT,composite:search"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Car) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// ValidFuelType reports whether v is one of the accepted fuel types.
func ValidFuelType(v string) bool {
	switch v {
	case FuelGasoline, FuelDiesel, FuelElectric, FuelHybrid:
		return true
	}
	return false
}

// ValidTransmission reports whether v is one of the accepted transmissions.
func ValidTransmission(v string) bool {
	return v == TransmissionManual || v == TransmissionAutomatic
}
