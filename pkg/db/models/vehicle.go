package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/samotors/vehicle-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Vehicle represents an inventory listing. Listings are not owner-scoped.
type Vehicle struct {
	ID           uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VehicleTitle string                 `gorm:"column:vehicle_title;not null"`
	Category     string                 `gorm:"column:category;not null"`
	Brand        string                 `gorm:"column:brand;not null"`
	Model        string                 `gorm:"column:model;not null"`
	Year         int                    `gorm:"column:year;not null"`
	Price        decimal.Decimal        `gorm:"column:price;type:numeric(12,2);not null"`
	Condition    enums.VehicleCondition `gorm:"column:condition;not null"`
	Mileage      *int                   `gorm:"column:mileage"`
	FuelType     *enums.FuelType        `gorm:"column:fuel_type"`
	Transmission *enums.Transmission    `gorm:"column:transmission"`
	Engine       *string                `gorm:"column:engine"`
	Color        *string                `gorm:"column:color"`
	Body         *string                `gorm:"column:body"`
	Reference    *string                `gorm:"column:reference"`
	DateAdded    time.Time              `gorm:"column:date_added;autoCreateTime"`
	CreatedAt    time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}

func (v *Vehicle) BeforeCreate(*gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
