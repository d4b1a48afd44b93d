package vehicles

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/samotors/vehicle-backend/pkg/db/models"
	"github.com/samotors/vehicle-backend/pkg/enums"
)

// VehicleDTO is the transport shape for a listing.
type VehicleDTO struct {
	ID           uuid.UUID              `json:"id"`
	VehicleTitle string                 `json:"vehicle_title"`
	Category     string                 `json:"category"`
	Brand        string                 `json:"brand"`
	Model        string                 `json:"model"`
	Year         int                    `json:"year"`
	Price        decimal.Decimal        `json:"price"`
	Condition    enums.VehicleCondition `json:"condition"`
	Mileage      *int                   `json:"mileage,omitempty"`
	FuelType     *enums.FuelType        `json:"fuel_type,omitempty"`
	Transmission *enums.Transmission    `json:"transmission,omitempty"`
	Engine       *string                `json:"engine,omitempty"`
	Color        *string                `json:"color,omitempty"`
	Body         *string                `json:"body,omitempty"`
	Reference    *string                `json:"reference,omitempty"`
	DateAdded    time.Time              `json:"date_added"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// CreateVehicleDTO holds the data required by the repo to persist a listing.
type CreateVehicleDTO struct {
	VehicleTitle string
	Category     string
	Brand        string
	Model        string
	Year         int
	Price        decimal.Decimal
	Condition    enums.VehicleCondition
	Mileage      *int
	FuelType     *enums.FuelType
	Transmission *enums.Transmission
	Engine       *string
	Color        *string
	Body         *string
	Reference    *string
}

// UpdateVehicleFields carries the optional listing changes for an update.
// Only non-nil fields are written.
type UpdateVehicleFields struct {
	VehicleTitle *string
	Category     *string
	Brand        *string
	Model        *string
	Year         *int
	Price        *decimal.Decimal
	Condition    *enums.VehicleCondition
	Mileage      *int
	FuelType     *enums.FuelType
	Transmission *enums.Transmission
	Engine       *string
	Color        *string
	Body         *string
	Reference    *string
}

// SearchCriteria describes the faceted filters for a listing search. Nil
// fields are absent and add no predicate; present fields are ANDed together.
type SearchCriteria struct {
	Brand        *string
	Category     *string
	FuelType     *string
	Transmission *string
	Condition    *string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	MinYear      *int
	MaxYear      *int
}

func FromModel(v *models.Vehicle) *VehicleDTO {
	if v == nil {
		return nil
	}

	return &VehicleDTO{
		ID:           v.ID,
		VehicleTitle: v.VehicleTitle,
		Category:     v.Category,
		Brand:        v.Brand,
		Model:        v.Model,
		Year:         v.Year,
		Price:        v.Price,
		Condition:    v.Condition,
		Mileage:      v.Mileage,
		FuelType:     v.FuelType,
		Transmission: v.Transmission,
		Engine:       v.Engine,
		Color:        v.Color,
		Body:         v.Body,
		Reference:    v.Reference,
		DateAdded:    v.DateAdded,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func FromModels(list []models.Vehicle) []VehicleDTO {
	out := make([]VehicleDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}

func (c CreateVehicleDTO) ToModel() *models.Vehicle {
	return &models.Vehicle{
		VehicleTitle: c.VehicleTitle,
		Category:     c.Category,
		Brand:        c.Brand,
		Model:        c.Model,
		Year:         c.Year,
		Price:        c.Price,
		Condition:    c.Condition,
		Mileage:      c.Mileage,
		FuelType:     c.FuelType,
		Transmission: c.Transmission,
		Engine:       c.Engine,
		Color:        c.Color,
		Body:         c.Body,
		Reference:    c.Reference,
	}
}
