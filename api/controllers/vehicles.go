package controllers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/samotors/vehicle-backend/api/responses"
	"github.com/samotors/vehicle-backend/api/validators"
	"github.com/samotors/vehicle-backend/internal/vehicles"
	"github.com/samotors/vehicle-backend/pkg/db/models"
	"github.com/samotors/vehicle-backend/pkg/enums"
	pkgerrors "github.com/samotors/vehicle-backend/pkg/errors"
	"github.com/samotors/vehicle-backend/pkg/logger"
	"github.com/samotors/vehicle-backend/pkg/pagination"
)

// VehicleStore is the persistence surface the vehicle controllers depend on.
type VehicleStore interface {
	Create(ctx context.Context, dto vehicles.CreateVehicleDTO) (*models.Vehicle, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Vehicle, error)
	Search(ctx context.Context, criteria vehicles.SearchCriteria, params pagination.Params) ([]models.Vehicle, int64, error)
	FindByBrand(ctx context.Context, brand string, params pagination.Params) ([]models.Vehicle, int64, error)
	FindByCategory(ctx context.Context, category string, params pagination.Params) ([]models.Vehicle, int64, error)
	FindByPriceRange(ctx context.Context, min, max decimal.Decimal, params pagination.Params) ([]models.Vehicle, int64, error)
	FindByYearRange(ctx context.Context, min, max int, params pagination.Params) ([]models.Vehicle, int64, error)
	Update(ctx context.Context, id uuid.UUID, fields vehicles.UpdateVehicleFields) (*models.Vehicle, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// VehiclesSearch lists vehicles matching the query facets, newest first.
func VehiclesSearch(store VehicleStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := paginationFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		criteria, err := criteriaFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, total, err := store.Search(r.Context(), criteria, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteList(w, vehicles.FromModels(list), pagination.NewMeta(params, total))
	}
}

// VehiclesGet returns a single listing by id.
func VehiclesGet(store VehicleStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vehicle, err := store.FindByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, notFoundOr(err, "vehicle not found"))
			return
		}

		responses.WriteSuccess(w, vehicles.FromModel(vehicle))
	}
}

type createVehicleRequest struct {
	VehicleTitle string          `json:"vehicle_title" validate:"required"`
	Category     string          `json:"category" validate:"required"`
	Brand        string          `json:"brand" validate:"required"`
	Model        string          `json:"model" validate:"required"`
	Year         int             `json:"year" validate:"required,gte=1900,model_year"`
	Price        decimal.Decimal `json:"price" validate:"required,gt=0"`
	Condition    string          `json:"condition" validate:"required"`
	Mileage      *int            `json:"mileage,omitempty" validate:"omitempty,gte=0"`
	FuelType     *string         `json:"fuel_type,omitempty"`
	Transmission *string         `json:"transmission,omitempty"`
	Engine       *string         `json:"engine,omitempty"`
	Color        *string         `json:"color,omitempty"`
	Body         *string         `json:"body,omitempty"`
	Reference    *string         `json:"reference,omitempty"`
}

func (req createVehicleRequest) toCreateDTO() (vehicles.CreateVehicleDTO, error) {
	condition, err := enums.ParseVehicleCondition(strings.TrimSpace(req.Condition))
	if err != nil {
		return vehicles.CreateVehicleDTO{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid condition")
	}

	dto := vehicles.CreateVehicleDTO{
		VehicleTitle: validators.SanitizeString(req.VehicleTitle, 200),
		Category:     validators.SanitizeString(req.Category, 100),
		Brand:        validators.SanitizeString(req.Brand, 100),
		Model:        validators.SanitizeString(req.Model, 100),
		Year:         req.Year,
		Price:        req.Price,
		Condition:    condition,
		Mileage:      req.Mileage,
		Engine:       req.Engine,
		Color:        req.Color,
		Body:         req.Body,
		Reference:    req.Reference,
	}

	if req.FuelType != nil {
		fuel, err := enums.ParseFuelType(strings.TrimSpace(*req.FuelType))
		if err != nil {
			return vehicles.CreateVehicleDTO{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid fuel type")
		}
		dto.FuelType = &fuel
	}
	if req.Transmission != nil {
		trans, err := enums.ParseTransmission(strings.TrimSpace(*req.Transmission))
		if err != nil {
			return vehicles.CreateVehicleDTO{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid transmission")
		}
		dto.Transmission = &trans
	}

	return dto, nil
}

// VehiclesCreate persists a new listing.
func VehiclesCreate(store VehicleStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createVehicleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := payload.toCreateDTO()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vehicle, err := store.Create(r.Context(), dto)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteCreated(w, vehicles.FromModel(vehicle))
	}
}

type updateVehicleRequest struct {
	VehicleTitle *string          `json:"vehicle_title,omitempty" validate:"omitempty,min=1"`
	Category     *string          `json:"category,omitempty" validate:"omitempty,min=1"`
	Brand        *string          `json:"brand,omitempty" validate:"omitempty,min=1"`
	Model        *string          `json:"model,omitempty" validate:"omitempty,min=1"`
	Year         *int             `json:"year,omitempty" validate:"omitempty,gte=1900,model_year"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	Condition    *string          `json:"condition,omitempty"`
	Mileage      *int             `json:"mileage,omitempty" validate:"omitempty,gte=0"`
	FuelType     *string          `json:"fuel_type,omitempty"`
	Transmission *string          `json:"transmission,omitempty"`
	Engine       *string          `json:"engine,omitempty"`
	Color        *string          `json:"color,omitempty"`
	Body         *string          `json:"body,omitempty"`
	Reference    *string          `json:"reference,omitempty"`
}

func (req updateVehicleRequest) toUpdateFields() (vehicles.UpdateVehicleFields, error) {
	fields := vehicles.UpdateVehicleFields{
		VehicleTitle: req.VehicleTitle,
		Category:     req.Category,
		Brand:        req.Brand,
		Model:        req.Model,
		Year:         req.Year,
		Mileage:      req.Mileage,
		Engine:       req.Engine,
		Color:        req.Color,
		Body:         req.Body,
		Reference:    req.Reference,
	}

	if req.Price != nil {
		if !req.Price.IsPositive() {
			return vehicles.UpdateVehicleFields{}, pkgerrors.New(pkgerrors.CodeValidation, "price must be greater than zero")
		}
		fields.Price = req.Price
	}
	if req.Condition != nil {
		condition, err := enums.ParseVehicleCondition(strings.TrimSpace(*req.Condition))
		if err != nil {
			return vehicles.UpdateVehicleFields{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid condition")
		}
		fields.Condition = &condition
	}
	if req.FuelType != nil {
		fuel, err := enums.ParseFuelType(strings.TrimSpace(*req.FuelType))
		if err != nil {
			return vehicles.UpdateVehicleFields{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid fuel type")
		}
		fields.FuelType = &fuel
	}
	if req.Transmission != nil {
		trans, err := enums.ParseTransmission(strings.TrimSpace(*req.Transmission))
		if err != nil {
			return vehicles.UpdateVehicleFields{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid transmission")
		}
		fields.Transmission = &trans
	}

	return fields, nil
}

// VehiclesUpdate applies a partial update to a listing.
func VehiclesUpdate(store VehicleStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateVehicleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		fields, err := payload.toUpdateFields()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vehicle, err := store.Update(r.Context(), id, fields)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, notFoundOr(err, "vehicle not found"))
			return
		}

		responses.WriteSuccess(w, vehicles.FromModel(vehicle))
	}
}

// VehiclesDelete removes a listing.
func VehiclesDelete(store VehicleStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		deleted, err := store.Delete(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !deleted {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found"))
			return
		}

		responses.WriteMessage(w, "vehicle deleted")
	}
}

// VehiclesByBrand lists vehicles whose brand contains the path term.
func VehiclesByBrand(store VehicleStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		brand := strings.TrimSpace(chi.URLParam(r, "brand"))
		if brand == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "brand is required"))
			return
		}

		params, err := paginationFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, total, err := store.FindByBrand(r.Context(), brand, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteList(w, vehicles.FromModels(list), pagination.NewMeta(params, total))
	}
}

// VehiclesByCategory lists vehicles whose category contains the path term.
func VehiclesByCategory(store VehicleStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := strings.TrimSpace(chi.URLParam(r, "category"))
		if category == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "category is required"))
			return
		}

		params, err := paginationFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, total, err := store.FindByCategory(r.Context(), category, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteList(w, vehicles.FromModels(list), pagination.NewMeta(params, total))
	}
}

// VehiclesByPriceRange lists vehicles inside the inclusive band, cheapest first.
func VehiclesByPriceRange(store VehicleStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		min, err := decimal.NewFromString(chi.URLParam(r, "min"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid min price"))
			return
		}
		max, err := decimal.NewFromString(chi.URLParam(r, "max"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid max price"))
			return
		}
		if max.LessThan(min) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "max price must not be below min price"))
			return
		}

		params, err := paginationFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, total, err := store.FindByPriceRange(r.Context(), min, max, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteList(w, vehicles.FromModels(list), pagination.NewMeta(params, total))
	}
}

// VehiclesByYearRange lists vehicles inside the inclusive band, newest model
// year first.
func VehiclesByYearRange(store VehicleStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		min, err := strconv.Atoi(chi.URLParam(r, "min"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid min year"))
			return
		}
		max, err := strconv.Atoi(chi.URLParam(r, "max"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid max year"))
			return
		}
		if max < min {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "max year must not be below min year"))
			return
		}

		params, err := paginationFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, total, err := store.FindByYearRange(r.Context(), min, max, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteList(w, vehicles.FromModels(list), pagination.NewMeta(params, total))
	}
}

func criteriaFromQuery(r *http.Request) (vehicles.SearchCriteria, error) {
	criteria := vehicles.SearchCriteria{
		Brand:        validators.ParseQueryStringPtr(r, "brand"),
		Category:     validators.ParseQueryStringPtr(r, "category"),
		FuelType:     validators.ParseQueryStringPtr(r, "fuel_type"),
		Transmission: validators.ParseQueryStringPtr(r, "transmission"),
		Condition:    validators.ParseQueryStringPtr(r, "condition"),
	}

	minPrice, err := validators.ParseQueryDecimalPtr(r, "minPrice")
	if err != nil {
		return vehicles.SearchCriteria{}, err
	}
	maxPrice, err := validators.ParseQueryDecimalPtr(r, "maxPrice")
	if err != nil {
		return vehicles.SearchCriteria{}, err
	}
	minYear, err := validators.ParseQueryIntPtr(r, "minYear")
	if err != nil {
		return vehicles.SearchCriteria{}, err
	}
	maxYear, err := validators.ParseQueryIntPtr(r, "maxYear")
	if err != nil {
		return vehicles.SearchCriteria{}, err
	}

	criteria.MinPrice = minPrice
	criteria.MaxPrice = maxPrice
	criteria.MinYear = minYear
	criteria.MaxYear = maxYear
	return criteria, nil
}
