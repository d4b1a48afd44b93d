package vehicles

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/samotors/vehicle-backend/pkg/db/models"
	pkgerrors "github.com/samotors/vehicle-backend/pkg/errors"
	"github.com/samotors/vehicle-backend/pkg/pagination"
)

// Repository exposes vehicle listing persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a vehicles repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new listing and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateVehicleDTO) (*models.Vehicle, error) {
	vehicle := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(vehicle).Error; err != nil {
		return nil, err
	}
	return vehicle, nil
}

// FindByID loads a listing by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := r.db.WithContext(ctx).First(&vehicle, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// Search returns the page of listings matching the criteria, newest first,
// together with the total match count. Count and page share the same
// predicate construction so they can never disagree.
func (r *Repository) Search(ctx context.Context, criteria SearchCriteria, params pagination.Params) ([]models.Vehicle, int64, error) {
	params = params.Normalize()

	total, err := r.Count(ctx, criteria)
	if err != nil {
		return nil, 0, err
	}

	var list []models.Vehicle
	if err := applyCriteria(r.db.WithContext(ctx), criteria).
		Order("created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Count reports how many listings match the criteria.
func (r *Repository) Count(ctx context.Context, criteria SearchCriteria) (int64, error) {
	var total int64
	err := applyCriteria(r.db.WithContext(ctx).Model(&models.Vehicle{}), criteria).
		Count(&total).Error
	return total, err
}

// FindByBrand returns listings whose brand contains the term, newest first.
func (r *Repository) FindByBrand(ctx context.Context, brand string, params pagination.Params) ([]models.Vehicle, int64, error) {
	return r.Search(ctx, SearchCriteria{Brand: &brand}, params)
}

// FindByCategory returns listings whose category contains the term, newest first.
func (r *Repository) FindByCategory(ctx context.Context, category string, params pagination.Params) ([]models.Vehicle, int64, error) {
	return r.Search(ctx, SearchCriteria{Category: &category}, params)
}

// FindByPriceRange returns listings inside the inclusive price band, cheapest
// first.
func (r *Repository) FindByPriceRange(ctx context.Context, min, max decimal.Decimal, params pagination.Params) ([]models.Vehicle, int64, error) {
	params = params.Normalize()
	criteria := SearchCriteria{MinPrice: &min, MaxPrice: &max}

	total, err := r.Count(ctx, criteria)
	if err != nil {
		return nil, 0, err
	}

	var list []models.Vehicle
	if err := applyCriteria(r.db.WithContext(ctx), criteria).
		Order("price ASC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// FindByYearRange returns listings inside the inclusive year band, newest
// model year first.
func (r *Repository) FindByYearRange(ctx context.Context, min, max int, params pagination.Params) ([]models.Vehicle, int64, error) {
	params = params.Normalize()
	criteria := SearchCriteria{MinYear: &min, MaxYear: &max}

	total, err := r.Count(ctx, criteria)
	if err != nil {
		return nil, 0, err
	}

	var list []models.Vehicle
	if err := applyCriteria(r.db.WithContext(ctx), criteria).
		Order("year DESC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Update applies the non-nil fields to the listing and returns the fresh row.
// An update carrying no fields is rejected before touching the database.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, fields UpdateVehicleFields) (*models.Vehicle, error) {
	updates := map[string]any{}
	if fields.VehicleTitle != nil {
		updates["vehicle_title"] = *fields.VehicleTitle
	}
	if fields.Category != nil {
		updates["category"] = *fields.Category
	}
	if fields.Brand != nil {
		updates["brand"] = *fields.Brand
	}
	if fields.Model != nil {
		updates["model"] = *fields.Model
	}
	if fields.Year != nil {
		updates["year"] = *fields.Year
	}
	if fields.Price != nil {
		updates["price"] = *fields.Price
	}
	if fields.Condition != nil {
		updates["condition"] = *fields.Condition
	}
	if fields.Mileage != nil {
		updates["mileage"] = *fields.Mileage
	}
	if fields.FuelType != nil {
		updates["fuel_type"] = *fields.FuelType
	}
	if fields.Transmission != nil {
		updates["transmission"] = *fields.Transmission
	}
	if fields.Engine != nil {
		updates["engine"] = *fields.Engine
	}
	if fields.Color != nil {
		updates["color"] = *fields.Color
	}
	if fields.Body != nil {
		updates["body"] = *fields.Body
	}
	if fields.Reference != nil {
		updates["reference"] = *fields.Reference
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	res := r.db.WithContext(ctx).Model(&models.Vehicle{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete removes the listing. deleted is false when no row matched.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Vehicle{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// applyCriteria chains one predicate per present filter. Text facets match
// case-insensitive substrings; range facets are inclusive on both ends.
func applyCriteria(qb *gorm.DB, criteria SearchCriteria) *gorm.DB {
	if criteria.Brand != nil {
		qb = qb.Where("LOWER(brand) LIKE ?", containsPattern(*criteria.Brand))
	}
	if criteria.Category != nil {
		qb = qb.Where("LOWER(category) LIKE ?", containsPattern(*criteria.Category))
	}
	if criteria.FuelType != nil {
		qb = qb.Where("LOWER(fuel_type) LIKE ?", containsPattern(*criteria.FuelType))
	}
	if criteria.Transmission != nil {
		qb = qb.Where("LOWER(transmission) LIKE ?", containsPattern(*criteria.Transmission))
	}
	if criteria.Condition != nil {
		qb = qb.Where("LOWER(condition) LIKE ?", containsPattern(*criteria.Condition))
	}
	if criteria.MinPrice != nil {
		qb = qb.Where("price >= ?", *criteria.MinPrice)
	}
	if criteria.MaxPrice != nil {
		qb = qb.Where("price <= ?", *criteria.MaxPrice)
	}
	if criteria.MinYear != nil {
		qb = qb.Where("year >= ?", *criteria.MinYear)
	}
	if criteria.MaxYear != nil {
		qb = qb.Where("year <= ?", *criteria.MaxYear)
	}
	return qb
}

func containsPattern(term string) string {
	return "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
}
