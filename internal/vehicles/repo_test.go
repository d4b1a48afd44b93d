package vehicles

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/samotors/vehicle-backend/pkg/db/models"
	"github.com/samotors/vehicle-backend/pkg/enums"
	pkgerrors "github.com/samotors/vehicle-backend/pkg/errors"
	"github.com/samotors/vehicle-backend/pkg/pagination"
)

func setupVehiclesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
CREATE TABLE IF NOT EXISTS vehicles (
  id TEXT PRIMARY KEY,
  vehicle_title TEXT NOT NULL,
  category TEXT NOT NULL,
  brand TEXT NOT NULL,
  model TEXT NOT NULL,
  year INTEGER NOT NULL,
  price NUMERIC NOT NULL,
  condition TEXT NOT NULL,
  mileage INTEGER,
  fuel_type TEXT,
  transmission TEXT,
  engine TEXT,
  color TEXT,
  body TEXT,
  reference TEXT,
  date_added DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(ddl).Error)
	return db
}

type seedSpec struct {
	title        string
	category     string
	brand        string
	year         int
	price        string
	condition    enums.VehicleCondition
	fuelType     *enums.FuelType
	transmission *enums.Transmission
	createdAt    time.Time
}

func seedVehicle(t *testing.T, db *gorm.DB, spec seedSpec) *models.Vehicle {
	t.Helper()

	vehicle := &models.Vehicle{
		ID:           uuid.New(),
		VehicleTitle: spec.title,
		Category:     spec.category,
		Brand:        spec.brand,
		Model:        spec.title,
		Year:         spec.year,
		Price:        decimal.RequireFromString(spec.price),
		Condition:    spec.condition,
		FuelType:     spec.fuelType,
		Transmission: spec.transmission,
		DateAdded:    spec.createdAt,
		CreatedAt:    spec.createdAt,
		UpdatedAt:    spec.createdAt,
	}
	require.NoError(t, db.Create(vehicle).Error)
	return vehicle
}

func fuelPtr(f enums.FuelType) *enums.FuelType           { return &f }
func transPtr(tr enums.Transmission) *enums.Transmission { return &tr }
func strPtr(s string) *string                            { return &s }
func intPtr(i int) *int                                  { return &i }

func seedFleet(t *testing.T, db *gorm.DB) []*models.Vehicle {
	t.Helper()
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	specs := []seedSpec{
		{"Corolla LE", "sedan", "Toyota", 2020, "18500.00", enums.VehicleConditionUsed, fuelPtr(enums.FuelTypePetrol), transPtr(enums.TransmissionAutomatic), base},
		{"Land Cruiser", "suv", "Toyota", 2023, "82000.00", enums.VehicleConditionNew, fuelPtr(enums.FuelTypeDiesel), transPtr(enums.TransmissionAutomatic), base.Add(time.Hour)},
		{"Model 3", "sedan", "Tesla", 2024, "39900.00", enums.VehicleConditionNew, fuelPtr(enums.FuelTypeElectric), transPtr(enums.TransmissionAutomatic), base.Add(2 * time.Hour)},
		{"Golf GTI", "hatchback", "Volkswagen", 2019, "21500.00", enums.VehicleConditionUsed, fuelPtr(enums.FuelTypePetrol), transPtr(enums.TransmissionManual), base.Add(3 * time.Hour)},
		{"Hilux", "pickup", "Toyota", 2021, "35000.00", enums.VehicleConditionUsed, fuelPtr(enums.FuelTypeDiesel), transPtr(enums.TransmissionManual), base.Add(4 * time.Hour)},
	}
	fleet := make([]*models.Vehicle, 0, len(specs))
	for _, spec := range specs {
		fleet = append(fleet, seedVehicle(t, db, spec))
	}
	return fleet
}

func TestSearchNoCriteriaReturnsAllNewestFirst(t *testing.T) {
	db := setupVehiclesTestDB(t)
	seedFleet(t, db)
	repo := NewRepository(db)

	list, total, err := repo.Search(context.Background(), SearchCriteria{}, pagination.Params{})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, list, 5)
	for i := 1; i < len(list); i++ {
		assert.False(t, list[i].CreatedAt.After(list[i-1].CreatedAt), "expected created_at descending")
	}
}

func TestSearchBrandSubstringCaseInsensitive(t *testing.T) {
	db := setupVehiclesTestDB(t)
	seedFleet(t, db)
	repo := NewRepository(db)

	brand := "toy"
	list, total, err := repo.Search(context.Background(), SearchCriteria{Brand: &brand}, pagination.Params{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	for _, v := range list {
		assert.Equal(t, "Toyota", v.Brand)
	}
}

func TestSearchCombinesFiltersConjunctively(t *testing.T) {
	db := setupVehiclesTestDB(t)
	seedFleet(t, db)
	repo := NewRepository(db)

	brand := "Toyota"
	fuel := "diesel"
	minYear := 2022
	list, total, err := repo.Search(context.Background(), SearchCriteria{
		Brand:    &brand,
		FuelType: &fuel,
		MinYear:  &minYear,
	}, pagination.Params{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, "Land Cruiser", list[0].VehicleTitle)
}

func TestSearchPriceRangeInclusive(t *testing.T) {
	db := setupVehiclesTestDB(t)
	seedFleet(t, db)
	repo := NewRepository(db)

	min := decimal.RequireFromString("18500.00")
	max := decimal.RequireFromString("35000.00")
	_, total, err := repo.Search(context.Background(), SearchCriteria{MinPrice: &min, MaxPrice: &max}, pagination.Params{})
	require.NoError(t, err)
	// Both boundary prices are included.
	assert.EqualValues(t, 3, total)
}

func TestSearchCountMatchesPagedTotal(t *testing.T) {
	db := setupVehiclesTestDB(t)
	seedFleet(t, db)
	repo := NewRepository(db)

	condition := "used"
	criteria := SearchCriteria{Condition: &condition}

	count, err := repo.Count(context.Background(), criteria)
	require.NoError(t, err)

	seen := 0
	for page := 1; ; page++ {
		list, total, err := repo.Search(context.Background(), criteria, pagination.Params{Page: page, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, count, total)
		if len(list) == 0 {
			break
		}
		seen += len(list)
	}
	assert.EqualValues(t, count, seen)
}

func TestSearchPaginationOffsets(t *testing.T) {
	db := setupVehiclesTestDB(t)
	seedFleet(t, db)
	repo := NewRepository(db)

	first, _, err := repo.Search(context.Background(), SearchCriteria{}, pagination.Params{Page: 1, Limit: 2})
	require.NoError(t, err)
	second, _, err := repo.Search(context.Background(), SearchCriteria{}, pagination.Params{Page: 2, Limit: 2})
	require.NoError(t, err)

	require.Len(t, first, 2)
	require.Len(t, second, 2)
	assert.NotEqual(t, first[0].ID, second[0].ID)
	assert.NotEqual(t, first[1].ID, second[1].ID)
}

func TestFindByPriceRangeOrdersAscending(t *testing.T) {
	db := setupVehiclesTestDB(t)
	seedFleet(t, db)
	repo := NewRepository(db)

	min := decimal.RequireFromString("0")
	max := decimal.RequireFromString("100000")
	list, total, err := repo.FindByPriceRange(context.Background(), min, max, pagination.Params{})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	for i := 1; i < len(list); i++ {
		assert.True(t, list[i].Price.GreaterThanOrEqual(list[i-1].Price), "expected price ascending")
	}
}

func TestFindByYearRangeInclusiveAndDescending(t *testing.T) {
	db := setupVehiclesTestDB(t)
	seedFleet(t, db)
	repo := NewRepository(db)

	list, total, err := repo.FindByYearRange(context.Background(), 2019, 2021, pagination.Params{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	for i := 1; i < len(list); i++ {
		assert.LessOrEqual(t, list[i].Year, list[i-1].Year, "expected year descending")
	}
}

func TestFindByCategorySubstring(t *testing.T) {
	db := setupVehiclesTestDB(t)
	seedFleet(t, db)
	repo := NewRepository(db)

	list, total, err := repo.FindByCategory(context.Background(), "SED", pagination.Params{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, v := range list {
		assert.Equal(t, "sedan", v.Category)
	}
}

func TestCreateAndFindByID(t *testing.T) {
	db := setupVehiclesTestDB(t)
	repo := NewRepository(db)

	created, err := repo.Create(context.Background(), CreateVehicleDTO{
		VehicleTitle: "Civic Type R",
		Category:     "hatchback",
		Brand:        "Honda",
		Model:        "Civic",
		Year:         2023,
		Price:        decimal.RequireFromString("42999.99"),
		Condition:    enums.VehicleConditionNew,
		Mileage:      intPtr(12),
		Engine:       strPtr("2.0T"),
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	found, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Civic Type R", found.VehicleTitle)
	assert.True(t, found.Price.Equal(decimal.RequireFromString("42999.99")))
}

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	db := setupVehiclesTestDB(t)
	fleet := seedFleet(t, db)
	repo := NewRepository(db)

	newPrice := decimal.RequireFromString("17999.00")
	updated, err := repo.Update(context.Background(), fleet[0].ID, UpdateVehicleFields{
		Price:   &newPrice,
		Mileage: intPtr(88000),
	})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(newPrice))
	require.NotNil(t, updated.Mileage)
	assert.Equal(t, 88000, *updated.Mileage)
	assert.Equal(t, fleet[0].VehicleTitle, updated.VehicleTitle)
	assert.Equal(t, fleet[0].Brand, updated.Brand)
}

func TestUpdateWithNoFieldsIsRejected(t *testing.T) {
	db := setupVehiclesTestDB(t)
	fleet := seedFleet(t, db)
	repo := NewRepository(db)

	_, err := repo.Update(context.Background(), fleet[0].ID, UpdateVehicleFields{})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestUpdateUnknownIDReturnsNotFound(t *testing.T) {
	db := setupVehiclesTestDB(t)
	seedFleet(t, db)
	repo := NewRepository(db)

	title := "Ghost"
	_, err := repo.Update(context.Background(), uuid.New(), UpdateVehicleFields{VehicleTitle: &title})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteReportsWhetherRowExisted(t *testing.T) {
	db := setupVehiclesTestDB(t)
	fleet := seedFleet(t, db)
	repo := NewRepository(db)

	deleted, err := repo.Delete(context.Background(), fleet[0].ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(context.Background(), fleet[0].ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = repo.FindByID(context.Background(), fleet[0].ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
