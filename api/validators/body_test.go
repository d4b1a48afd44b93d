package validators

import (
	"bytes"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	pkgerrors "github.com/samotors/vehicle-backend/pkg/errors"
	"github.com/samotors/vehicle-backend/pkg/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type vehiclePayload struct {
	VehicleTitle string          `json:"vehicle_title" validate:"required"`
	Brand        string          `json:"brand" validate:"required"`
	Year         int             `json:"year" validate:"required,gte=1900,model_year"`
	Price        decimal.Decimal `json:"price" validate:"required,gt=0"`
}

func decodeBody(t *testing.T, payload string, dest any) error {
	t.Helper()
	req := httptest.NewRequest("POST", "/", bytes.NewBufferString(payload))
	return DecodeJSONBody(req, dest)
}

func fieldErrors(t *testing.T, err error) []types.FieldError {
	t.Helper()
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
	details, ok := typed.Details().([]types.FieldError)
	require.True(t, ok, "expected field error details, got %T", typed.Details())
	return details
}

func TestDecodeJSONBodyValid(t *testing.T) {
	var dest vehiclePayload
	err := decodeBody(t, `{"vehicle_title":"Corolla LE","brand":"Toyota","year":2020,"price":"18500.00"}`, &dest)
	require.NoError(t, err)
	assert.Equal(t, "Toyota", dest.Brand)
	assert.True(t, dest.Price.Equal(decimal.RequireFromString("18500.00")))
}

func TestDecodeJSONBodyCollectsAllViolations(t *testing.T) {
	var dest vehiclePayload
	err := decodeBody(t, `{"brand":"","year":1700,"price":"-5"}`, &dest)
	require.Error(t, err)

	details := fieldErrors(t, err)
	fields := map[string]string{}
	for _, fe := range details {
		fields[fe.Field] = fe.Message
	}
	assert.Contains(t, fields, "vehicle_title")
	assert.Contains(t, fields, "brand")
	assert.Contains(t, fields, "year")
	assert.Contains(t, fields, "price")
	assert.Equal(t, "must be greater than 0", fields["price"])
}

func TestDecodeJSONBodyRejectsFutureModelYear(t *testing.T) {
	var dest vehiclePayload
	tooFar := time.Now().Year() + 2
	payload := fmt.Sprintf(`{"vehicle_title":"X","brand":"Y","year":%d,"price":"1"}`, tooFar)
	err := decodeBody(t, payload, &dest)
	require.Error(t, err)

	details := fieldErrors(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "year", details[0].Field)
}

func TestDecodeJSONBodyAllowsNextModelYear(t *testing.T) {
	var dest vehiclePayload
	next := time.Now().Year() + 1
	payload := fmt.Sprintf(`{"vehicle_title":"X","brand":"Y","year":%d,"price":"1"}`, next)
	require.NoError(t, decodeBody(t, payload, &dest))
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	var dest vehiclePayload
	err := decodeBody(t, `{"vehicle_title":"X","brand":"Y","year":2020,"price":"1","bogus":true}`, &dest)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestDecodeJSONBodyRejectsMalformedJSON(t *testing.T) {
	var dest vehiclePayload
	err := decodeBody(t, `{"vehicle_title":`, &dest)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
