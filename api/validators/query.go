package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/samotors/vehicle-backend/pkg/errors"
	"github.com/samotors/vehicle-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// ParseQueryInt reads an integer query parameter, falling back to defaultVal
// when absent and rejecting values outside [min, max].
func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, queryError(key, "must be numeric")
	}
	if value < min || value > max {
		return 0, queryError(key, "is out of range")
	}
	return value, nil
}

// ParseQueryIntPtr reads an optional integer parameter; nil means absent.
func ParseQueryIntPtr(r *http.Request, key string) (*int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, queryError(key, "must be numeric")
	}
	return &value, nil
}

// ParseQueryDecimalPtr reads an optional decimal parameter; nil means absent.
func ParseQueryDecimalPtr(r *http.Request, key string) (*decimal.Decimal, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, queryError(key, "must be a decimal number")
	}
	return &value, nil
}

// ParseQueryStringPtr reads an optional string parameter; nil means absent.
func ParseQueryStringPtr(r *http.Request, key string) *string {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil
	}
	return &raw
}

func queryError(key, message string) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
		WithDetails([]types.FieldError{{Field: key, Message: message}})
}
