package types

import "github.com/samotors/vehicle-backend/pkg/pagination"

// SuccessEnvelope is the uniform wrapper for successful responses.
type SuccessEnvelope struct {
	Success    bool             `json:"success"`
	Message    string           `json:"message,omitempty"`
	Data       any              `json:"data,omitempty"`
	Pagination *pagination.Meta `json:"pagination,omitempty"`
}

// FieldError reports a single validation violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorEnvelope is the uniform wrapper for failed responses.
type ErrorEnvelope struct {
	Success bool         `json:"success"`
	Code    string       `json:"code,omitempty"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}
