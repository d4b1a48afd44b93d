package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/samotors/vehicle-backend/api/middleware"
	"github.com/samotors/vehicle-backend/api/responses"
	"github.com/samotors/vehicle-backend/api/validators"
	"github.com/samotors/vehicle-backend/internal/users"
	"github.com/samotors/vehicle-backend/pkg/db/models"
	"github.com/samotors/vehicle-backend/pkg/enums"
	pkgerrors "github.com/samotors/vehicle-backend/pkg/errors"
	"github.com/samotors/vehicle-backend/pkg/logger"
	"github.com/samotors/vehicle-backend/pkg/pagination"
)

// UserStore is the persistence surface the user controllers depend on.
type UserStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, fields users.UpdateUserFields) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, params pagination.Params) ([]models.User, int64, error)
}

// UsersMe returns the caller's own profile.
func UsersMe(store UserStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if userID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		user, err := store.FindByID(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, notFoundOr(err, "user not found"))
			return
		}

		responses.WriteSuccess(w, users.FromModel(user))
	}
}

type updateProfileRequest struct {
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,min=2,max=50"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,min=2,max=50"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,e164"`
}

// UsersUpdateMe applies profile changes for the caller. Level and active
// status are admin-only and not accepted here.
func UsersUpdateMe(store UserStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if userID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		var payload updateProfileRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := store.Update(r.Context(), userID, users.UpdateUserFields{
			Email:     payload.Email,
			FirstName: payload.FirstName,
			LastName:  payload.LastName,
			Phone:     payload.Phone,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, notFoundOr(err, "user not found"))
			return
		}

		responses.WriteSuccess(w, users.FromModel(user))
	}
}

// UsersList returns a page of accounts for administrators.
func UsersList(store UserStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := paginationFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, total, err := store.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteList(w, users.FromModels(list), pagination.NewMeta(params, total))
	}
}

// UsersGet returns a single account by id for administrators.
func UsersGet(store UserStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := store.FindByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, notFoundOr(err, "user not found"))
			return
		}

		responses.WriteSuccess(w, users.FromModel(user))
	}
}

type adminUpdateUserRequest struct {
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,min=2,max=50"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,min=2,max=50"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,e164"`
	UserLevel *string `json:"user_level,omitempty" validate:"omitempty,oneof=user admin moderator"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

// UsersUpdate applies account changes, including level and active status.
func UsersUpdate(store UserStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload adminUpdateUserRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		fields := users.UpdateUserFields{
			Email:     payload.Email,
			FirstName: payload.FirstName,
			LastName:  payload.LastName,
			Phone:     payload.Phone,
			IsActive:  payload.IsActive,
		}
		if payload.UserLevel != nil {
			level, err := enums.ParseUserLevel(*payload.UserLevel)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user level"))
				return
			}
			fields.UserLevel = &level
		}

		user, err := store.Update(r.Context(), id, fields)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, notFoundOr(err, "user not found"))
			return
		}

		responses.WriteSuccess(w, users.FromModel(user))
	}
}

// UsersDelete removes an account. Refresh tokens cascade with the row.
func UsersDelete(store UserStore, logg *logger.Logger) http.HandlerFunc {
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
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "user not found"))
			return
		}

		responses.WriteMessage(w, "user deleted")
	}
}

func pathUUID(r *http.Request, key string) (uuid.UUID, error) {
	raw := chi.URLParam(r, key)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+key)
	}
	return id, nil
}

func paginationFromQuery(r *http.Request) (pagination.Params, error) {
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return pagination.Params{}, err
	}
	page, err := validators.ParseQueryInt(r, "page", 1, 1, 1000000)
	if err != nil {
		return pagination.Params{}, err
	}
	// Clients may address pages by row offset instead of page number.
	if offset, err := validators.ParseQueryIntPtr(r, "offset"); err != nil {
		return pagination.Params{}, err
	} else if offset != nil {
		if *offset < 0 {
			return pagination.Params{}, pkgerrors.New(pkgerrors.CodeValidation, "offset must not be negative")
		}
		page = *offset/limit + 1
	}
	return pagination.Params{Page: page, Limit: limit}, nil
}

func notFoundOr(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, message)
	}
	return err
}
