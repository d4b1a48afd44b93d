package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/samotors/vehicle-backend/api/responses"
	pkgAuth "github.com/samotors/vehicle-backend/pkg/auth"
	"github.com/samotors/vehicle-backend/pkg/config"
	"github.com/samotors/vehicle-backend/pkg/enums"
	pkgerrors "github.com/samotors/vehicle-backend/pkg/errors"
	"github.com/samotors/vehicle-backend/pkg/logger"
)

// UserVerifier confirms that a token subject still maps to a live account.
// found is false when the user does not exist or has been deactivated.
type UserVerifier interface {
	ActiveLevel(ctx context.Context, id uuid.UUID) (level enums.UserLevel, found bool, err error)
}

// Auth validates a bearer token and seeds the request context with the
// authenticated identity. Requests without valid credentials are rejected.
func Auth(cfg config.JWTConfig, verifier UserVerifier, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				if pkgAuth.IsExpired(err) {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "token expired"))
					return
				}
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			level, found, err := verifier.ActiveLevel(r.Context(), claims.UserID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "verify user"))
				return
			}
			if !found {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid or inactive user"))
				return
			}

			ctx := WithUser(r.Context(), claims.UserID, level)
			if logg != nil {
				ctx = logg.WithUserID(ctx, claims.UserID.String())
				ctx = logg.WithUserLevel(ctx, string(level))
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth seeds the context with the identity when a valid bearer token
// is present, and treats the request as anonymous otherwise. It never rejects.
func OptionalAuth(cfg config.JWTConfig, verifier UserVerifier, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			level, found, err := verifier.ActiveLevel(r.Context(), claims.UserID)
			if err != nil || !found {
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithUser(r.Context(), claims.UserID, level)
			if logg != nil {
				ctx = logg.WithUserID(ctx, claims.UserID.String())
				ctx = logg.WithUserLevel(ctx, string(level))
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}
