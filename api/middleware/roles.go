package middleware

import (
	"net/http"

	"github.com/samotors/vehicle-backend/api/responses"
	"github.com/samotors/vehicle-backend/pkg/enums"
	pkgerrors "github.com/samotors/vehicle-backend/pkg/errors"
	"github.com/samotors/vehicle-backend/pkg/logger"
)

// RequireLevel rejects requests whose authenticated user is below the given
// level. Must run after Auth.
func RequireLevel(level enums.UserLevel, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if UserLevelFromContext(r.Context()) != level {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "insufficient privileges"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
