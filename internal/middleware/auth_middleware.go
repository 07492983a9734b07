package middleware

import (
	"context"
	"crypto/rsa"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Deepanshumelkani77/Grievance-system/internal/models"
	"github.com/Deepanshumelkani77/Grievance-system/internal/utils"
)

type contextKey string

const (
	ContextKeyUserID   = contextKey("userID")
	ContextKeyUserRole = contextKey("userRole")
)

// AuthMiddleware – for protected endpoints. The JWT is read from
// Authorization: Bearer ... . If the token is missing or invalid,
// returns 401.
func AuthMiddleware(pub *rsa.PublicKey) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, err := extractAccessToken(r)
			if err != nil {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, err.Error(), nil,
				)
				return
			}

			tok, vErr := ValidateToken(tokenStr, pub)
			if vErr != nil || !tok.Valid {
				if errors.Is(vErr, jwt.ErrTokenExpired) {
					utils.RespondErrorWithCode(
						w, http.StatusUnauthorized, utils.ErrCodeTokenExpired, "Token expired", nil, vErr,
					)
					return
				}
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid token", nil, vErr,
				)
				return
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid claims", nil,
				)
				return
			}
			sub, ok := claims["sub"].(string)
			if !ok {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Missing subject", nil,
				)
				return
			}
			roleStr, ok := claims["role"].(string)
			if !ok {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Missing role claim", nil,
				)
				return
			}
			role, rErr := models.ParseRole(roleStr)
			if rErr != nil {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Unknown role", nil, rErr,
				)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUserID, sub)
			ctx = context.WithValue(ctx, ContextKeyUserRole, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles gates an already-authenticated route to an allowed role
// set.
func RequireRoles(allowed ...models.RoleType) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := r.Context().Value(ContextKeyUserRole).(models.RoleType)
			if !ok {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "No role in context", nil,
				)
				return
			}
			for _, a := range allowed {
				if role == a {
					next.ServeHTTP(w, r)
					return
				}
			}
			utils.RespondErrorWithCode(
				w, http.StatusForbidden, utils.ErrCodeForbidden,
				"You do not have permission to access this resource", nil,
			)
		})
	}
}

// Principal is the acting identity for a request, as established by
// AuthMiddleware.
type Principal struct {
	ID   uuid.UUID
	Role models.RoleType
}

// PrincipalFromContext pulls the authenticated principal out of the
// request context. Returns false when the middleware did not run.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	sub, ok := ctx.Value(ContextKeyUserID).(string)
	if !ok {
		return Principal{}, false
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return Principal{}, false
	}
	role, ok := ctx.Value(ContextKeyUserRole).(models.RoleType)
	if !ok {
		return Principal{}, false
	}
	return Principal{ID: id, Role: role}, true
}

// helper: read the token from the Authorization header
func extractAccessToken(r *http.Request) (string, error) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", errors.New("missing Authorization header")
	}
	return strings.TrimPrefix(h, "Bearer "), nil
}
