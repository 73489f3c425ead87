package middlewares

import (
	"context"
	"net/http"
	"strings"

	"onterapi-service/internal/pkg/constvars"
	"onterapi-service/internal/pkg/exceptions"
	"onterapi-service/internal/pkg/utils"

	"github.com/golang-jwt/jwt/v4"
)

type staffClaims struct {
	TenantID string `json:"tenantId"`
	jwt.RegisteredClaims
}

// StaffAuth validates the bearer token on staff endpoints and stashes the
// performer and tenant into the request context.
func (m *Middlewares) StaffAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(constvars.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		claims := new(staffClaims)
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, valid := token.Method.(*jwt.SigningMethodHMAC); !valid {
				return nil, exceptions.BuildNewCustomError(nil, constvars.StatusUnauthorized, constvars.ErrClientNotAuthorized, constvars.ErrDevAuthSigningMethod)
			}
			return []byte(m.InternalConfig.JWT.Secret), nil
		})
		if err != nil || !token.Valid {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(err))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_PERFORMER_KEY, claims.Subject)
		ctx = context.WithValue(ctx, constvars.CONTEXT_TENANT_ID_KEY, claims.TenantID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
