package middlewares

import (
	"context"
	"net/http"
	"strings"

	"zahara-service/internal/pkg/constvars"
	"zahara-service/internal/pkg/exceptions"
	"zahara-service/internal/pkg/utils"
)

// Authentication extracts the requester identity from the bearer token
// and stores the verified email in the request context. Handlers behind
// this middleware can rely on the email being present.
func (m *Middlewares) Authentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(constvars.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		email, err := utils.ParseJWTEmail(tokenString, m.InternalConfig.JWT.Secret)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_REQUESTER_EMAIL_KEY, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
