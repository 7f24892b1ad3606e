package middlewares

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"zahara-service/internal/app/config"
	"zahara-service/internal/pkg/constvars"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

const testJWTSecret = "test-secret"

func newTestMiddlewares() *Middlewares {
	return &Middlewares{
		Log: zap.NewNop(),
		InternalConfig: &config.InternalConfig{
			JWT: config.JWT{Secret: testJWTSecret},
		},
	}
}

func issueToken(t *testing.T, email string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	assert.NoError(t, err)
	return signed
}

func TestRequestIDMiddleware(t *testing.T) {
	m := newTestMiddlewares()

	t.Run("generates an id when the client sends none", func(t *testing.T) {
		var seenID string
		handler := m.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seenID, _ = r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		}))

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.True(t, strings.HasPrefix(seenID, constvars.REQUEST_ID_PREFIX))
		assert.Equal(t, seenID, recorder.Header().Get(constvars.HeaderXRequestID))
	})

	t.Run("keeps the client supplied id", func(t *testing.T) {
		var seenID string
		handler := m.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seenID, _ = r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		}))

		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(constvars.HeaderXRequestID, "client-id-1")
		handler.ServeHTTP(httptest.NewRecorder(), request)

		assert.Equal(t, "client-id-1", seenID)
	})
}

func TestAuthentication(t *testing.T) {
	m := newTestMiddlewares()

	t.Run("puts the verified email in context", func(t *testing.T) {
		var seenEmail string
		handler := m.Authentication(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seenEmail, _ = r.Context().Value(constvars.CONTEXT_REQUESTER_EMAIL_KEY).(string)
		}))

		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(constvars.HeaderAuthorization, "Bearer "+issueToken(t, "amina@example.com"))
		handler.ServeHTTP(httptest.NewRecorder(), request)

		assert.Equal(t, "amina@example.com", seenEmail)
	})

	t.Run("missing token is unauthorized", func(t *testing.T) {
		called := false
		handler := m.Authentication(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("garbage token is unauthorized", func(t *testing.T) {
		handler := m.Authentication(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(constvars.HeaderAuthorization, "Bearer not-a-jwt")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": "amina@example.com"})
		signed, err := token.SignedString([]byte("other-secret"))
		assert.NoError(t, err)

		handler := m.Authentication(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(constvars.HeaderAuthorization, "Bearer "+signed)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}
