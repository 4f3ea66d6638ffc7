package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Dosada05/tournament-badges/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthenticate(t *testing.T) {
	valid := signToken(t, testSecret, jwt.MapClaims{
		"user_id": 7,
		"role":    "admin",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	expired := signToken(t, testSecret, jwt.MapClaims{
		"user_id": 7,
		"role":    "admin",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	foreign := signToken(t, "other-secret", jwt.MapClaims{"user_id": 7, "role": "admin"})

	tests := map[string]struct {
		header string
		query  string
		want   int
	}{
		"valid header":  {header: "Bearer " + valid, want: http.StatusOK},
		"valid query":   {query: "?token=" + valid, want: http.StatusOK},
		"missing token": {want: http.StatusUnauthorized},
		"expired token": {header: "Bearer " + expired, want: http.StatusUnauthorized},
		"wrong secret":  {header: "Bearer " + foreign, want: http.StatusUnauthorized},
		"garbage":       {header: "Bearer abc.def.ghi", want: http.StatusUnauthorized},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var gotID int
			var gotRole models.UserRole
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var err error
				gotID, err = GetUserIDFromContext(r.Context())
				require.NoError(t, err)
				gotRole, err = GetUserRoleFromContext(r.Context())
				require.NoError(t, err)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/badges"+tc.query, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			Authenticate(testSecret)(next).ServeHTTP(rec, req)

			assert.Equal(t, tc.want, rec.Code)
			if tc.want == http.StatusOK {
				assert.Equal(t, 7, gotID)
				assert.Equal(t, models.RoleAdmin, gotRole)
			}
		})
	}
}

func TestAuthorize(t *testing.T) {
	tests := map[string]struct {
		claims jwt.MapClaims
		want   int
	}{
		"admin":        {claims: jwt.MapClaims{"user_id": 1, "role": "admin"}, want: http.StatusOK},
		"player":       {claims: jwt.MapClaims{"user_id": 2, "role": "player"}, want: http.StatusForbidden},
		"unknown role": {claims: jwt.MapClaims{"user_id": 3, "role": "root"}, want: http.StatusUnauthorized},
		"missing role": {claims: jwt.MapClaims{"user_id": 4}, want: http.StatusUnauthorized},
		"no claims":    {want: http.StatusUnauthorized},
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/badges/1/image", nil)
			if tc.claims != nil {
				req = req.WithContext(WithClaims(req.Context(), tc.claims))
			}
			rec := httptest.NewRecorder()
			Authorize(models.RoleAdmin)(next).ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestGetUserIDFromContext_NoClaims(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetUserIDFromContext(req.Context())
	assert.ErrorIs(t, err, ErrNoClaims)
}
