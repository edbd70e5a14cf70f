package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTAuthenticator_Identify(t *testing.T) {
	a := NewJWTAuthenticator("s3cret")
	token, err := a.Sign("u1")
	require.NoError(t, err)

	t.Run("header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		id, ok, err := a.Identify(r)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "u1", id)
	})

	t.Run("query", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/ws?token="+token, nil)
		id, ok, err := a.Identify(r)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "u1", id)
	})

	t.Run("cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "jwt", Value: token})
		id, _, err := a.Identify(r)
		require.NoError(t, err)
		assert.Equal(t, "u1", id)
	})

	t.Run("missing", func(t *testing.T) {
		_, ok, err := a.Identify(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("wrong secret", func(t *testing.T) {
		forged, err := NewJWTAuthenticator("other").Sign("u1")
		require.NoError(t, err)
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+forged)
		_, ok, err := a.Identify(r)
		assert.Error(t, err)
		assert.False(t, ok)
	})

	t.Run("wrong algorithm", func(t *testing.T) {
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "u1"}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+unsigned)
		_, _, err = a.Identify(r)
		assert.Error(t, err)
	})
}

func TestRequireIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", RequireIdentity(QueryAuthenticator{}), func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me?user_id=u7", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u7", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
