package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/guraspy/personalized-workout-api/services"
	"github.com/guraspy/personalized-workout-api/testutil"
	"github.com/guraspy/personalized-workout-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthMiddleware(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "alice")
	tokens := utils.NewTokenIssuer("secret", time.Minute, time.Hour)
	auth := services.NewAuthService(db, tokens, services.NewGormBlacklist(db), nil)

	r := gin.New()
	r.GET("/me", AuthMiddleware(auth), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.MustGet("userID"), "username": c.GetString("username")})
	})

	access, _, err := tokens.GenerateJWT(user.ID, utils.AccessToken)
	require.NoError(t, err)
	refresh, _, err := tokens.GenerateJWT(user.ID, utils.RefreshToken)
	require.NoError(t, err)
	ghost, _, err := tokens.GenerateJWT(999, utils.AccessToken)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Token " + access, http.StatusUnauthorized},
		{"refresh token", "Bearer " + refresh, http.StatusUnauthorized},
		{"deleted user", "Bearer " + ghost, http.StatusUnauthorized},
		{"garbage", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"valid", "Bearer " + access, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.status == http.StatusOK {
				assert.JSONEq(t, `{"id":1,"username":"alice"}`, w.Body.String())
			}
		})
	}
}
