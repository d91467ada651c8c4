package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finance_tracker/internal/domain"
	"finance_tracker/internal/testutil"
	"finance_tracker/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "middleware-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func TestVerifySession(t *testing.T) {
	valid, err := utils.GenerateJWT("user-1", secret, time.Hour)
	require.NoError(t, err)
	expired, err := utils.GenerateJWT("user-1", secret, -time.Minute)
	require.NoError(t, err)
	foreign, err := utils.GenerateJWT("user-1", "other", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		wantID  string
		wantErr error
	}{
		{"valid", "Bearer " + valid, "user-1", nil},
		{"empty", "", "", domain.ErrMalformedHeader},
		{"no scheme", valid, "", domain.ErrMalformedHeader},
		{"wrong scheme", "Token " + valid, "", domain.ErrMalformedHeader},
		{"lowercase scheme", "bearer " + valid, "", domain.ErrMalformedHeader},
		{"extra part", "Bearer " + valid + " extra", "", domain.ErrMalformedHeader},
		{"double space", "Bearer  " + valid, "", domain.ErrMalformedHeader},
		{"scheme only", "Bearer ", "", domain.ErrMalformedHeader},
		{"expired", "Bearer " + expired, "", domain.ErrUnauthenticated},
		{"wrong secret", "Bearer " + foreign, "", domain.ErrUnauthenticated},
		{"garbage", "Bearer abc.def.ghi", "", domain.ErrUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := VerifySession(tt.header, secret)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, id)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func newRouter() *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Logger(testutil.QuietLogger()))
	r.GET("/protected", JWTAuthMiddleware(secret, testutil.QuietLogger()), func(c *gin.Context) {
		id, _ := CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id})
	})
	return r
}

func TestJWTAuthMiddleware(t *testing.T) {
	r := newRouter()
	token, err := utils.GenerateJWT("user-7", secret, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "user-7", body["id"])
}

func TestJWTAuthMiddlewareRejects(t *testing.T) {
	r := newRouter()

	for _, header := range []string{"", "Bearer", "Bearer nope"} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.NotEmpty(t, body["message"])
	}
}

func TestRequestID(t *testing.T) {
	r := newRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestTimeoutSetsDeadline(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(50 * time.Millisecond))
	r.GET("/", func(c *gin.Context) {
		deadline, ok := c.Request.Context().Deadline()
		assert.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, 50*time.Millisecond)
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}
