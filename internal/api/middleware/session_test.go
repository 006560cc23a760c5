package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sessionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SessionMiddleware("cart_session", false, zap.NewNop()))
	r.GET("/", func(c *gin.Context) {
		id, _ := GetSessionID(c)
		c.String(http.StatusOK, id)
	})
	return r
}

func TestSessionMiddleware_IssuesSession(t *testing.T) {
	w := httptest.NewRecorder()
	sessionRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	_, err := uuid.Parse(w.Body.String())
	require.NoError(t, err)
	assert.Equal(t, w.Body.String(), w.Header().Get(SessionHeader))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "cart_session", cookies[0].Name)
	assert.Equal(t, w.Body.String(), cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestSessionMiddleware_ReusesCookie(t *testing.T) {
	id := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "cart_session", Value: id})

	w := httptest.NewRecorder()
	sessionRouter().ServeHTTP(w, req)
	assert.Equal(t, id, w.Body.String())
}

func TestSessionMiddleware_HeaderWins(t *testing.T) {
	headerID := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(SessionHeader, headerID)
	req.AddCookie(&http.Cookie{Name: "cart_session", Value: uuid.New().String()})

	w := httptest.NewRecorder()
	sessionRouter().ServeHTTP(w, req)
	assert.Equal(t, headerID, w.Body.String())
}

func TestSessionMiddleware_ReplacesInvalidCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "cart_session", Value: "../../etc"})

	w := httptest.NewRecorder()
	sessionRouter().ServeHTTP(w, req)
	assert.NotEqual(t, "../../etc", w.Body.String())
	_, err := uuid.Parse(w.Body.String())
	assert.NoError(t, err)
}
