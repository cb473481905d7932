package transport

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBareRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return InitRoutes(
		NewNotificationHandler(nil),
		NewWebhookHandler(nil),
		NewTicketHandler(nil),
		NewAuditHandler(nil),
	)
}

func TestPreflightAnswersEmpty200(t *testing.T) {
	router := newBareRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/notifications", nil)
	req.Header.Set("Origin", "https://painel.example.com")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealthEndpoint(t *testing.T) {
	router := newBareRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}
