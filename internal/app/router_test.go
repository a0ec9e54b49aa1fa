package app

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	contractHandler "bizcare-service/internal/handlers/contract"
	customerHandler "bizcare-service/internal/handlers/customer"
	wsHandler "bizcare-service/internal/handlers/websocket"
	"bizcare-service/internal/middleware"
	"bizcare-service/internal/pkg/jwt"
	"bizcare-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type rejectAll struct{}

func (rejectAll) VerifyAccessToken(string) (*jwt.Claims, error) {
	return nil, errors.New("invalid token")
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupRouter(r, zap.NewNop(), &Handlers{
		ContractHandler: contractHandler.NewContractHandler(nil),
		CustomerHandler: customerHandler.NewCustomerHandler(nil),
		WSHandler:       wsHandler.NewWebSocketHandler(websocket.NewHub(zap.NewNop()), nil, zap.NewNop()),
		AuthMiddleware:  middleware.NewAuthMiddleware(rejectAll{}, nil, zap.NewNop()),
	})
	return r
}

func TestSetupRouter_Routes(t *testing.T) {
	r := newTestRouter()

	registered := map[string]bool{}
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	for _, want := range []string{
		"GET /api/v1/health",
		"POST /api/v1/contracts",
		"GET /api/v1/contracts/search",
		"POST /api/v1/contracts/search",
		"GET /api/v1/contracts/quote",
		"POST /api/v1/contracts/sign",
		"GET /api/v1/manager/contracts",
		"POST /api/v1/manager/contracts/quote",
		"PUT /api/v1/manager/contracts/:id/status",
		"POST /api/v1/manager/quotes",
		"GET /api/v1/manager/customers",
		"GET /api/v1/manager/customers/:id",
		"GET /api/v1/manager/customers/:id/contracts",
		"GET /api/v1/manager/customers/:id/activities",
		"PUT /api/v1/manager/customers/:id",
		"GET /api/v1/admin/ws/stats",
		"GET /ws/contracts",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}
}

func TestSetupRouter_Health(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetupRouter_ManagerRoutesNeedToken(t *testing.T) {
	r := newTestRouter()

	for _, path := range []string{
		"/api/v1/manager/customers/00000000-0000-0000-0000-000000000001/contracts",
		"/api/v1/manager/contracts?status=all",
		"/api/v1/manager/customers",
		"/ws/contracts",
		"/api/v1/admin/ws/stats",
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer forged")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}
