package rbac_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"contractor-erp/internal/domain"
	"contractor-erp/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubService struct{}

func (stubService) Reload(ctx context.Context) error { return nil }

func (stubService) Enforce(req domain.EnforceRequest) (bool, error) {
	return req.Role == "admin", nil
}

func (stubService) Permissions(role string) []domain.PermissionResponse {
	if role == "hr" {
		return []domain.PermissionResponse{{Resource: "attendance", Action: "create"}}
	}
	return nil
}

func newRBACRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := rbac.NewHandler(stubService{})
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("role", "hr") })
	r.POST("/rbac/enforce", h.Enforce)
	r.GET("/rbac/permissions/me", h.MyPermissions)
	return r
}

func TestHandler_Enforce(t *testing.T) {
	r := newRBACRouter()

	w := httptest.NewRecorder()
	body := `{"user_id":"u-1","role":"admin","resource":"payroll","action":"read"}`
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/rbac/enforce", strings.NewReader(body)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"allowed":true`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/rbac/enforce", strings.NewReader(`{"role":"admin"}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_MyPermissions(t *testing.T) {
	r := newRBACRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rbac/permissions/me", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"resource":"attendance"`)
}
