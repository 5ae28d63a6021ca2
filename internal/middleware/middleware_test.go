package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"contractor-erp/internal/domain"
	"contractor-erp/internal/middleware"
	"contractor-erp/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func signToken(t *testing.T, claims middleware.Claims, key string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return token
}

func TestAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/me", middleware.Auth(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString(middleware.ContextUserID),
			"role":    c.GetString(middleware.ContextRole),
			"ctx_uid": contextutil.GetUserID(c.Request.Context()),
		})
	})

	valid := signToken(t, middleware.Claims{
		UserID: "u-1",
		Role:   "payroll_officer",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, secret)
	expired := signToken(t, middleware.Claims{
		UserID: "u-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}, secret)
	noUser := signToken(t, middleware.Claims{Role: "admin"}, secret)
	wrongKey := signToken(t, middleware.Claims{UserID: "u-1"}, "other")

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"valid", "Bearer " + valid, http.StatusOK, `"ctx_uid":"u-1"`},
		{"missing", "", http.StatusUnauthorized, "token not found"},
		{"expired", "Bearer " + expired, http.StatusUnauthorized, "token expired"},
		{"no user id", "Bearer " + noUser, http.StatusUnauthorized, "user id not found"},
		{"wrong key", "Bearer " + wrongKey, http.StatusUnauthorized, "invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

type fakeEnforcer struct {
	allowed bool
	err     error
	got     domain.EnforceRequest
}

func (f *fakeEnforcer) Enforce(req domain.EnforceRequest) (bool, error) {
	f.got = req
	return f.allowed, f.err
}

func TestRBACAuthorize(t *testing.T) {
	gin.SetMode(gin.TestMode)

	run := func(enf *fakeEnforcer, withUser bool) *httptest.ResponseRecorder {
		r := gin.New()
		r.GET("/payrolls",
			func(c *gin.Context) {
				if withUser {
					c.Set(middleware.ContextUserID, "u-1")
					c.Set(middleware.ContextRole, "accountant")
				}
			},
			middleware.RBACAuthorize(enf, "payroll", "read"),
			func(c *gin.Context) { c.Status(http.StatusNoContent) },
		)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payrolls", nil))
		return w
	}

	enf := &fakeEnforcer{allowed: true}
	assert.Equal(t, http.StatusNoContent, run(enf, true).Code)
	assert.Equal(t, domain.EnforceRequest{UserID: "u-1", Role: "accountant", Resource: "payroll", Action: "read"}, enf.got)

	w := run(&fakeEnforcer{allowed: false}, true)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "payroll:read")

	assert.Equal(t, http.StatusInternalServerError, run(&fakeEnforcer{err: errors.New("db down")}, true).Code)
	assert.Equal(t, http.StatusUnauthorized, run(&fakeEnforcer{allowed: true}, false).Code)
}

func TestIdempotency(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb, mock := redismock.NewClientMock()

	calls := 0
	r := gin.New()
	r.POST("/payrolls",
		func(c *gin.Context) { c.Set(middleware.ContextUserID, "u-1") },
		middleware.Idempotency(rdb),
		func(c *gin.Context) {
			calls++
			c.JSON(http.StatusCreated, gin.H{"ok": true})
		},
	)

	cacheKey := "idemp:/payrolls:u-1:key-1"
	lockKey := cacheKey + ":lock"
	// body is base64 of {"ok":true}
	stored := `{"status":201,"content_type":"application/json; charset=utf-8","body":"eyJvayI6dHJ1ZX0="}`

	t.Run("first request stores the response", func(t *testing.T) {
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
		mock.ExpectSet(cacheKey, []byte(stored), 24*time.Hour).SetVal("OK")
		mock.ExpectDel(lockKey).SetVal(1)

		req := httptest.NewRequest(http.MethodPost, "/payrolls", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("replay keeps the original status", func(t *testing.T) {
		mock.ExpectGet(cacheKey).SetVal(stored)

		req := httptest.NewRequest(http.MethodPost, "/payrolls", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "true", w.Header().Get("Idempotent-Replayed"))
		assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"ok":true}`, w.Body.String())
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("concurrent duplicate is rejected", func(t *testing.T) {
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(false)

		req := httptest.NewRequest(http.MethodPost, "/payrolls", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no key passes through", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/payrolls", nil))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 2, calls)
	})

	t.Run("unreadable entry runs the handler again", func(t *testing.T) {
		mock.ExpectGet(cacheKey).SetVal(`{"ok":true}`)
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
		mock.ExpectSet(cacheKey, []byte(stored), 24*time.Hour).SetVal("OK")
		mock.ExpectDel(lockKey).SetVal(1)

		req := httptest.NewRequest(http.MethodPost, "/payrolls", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Empty(t, w.Header().Get("Idempotent-Replayed"))
		assert.Equal(t, 3, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
