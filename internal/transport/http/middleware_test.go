package http

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fan-Karwanta/motour-server-101/internal/domain"
	"github.com/Fan-Karwanta/motour-server-101/internal/service"
	"github.com/Fan-Karwanta/motour-server-101/internal/util"
)

type memoryAdmins struct {
	mu     sync.Mutex
	admins map[uuid.UUID]*domain.AdminUser
}

func (m *memoryAdmins) Create(ctx context.Context, username, passwordHash string, role domain.AdminRole) (*domain.AdminUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := &domain.AdminUser{ID: uuid.New(), Username: username, PasswordHash: passwordHash, Role: role}
	m.admins[a.ID] = a
	return a, nil
}

func (m *memoryAdmins) FindByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.admins {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memoryAdmins) FindByID(ctx context.Context, id uuid.UUID) (*domain.AdminUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.admins[id]; ok {
		return a, nil
	}
	return nil, sql.ErrNoRows
}

const testAdminSecret = "admin-secret"

func newAdminAuth(t *testing.T) (*service.AdminAuthService, map[domain.AdminRole]string) {
	t.Helper()
	repo := &memoryAdmins{admins: map[uuid.UUID]*domain.AdminUser{}}
	svc := service.NewAdminAuthService(repo, util.NewJWTManager(testAdminSecret, time.Hour, util.TokenKindAdmin))
	ctx := context.Background()

	tokens := map[domain.AdminRole]string{}
	for _, role := range []domain.AdminRole{domain.AdminRoleAdmin, domain.AdminRoleSuperAdmin} {
		username := "ops-" + string(role)
		_, _, err := svc.Seed(ctx, username, "longpassword1", string(role))
		require.NoError(t, err)
		result, err := svc.Login(ctx, service.AdminLoginInput{Username: username, Password: "longpassword1"})
		require.NoError(t, err)
		tokens[role] = result.Token
	}
	return svc, tokens
}

func newAdminEcho(auth *service.AdminAuthService) *echo.Echo {
	e := echo.New()
	ok := func(c echo.Context) error {
		admin, _ := CurrentAdmin(c)
		return c.String(http.StatusOK, admin.Username)
	}
	e.GET("/admin/any", ok, RequireAdmin(auth), RequireRole(domain.AdminRoleAdmin, domain.AdminRoleSuperAdmin))
	e.GET("/admin/super", ok, RequireAdmin(auth), RequireRole(domain.AdminRoleSuperAdmin))
	return e
}

func serve(e *echo.Echo, path string, mutate func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if mutate != nil {
		mutate(req)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRequireAdminReadsCookieThenBearer(t *testing.T) {
	auth, tokens := newAdminAuth(t)
	e := newAdminEcho(auth)

	rec := serve(e, "/admin/any", func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: adminTokenCookie, Value: tokens[domain.AdminRoleAdmin]})
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ops-admin", rec.Body.String())

	rec = serve(e, "/admin/any", func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer "+tokens[domain.AdminRoleSuperAdmin])
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ops-superadmin", rec.Body.String())

	// The cookie wins over the header.
	rec = serve(e, "/admin/any", func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: adminTokenCookie, Value: tokens[domain.AdminRoleAdmin]})
		r.Header.Set(echo.HeaderAuthorization, "Bearer "+tokens[domain.AdminRoleSuperAdmin])
	})
	assert.Equal(t, "ops-admin", rec.Body.String())
}

func TestRequireAdminRejectsMissingAndForeignTokens(t *testing.T) {
	auth, _ := newAdminAuth(t)
	e := newAdminEcho(auth)

	assert.Equal(t, http.StatusUnauthorized, serve(e, "/admin/any", nil).Code)

	userToken, _, err := util.NewJWTManager(testAdminSecret, time.Hour, util.TokenKindUser).Generate(util.Subject{ID: uuid.New()})
	require.NoError(t, err)
	rec := serve(e, "/admin/any", func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer "+userToken)
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(e, "/admin/any", func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Basic abc")
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRoleSuperAdminOnly(t *testing.T) {
	auth, tokens := newAdminAuth(t)
	e := newAdminEcho(auth)

	rec := serve(e, "/admin/super", func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer "+tokens[domain.AdminRoleAdmin])
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(e, "/admin/super", func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer "+tokens[domain.AdminRoleSuperAdmin])
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}
