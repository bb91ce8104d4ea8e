package web_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoMembership/GoMembership/internal/auth"
	"github.com/GoMembership/GoMembership/internal/config"
	"github.com/GoMembership/GoMembership/internal/db/models"
	"github.com/GoMembership/GoMembership/internal/web"
	"github.com/GoMembership/GoMembership/internal/web/session"
)

func newService(t *testing.T) (*web.Service, string) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...))

	orgID := uint(1)
	require.NoError(t, db.Create(&models.Organization{ID: orgID, ShortName: "DEMO", LongName: "Demo"}).Error)
	require.NoError(t, db.Create(&models.Category{ID: 1, OrgID: &orgID, Type: models.CategoryTypeRole, Name: "Common", Sequence: 1}).Error)
	require.NoError(t, db.Create(&models.Role{ID: 1, CategoryID: 1, Name: "Webmaster", Webmaster: true, AssignRoles: true, Valid: true, Visible: true}).Error)

	users := auth.NewLocalProvider(db)
	u, err := users.CreateUser("admin", "admin@example.com", "secret", "Ada", "Admin")
	require.NoError(t, err)
	require.NoError(t, users.AddMember(u.ID, 1, false))

	// nil storage keeps the sessions in memory
	session.Init(nil, time.Minute)

	sessionID, err := session.GenerateSessionID()
	require.NoError(t, err)
	require.NoError(t, (&session.Data{User: *u, OrgID: orgID}).Write(sessionID, time.Minute))

	cfg := &config.Config{
		Title:        "Demo",
		Organization: "DEMO",
		Webserver:    config.Webserver{ShutDownTime: 1},
	}

	return web.New(cfg, db, session.NewReplay(session.Store.Storage, time.Minute)), sessionID
}

func get(t *testing.T, app *fiber.App, target, sessionID string) (*http.Response, string) {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodGet, target, nil)
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: sessionID})
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()

	return resp, string(body)
}

func TestNew_PublicRoutes(t *testing.T) {
	s, _ := newService(t)

	resp, body := get(t, s.App, web.CheckAlivePath, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", body)

	resp, body = get(t, s.App, web.MetricsPath, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "# TYPE")

	resp, body = get(t, s.App, "/static/css/app.css", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, ".roles-footer")

	resp, _ = get(t, s.App, "/static/js/roles.js", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestNew_LoginRequired(t *testing.T) {
	s, _ := newService(t)

	for _, target := range []string{"/", "/roles", "/roles/edit?rol_id=1"} {
		resp, _ := get(t, s.App, target, "")
		assert.Equal(t, fiber.StatusFound, resp.StatusCode, target)
		assert.Equal(t, "/login", resp.Header.Get(fiber.HeaderLocation), target)
	}

	resp, body := get(t, s.App, "/login", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `name="login"`)
	assert.Contains(t, body, "<title>Login - Demo</title>")
}

func TestNew_RolePages(t *testing.T) {
	s, sessionID := newService(t)

	resp, _ := get(t, s.App, "/", sessionID)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/roles", resp.Header.Get(fiber.HeaderLocation))

	resp, body := get(t, s.App, "/roles", sessionID)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	assert.Contains(t, body, `<table id="roles_table"`)
	assert.Contains(t, body, "Ada Admin")
	assert.Contains(t, body, `href="/roles" class="active"`)

	resp, body = get(t, s.App, "/roles/edit?rol_id=1", sessionID)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	assert.Contains(t, body, `action="/roles/save?rol_id=1&amp;mode=2"`)
	assert.Contains(t, body, `id="gb_dependencies"`)
	assert.Contains(t, body, `value="1" checked`, "assign roles is checked")
	assert.Contains(t, body, "disabled", "the webmaster name is read only")

	resp, body = get(t, s.App, "/roles/edit?rol_id=42", sessionID)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "does not exist")
}

func TestCheckAlive_Unavailable(t *testing.T) {
	s := &web.Service{}

	app := fiber.New()
	app.Get(web.CheckAlivePath, s.CheckAlive)

	resp, _ := get(t, app, web.CheckAlivePath, "")
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
