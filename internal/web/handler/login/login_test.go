package login

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
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
	websess "github.com/GoMembership/GoMembership/internal/web/session"
)

// noOpViews is a minimal Fiber Views engine used for tests.
// It writes the "error" field from the provided fiber.Map (if any)
// so tests can assert error messages rendered by handlers.
type noOpViews struct{}

func (noOpViews) Load() error { return nil }

func (noOpViews) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	if m, ok := data.(fiber.Map); ok {
		if v, exists := m["error"]; exists && v != nil {
			_, _ = io.WriteString(w, v.(string))
			return nil
		}
	}
	// write template name to have some content
	_, _ = io.WriteString(w, name)

	return nil
}

// testStorage is a minimal in-memory implementation of fiber.Storage for tests.
type testStorage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ fiber.Storage = (*testStorage)(nil)

func (s *testStorage) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.data[key], nil
}

func (s *testStorage) Set(key string, val []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = append([]byte(nil), val...)

	return nil
}

func (s *testStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)

	return nil
}

func (s *testStorage) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string][]byte)

	return nil
}

func (s *testStorage) Close() error { return nil }

type testEnv struct {
	app     *fiber.App
	cfg     *config.Config
	storage *testStorage
}

func newTestEnv(t *testing.T, devMode bool) testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open sqlite in-memory db")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Organization{}))
	require.NoError(t, db.Create(&models.Organization{ShortName: "DEMO", LongName: "Demo"}).Error)

	lp := auth.NewLocalProvider(db)
	_, err = lp.CreateUser("bob", "bob@example.com", "s3cr3t", "Bob", "Doe")
	require.NoError(t, err)

	disabled, err := lp.CreateUser("carol", "carol@example.com", "pass", "Carol", "Doe")
	require.NoError(t, err)
	require.NoError(t, db.Model(disabled).Update("active", false).Error)

	cfg := &config.Config{
		DevMode:      devMode,
		Organization: "DEMO",
		Webserver: config.Webserver{
			URL:     "http://localhost",
			Port:    3000,
			Session: config.Session{ExpiryTime: time.Minute},
		},
	}

	storage := &testStorage{data: make(map[string][]byte)}
	websess.Init(storage, time.Minute)

	app := fiber.New(fiber.Config{Views: noOpViews{}})

	var s Service
	require.NoError(t, s.Init(app, cfg, db))

	return testEnv{app: app, cfg: cfg, storage: storage}
}

func performPost(t *testing.T, app *fiber.App, form url.Values) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, Path+"/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req, -1)
	require.NoError(t, err, "app.Test failed")

	return resp
}

func TestPost_Success_SetsCookieAndRedirects(t *testing.T) {
	env := newTestEnv(t, false)

	resp := performPost(t, env.app, url.Values{"login": {"bob"}, "password": {"s3cr3t"}})
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, RedirectPath, resp.Header.Get("Location"))

	var sessionID string

	for _, c := range resp.Cookies() {
		if c.Name == websess.CookieName {
			sessionID = c.Value
			assert.True(t, c.Secure, "secure cookie expected when DevMode=false")
			assert.True(t, c.HttpOnly)
		}
	}

	require.NotEmpty(t, sessionID)

	var data websess.Data
	require.NoError(t, data.Read(sessionID))
	assert.Equal(t, "bob", data.User.Login)
	assert.Empty(t, data.User.Password, "password hash must not be kept in the session")
	assert.NotZero(t, data.OrgID)
}

func TestPost_DevModeDisablesSecure(t *testing.T) {
	env := newTestEnv(t, true)

	resp := performPost(t, env.app, url.Values{"login": {"bob"}, "password": {"s3cr3t"}})
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusFound, resp.StatusCode)

	setCookie := resp.Header.Get("Set-Cookie")
	assert.Contains(t, setCookie, websess.CookieName+"=")
	assert.NotContains(t, strings.ToLower(setCookie), "secure")
}

func TestPost_RendersError(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
		want error
	}{
		{name: "wrong password", form: url.Values{"login": {"bob"}, "password": {"nope"}}, want: ErrInvalidCredentials},
		{name: "unknown user", form: url.Values{"login": {"dave"}, "password": {"nope"}}, want: ErrInvalidCredentials},
		{name: "disabled account", form: url.Values{"login": {"carol"}, "password": {"pass"}}, want: ErrAccountDisabled},
		{name: "missing password", form: url.Values{"login": {"bob"}}, want: ErrInvalidFormData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, false)

			resp := performPost(t, env.app, tt.form)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, http.StatusOK, resp.StatusCode)

			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), tt.want.Error())
			assert.Empty(t, resp.Header.Get("Set-Cookie"))
			assert.Empty(t, env.storage.data)
		})
	}
}

func TestPost_InvalidJSON_RendersError(t *testing.T) {
	env := newTestEnv(t, false)

	req := httptest.NewRequest(http.MethodPost, Path+"/", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), ErrInvalidFormData.Error())
}

func TestGet_RendersLogin(t *testing.T) {
	env := newTestEnv(t, false)

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, Path+"/", nil), -1)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, Template, string(body))
}
