package fiber_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoMembership/GoMembership/internal/logger"
	adapter "github.com/GoMembership/GoMembership/internal/logger/adapter/fiber"
)

// expectedLoggerJSONFormat implements loggers default json format.
type expectedLoggerJSONFormat struct {
	IP     net.IP `json:"IP"`
	Status int    `json:"status"`
	URI    string `json:"URI"`
	Method string `json:"method"`
	Host   string `json:"host"`
	User   string `json:"user"`
}

type fakeUser struct{ login string }

func (u fakeUser) LoginName() string { return u.login }

var consoleJSON = logger.Log{
	EnableAccessLogToConsole: true,
	Console:                  logger.Console{Enabled: true},
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		config     adapter.Config
		targetPath string
		want       *expectedLoggerJSONFormat
	}{
		{
			name:       "empty no output at all",
			targetPath: "/",
		},
		{
			name:       "get / log to console json",
			targetPath: "/",
			config:     adapter.Config{Config: consoleJSON},
			want: &expectedLoggerJSONFormat{
				IP: net.ParseIP("0.0.0.0"), Status: 200, URI: "/", Method: fiber.MethodGet, Host: "example.com",
			},
		},
		{
			name:       "unknown route keeps the raw uri",
			targetPath: "/roles//edit?rol_id=3",
			config:     adapter.Config{Config: consoleJSON},
			want: &expectedLoggerJSONFormat{
				IP: net.ParseIP("0.0.0.0"), Status: 404, URI: "/roles//edit?rol_id=3", Method: fiber.MethodGet, Host: "example.com",
			},
		},
		{
			name:       "current user is logged",
			targetPath: "/whoami",
			config:     adapter.Config{Config: consoleJSON},
			want: &expectedLoggerJSONFormat{
				IP: net.ParseIP("0.0.0.0"), Status: 200, URI: "/whoami", Method: fiber.MethodGet, Host: "example.com",
				User: "webmaster",
			},
		},
		{
			name:       "static prefix is skipped",
			targetPath: "/static/css/app.css",
			config:     adapter.Config{Config: consoleJSON, SkipPrefixes: []string{"/static"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := testMiddlewareHelper(t, tt.targetPath, tt.config)

			if tt.want == nil {
				assert.Empty(t, output)
				return
			}

			require.NotEmpty(t, output)

			var decoded expectedLoggerJSONFormat
			require.NoError(t, json.Unmarshal([]byte(output), &decoded))

			assert.Equal(t, tt.want.Host, decoded.Host)
			assert.Equal(t, tt.want.Method, decoded.Method)
			assert.Equal(t, tt.want.Status, decoded.Status)
			assert.Equal(t, tt.want.IP, decoded.IP)
			assert.Equal(t, tt.want.URI, decoded.URI)
			assert.Equal(t, tt.want.User, decoded.User)
		})
	}
}

func testMiddlewareHelper(t *testing.T, targetPath string, adapterConfig adapter.Config) string {
	t.Helper()

	stdout := os.Stdout
	stderr := os.Stderr

	// capture stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	os.Stderr = w

	app := fiber.New(fiber.Config{
		CaseSensitive: true,
		Immutable:     true,
	})

	app.Use(adapter.New(adapterConfig))

	app.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.SendString("hello test")
	})

	app.Get("/whoami", func(ctx *fiber.Ctx) error {
		ctx.Locals("CurrentUser", fakeUser{login: "webmaster"})
		return ctx.SendString("webmaster")
	})

	_, err := app.Test(httptest.NewRequest(fiber.MethodGet, targetPath, nil), -1)

	outC := make(chan string)
	// copy the output in a separate goroutine so printing can't block indefinitely
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	_ = w.Close()
	os.Stdout = stdout
	os.Stderr = stderr
	out := <-outC

	require.NoError(t, err)

	return out
}
