package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/smarthydra/hydrasvc/internal/database"
	"github.com/smarthydra/hydrasvc/internal/log"
	"github.com/smarthydra/hydrasvc/internal/settings"
)

var logInitOnce sync.Once

// newTestServer builds a controller over a private in-memory sqlite database
// and returns it along with its router.
func newTestServer(t *testing.T) (*Controller, *database.Client, http.Handler) {
	t.Helper()

	logInitOnce.Do(func() {
		if err := log.Init("error", false); err != nil {
			t.Fatalf("log.Init: %v", err)
		}
	})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)

	dbc := database.NewClientWithDB(db, zap.NewNop().Sugar())
	if err := dbc.Migrate(); err != nil {
		t.Fatalf("migrating schema: %v", err)
	}

	s := &settings.Settings{
		Security: settings.SecuritySettings{
			SecretKey:                "test-secret",
			Algorithm:                "HS256",
			AccessTokenExpireMinutes: 30,
		},
		HTTP: settings.HTTPSettings{
			ListenAddr: "127.0.0.1",
			Port:       8080,
		},
	}

	var wg sync.WaitGroup
	ctrl, err := NewController(context.Background(), &wg, s, dbc, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}

	return ctrl, dbc, ctrl.Server.Handler
}

// postForm issues a form-encoded POST through the router.
func postForm(handler http.Handler, path, token string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func doRequest(handler http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), target); err != nil {
		t.Fatalf("decoding response %q: %v", w.Body.String(), err)
	}
}

// registerUser registers a user through the API and returns their token.
func registerUser(t *testing.T, handler http.Handler, username, password string) string {
	t.Helper()
	w := postForm(handler, "/auth/register", "", url.Values{
		"username": {username},
		"password": {password},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("register %s: status %d, body %s", username, w.Code, w.Body.String())
	}
	var resp TokenResponse
	decodeJSON(t, w, &resp)
	if resp.AccessToken == "" {
		t.Fatal("register returned an empty token")
	}
	return resp.AccessToken
}
