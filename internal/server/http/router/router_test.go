package router

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/minseo-cho/gomall/internal/config"
	"github.com/minseo-cho/gomall/internal/server/http/handlers"
	testhelpers "github.com/minseo-cho/gomall/internal/test"
)

func newEngine(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return Setup(&testhelpers.ShopFacadeStub{}, cfg, logger)
}

func TestSetupRoutes(t *testing.T) {
	engine := newEngine(t, &config.Config{})

	body, _ := json.Marshal(map[string]string{"login": "user", "email": "user@example.com", "password": "pass"})
	req := httptest.NewRequest(http.MethodPost, "/api/user/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for register, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/products", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for public catalog, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for orders, got %d", resp.Code)
	}
}

func TestSetupRequiresAuth(t *testing.T) {
	engine := newEngine(t, &config.Config{})

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/cart"},
		{http.MethodPost, "/api/orders"},
		{http.MethodPost, "/api/payments/uid-1/check"},
		{http.MethodPost, "/api/admin/products/status"},
	} {
		req := httptest.NewRequest(route.method, route.path, nil)
		resp := httptest.NewRecorder()
		engine.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401 without token, got %d", route.method, route.path, resp.Code)
		}
	}
}

func TestSetupWebhookGuard(t *testing.T) {
	engine := newEngine(t, &config.Config{WebhookTrustedIPs: []string{"52.78.100.19"}})

	body := []byte(`{"merchant_uid":"uid-1","status":"paid"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "10.0.0.9:1234"
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 from untrusted source, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/payments/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "52.78.100.19:443"
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 from trusted source, got %d", resp.Code)
	}
}

var _ handlers.ShopFacade = (*testhelpers.ShopFacadeStub)(nil)
