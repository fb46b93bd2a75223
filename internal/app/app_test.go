package app

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shandysiswandi/gobudget/internal/client/api"
)

const testConfig = `
app:
  name: GoBudget
  node_id: 3
  server:
    max_goroutine: 10
    http:
      address: 127.0.0.1:0
instrument:
  enabled: false
  service_name: gobudget-test
hash:
  driver: hmac_sha256
  pepper: test-key
jwt:
  secret: MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWYwMTIzNDU2Nzg5YWJjZGVmMDEyMzQ1Njc4OWFiY2RlZg==
  issuer: gobudget
  ttl_hours: 1
mail:
  driver: log
  from: no-reply@gobudget.test
messaging:
  driver: memory
modules:
  identity:
    enabled: true
    otp_ttl_minutes: 10
    otp_cooldown_seconds: 30
    otp_max_attempts: 5
  notification:
    enabled: true
  budget:
    enabled: true
`

func startApp(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(testConfig), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)

	a := New()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	errCh := a.Serve(l)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		a.Stop(ctx)
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			t.Errorf("Serve() error = %v", err)
		}
	})

	return "http://" + l.Addr().String()
}

func TestApp(t *testing.T) {
	// Arrange
	base := startApp(t)
	client, err := api.New(api.Config{BaseURL: base + "/api"})
	if err != nil {
		t.Fatalf("api.New() error = %v", err)
	}
	ctx := context.Background()

	t.Run("health", func(t *testing.T) {
		resp, err := http.Get(base + "/health")
		if err != nil {
			t.Fatalf("GET /health error = %v", err)
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)

		if resp.StatusCode != http.StatusOK || string(body) != `{"status":"ok"}` {
			t.Fatalf("health = %d %s", resp.StatusCode, body)
		}
	})

	t.Run("request otp then cooldown", func(t *testing.T) {
		// Act
		sent, err := client.RequestOTP(ctx, "ada@example.com")
		if err != nil {
			t.Fatalf("RequestOTP() error = %v", err)
		}
		_, again := client.RequestOTP(ctx, "ada@example.com")

		// Assert
		if sent.CooldownSeconds != 30 {
			t.Fatalf("cooldown = %d", sent.CooldownSeconds)
		}
		if ra := api.RetryAfter(again); ra != 30 {
			t.Fatalf("RetryAfter = %d, err = %v", ra, again)
		}
	})

	t.Run("anonymous session", func(t *testing.T) {
		user, err := client.Me(ctx)
		if err != nil || user != nil {
			t.Fatalf("Me() = %+v, %v", user, err)
		}

		if _, err := client.Transactions(ctx, api.Filter{}); !errors.Is(err, api.ErrUnauthorized) {
			t.Fatalf("Transactions() error = %v, want unauthorized", err)
		}
		if _, err := client.CategoryList(ctx); !errors.Is(err, api.ErrUnauthorized) {
			t.Fatalf("CategoryList() error = %v, want unauthorized", err)
		}
	})
}
