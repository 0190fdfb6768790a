package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	store := NewMemoryStore()

	if _, ok := store.Token(); ok {
		t.Fatal("fresh store must be empty")
	}

	if err := store.Set("abc"); err != nil {
		t.Fatalf("set: %v", err)
	}
	token, ok := store.Token()
	if !ok || token != "abc" {
		t.Fatalf("expected abc, got %q (%v)", token, ok)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := store.Token(); ok {
		t.Fatal("expected store to be empty after clear")
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	store := NewFileStore(path)

	if _, ok := store.Token(); ok {
		t.Fatal("missing file must read as no token")
	}

	if err := store.Set("file-token"); err != nil {
		t.Fatalf("set: %v", err)
	}

	// A second store over the same path sees the token, like a new CLI
	// invocation would.
	again := NewFileStore(path)
	token, ok := again.Token()
	if !ok || token != "file-token" {
		t.Fatalf("expected file-token, got %q (%v)", token, ok)
	}

	if err := again.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected token file removed, stat err: %v", err)
	}

	// Clearing an already-cleared store is not an error.
	if err := again.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestInspectReadsClaims(t *testing.T) {
	expires := time.Now().Add(time.Hour).Truncate(time.Second)
	raw := signedToken(t, "admin", expires)

	claims, err := Inspect(raw)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if claims.Username != "admin" {
		t.Fatalf("expected username admin, got %q", claims.Username)
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.Time.Equal(expires) {
		t.Fatalf("unexpected expiry %v", claims.ExpiresAt)
	}
	if claims.Expired(time.Now()) {
		t.Fatal("token should not be expired yet")
	}
	if !claims.Expired(expires.Add(time.Minute)) {
		t.Fatal("token should read as expired after its expiry")
	}
}

func TestInspectRejectsGarbage(t *testing.T) {
	if _, err := Inspect("not-a-jwt"); err == nil {
		t.Fatal("expected an error for a malformed token")
	}
}

func signedToken(t *testing.T, username string, expires time.Time) string {
	t.Helper()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
			Issuer:    "goblog",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	raw, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return raw
}
