package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/2azusa/Go-Blog/internal/infrastructure/session"
)

type recordingNotifier struct {
	mu        sync.Mutex
	errors    []string
	successes []string
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

type recordingNavigator struct {
	mu    sync.Mutex
	calls int
}

func (n *recordingNavigator) GotoLogin() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
}

func (n *recordingNavigator) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *session.MemoryStore, *recordingNotifier, *recordingNavigator) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := session.NewMemoryStore()
	notifier := &recordingNotifier{}
	navigator := &recordingNavigator{}

	client := New(Config{BaseURL: server.URL}, store,
		WithNotifier(notifier),
		WithNavigator(navigator),
	)
	return client, store, notifier, navigator
}

func writeEnvelope(w http.ResponseWriter, httpStatus, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func TestAttachesBearerTokenWhenPresent(t *testing.T) {
	var gotAuth, gotRequestID string
	client, store, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		writeEnvelope(w, http.StatusOK, StatusOK, "OK", nil)
	})

	if err := store.Set("tok-123"); err != nil {
		t.Fatalf("set token: %v", err)
	}

	if _, err := client.Get(context.Background(), "/articles", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if gotRequestID == "" {
		t.Fatal("expected an X-Request-ID header")
	}
}

func TestNoAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	client, _, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(w, http.StatusOK, StatusOK, "OK", nil)
	})

	if _, err := client.Get(context.Background(), "/articles", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no auth header, got %q", gotAuth)
	}
}

func TestAuthExpiredClearsTokenAndNavigates(t *testing.T) {
	client, store, notifier, navigator := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, StatusTokenExpired, "token expired", nil)
	})
	_ = store.Set("stale-token")

	_, err := client.Get(context.Background(), "/users", nil)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !IsKind(err, KindAuthExpired) {
		t.Fatalf("expected KindAuthExpired, got %v", err)
	}
	if _, ok := store.Token(); ok {
		t.Fatal("expected token to be cleared")
	}
	if navigator.count() != 1 {
		t.Fatalf("expected 1 login navigation, got %d", navigator.count())
	}
	if len(notifier.errors) != 1 || notifier.errors[0] != "token expired" {
		t.Fatalf("expected the server message notification, got %v", notifier.errors)
	}
}

func TestAllTokenCodesTriggerAuthExpiry(t *testing.T) {
	codes := []int{StatusTokenNotExist, StatusTokenExpired, StatusTokenWrong, StatusTokenMalformed}
	for _, code := range codes {
		status := code
		client, store, _, navigator := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, http.StatusUnauthorized, status, "", nil)
		})
		_ = store.Set("tok")

		_, err := client.Get(context.Background(), "/profile", nil)
		if !IsKind(err, KindAuthExpired) {
			t.Fatalf("code %d: expected KindAuthExpired, got %v", code, err)
		}
		if _, ok := store.Token(); ok {
			t.Fatalf("code %d: expected token cleared", code)
		}
		if navigator.count() != 1 {
			t.Fatalf("code %d: expected navigation", code)
		}
	}
}

func TestForbiddenPreservesSession(t *testing.T) {
	client, store, notifier, navigator := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusForbidden, StatusNoPermission, "no permission", nil)
	})
	_ = store.Set("valid-token")

	_, err := client.Delete(context.Background(), "/users/3")
	if !IsKind(err, KindForbidden) {
		t.Fatalf("expected KindForbidden, got %v", err)
	}
	if _, ok := store.Token(); !ok {
		t.Fatal("token must be preserved on a permission error")
	}
	if navigator.count() != 0 {
		t.Fatal("permission errors must not navigate to login")
	}
	if len(notifier.errors) != 1 {
		t.Fatalf("expected exactly one notification, got %v", notifier.errors)
	}
}

func TestDomainFailureOnTransportSuccess(t *testing.T) {
	// HTTP 200 but a failing body status: the body is authoritative.
	client, _, notifier, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, StatusCategoryNameUsed, "category name already in use", nil)
	})

	_, err := client.Post(context.Background(), "/categories", map[string]string{"name": "dup"})
	if !IsKind(err, KindDomain) {
		t.Fatalf("expected KindDomain, got %v", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Status != StatusCategoryNameUsed {
		t.Fatalf("expected body status %d, got %d", StatusCategoryNameUsed, apiErr.Status)
	}
	if len(notifier.errors) != 1 || notifier.errors[0] != "category name already in use" {
		t.Fatalf("expected server message notification, got %v", notifier.errors)
	}
}

func TestNotFoundFallbackMessage(t *testing.T) {
	client, _, notifier, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.Get(context.Background(), "/articles/999", nil)
	if !IsKind(err, KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", err)
	}
	if len(notifier.errors) != 1 || notifier.errors[0] != msgNotFound {
		t.Fatalf("expected fallback not-found message, got %v", notifier.errors)
	}
}

func TestServerErrorFallbackMessage(t *testing.T) {
	client, _, notifier, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>crash</html>"))
	})

	_, err := client.Get(context.Background(), "/articles", nil)
	if !IsKind(err, KindServer) {
		t.Fatalf("expected KindServer, got %v", err)
	}
	if len(notifier.errors) != 1 || notifier.errors[0] != msgServerError {
		t.Fatalf("expected fallback server message, got %v", notifier.errors)
	}
}

func TestTransportErrorNotifiesConnectivity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	store := session.NewMemoryStore()
	notifier := &recordingNotifier{}
	client := New(Config{BaseURL: server.URL}, store, WithNotifier(notifier))
	server.Close() // nothing is listening anymore

	_, err := client.Get(context.Background(), "/articles", nil)
	if !IsKind(err, KindTransport) {
		t.Fatalf("expected KindTransport, got %v", err)
	}
	if len(notifier.errors) != 1 || notifier.errors[0] != msgConnectivity {
		t.Fatalf("expected connectivity notification, got %v", notifier.errors)
	}
}

func TestSuccessEnvelopePassesThrough(t *testing.T) {
	client, _, notifier, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":200,"message":"OK","data":[{"id":1}],"total":42}`))
	})

	env, err := client.Get(context.Background(), "/articles", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.Total == nil || *env.Total != 42 {
		t.Fatalf("expected total 42, got %v", env.Total)
	}
	if !strings.Contains(string(env.Data), `"id":1`) {
		t.Fatalf("unexpected data payload: %s", env.Data)
	}
	if len(notifier.errors) != 0 {
		t.Fatalf("success must not notify, got %v", notifier.errors)
	}
}

func TestErrorIsAlwaysReRaised(t *testing.T) {
	// The notification is a side effect; the caller still gets the error
	// so page-local state can render inline.
	client, _, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusBadRequest, 400, "invalid parameters", nil)
	})

	_, err := client.Post(context.Background(), "/articles", nil)
	if err == nil {
		t.Fatal("expected the failure to propagate to the caller")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.UserMessage() != "invalid parameters" {
		t.Fatalf("unexpected user message %q", apiErr.UserMessage())
	}
}
