package gateway

import (
	"errors"
	"fmt"
)

// Application status codes embedded in response bodies. These mirror the
// server's error table; the body status is authoritative over the HTTP
// transport status.
const (
	StatusOK = 200

	// 1000-range: user/auth module
	StatusUsernameUsed   = 1001
	StatusPasswordWrong  = 1002
	StatusUserNotExist   = 1003
	StatusTokenNotExist  = 1004
	StatusTokenExpired   = 1005
	StatusTokenWrong     = 1006
	StatusTokenMalformed = 1007
	StatusNoPermission   = 1008

	// 2000-range: article module
	StatusArticleNotExist = 2001

	// 3000-range: category module
	StatusCategoryNameUsed = 3001
	StatusCategoryNotExist = 3002
)

// Kind buckets every failure into the classes the client reacts to
// differently: connectivity, session expiry, permission, and the rest.
type Kind int

const (
	// KindTransport means no response was received at all.
	KindTransport Kind = iota
	// KindAuthExpired covers missing/expired/malformed token responses;
	// the stored token is cleared and the login redirect fires.
	KindAuthExpired
	// KindForbidden is a permission denial; the session is preserved.
	KindForbidden
	// KindNotFound maps HTTP 404 responses without a more specific code.
	KindNotFound
	// KindServer maps HTTP 5xx responses.
	KindServer
	// KindDomain is any other body-level failure (status != 200).
	KindDomain
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindAuthExpired:
		return "auth-expired"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not-found"
	case KindServer:
		return "server"
	case KindDomain:
		return "domain"
	default:
		return "unknown"
	}
}

// APIError is the single error type the gateway returns. It carries the
// failure class, the application status from the body (0 when no body was
// received), the HTTP transport status, and the user-facing message that
// was emitted through the notifier.
type APIError struct {
	Kind       Kind
	Status     int
	HTTPStatus int
	Message    string
	cause      error
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("api error (%s, status %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("api error (%s): %s", e.Kind, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.cause
}

// UserMessage returns the user-facing text that was shown for this
// failure, suitable for inline display next to the notification.
func (e *APIError) UserMessage() string {
	return e.Message
}

// IsKind reports whether err is an *APIError of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Kind == kind
}

func isAuthInvalid(status int) bool {
	switch status {
	case StatusTokenNotExist, StatusTokenExpired, StatusTokenWrong, StatusTokenMalformed:
		return true
	default:
		return false
	}
}
