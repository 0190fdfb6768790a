// Package blogapi provides typed bindings for the blog REST API on top of
// the gateway client. One method per endpoint; list endpoints expose the
// pagenum/pagesize/filter parameters the admin pages use.
package blogapi

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/2azusa/Go-Blog/internal/infrastructure/gateway"
	"github.com/2azusa/Go-Blog/internal/infrastructure/session"
)

// Client groups the typed endpoint bindings around one gateway client.
type Client struct {
	gw      *gateway.Client
	session session.Store
	log     zerolog.Logger
}

// New creates the typed API client. The session store is the same one the
// gateway reads tokens from; login writes into it, logout clears it.
func New(gw *gateway.Client, store session.Store, log zerolog.Logger) *Client {
	return &Client{gw: gw, session: store, log: log}
}

// decode unmarshals the envelope's data payload into out. A null or absent
// payload leaves out untouched.
func decode(env *gateway.Envelope, out any) error {
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

func total(env *gateway.Envelope) int64 {
	if env.Total == nil {
		return 0
	}
	return *env.Total
}

func pageValues(pageNum, pageSize int) url.Values {
	values := url.Values{}
	if pageNum > 0 {
		values.Set("pagenum", strconv.Itoa(pageNum))
	}
	if pageSize > 0 {
		values.Set("pagesize", strconv.Itoa(pageSize))
	}
	return values
}
