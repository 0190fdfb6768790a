package blogapi

import (
	"context"
	"net/url"
)

// Login authenticates with username/password and stores the returned
// bearer token in the session store.
func (c *Client) Login(ctx context.Context, req ReqLogin) (*LoginResult, error) {
	env, err := c.gw.Post(ctx, "/login", req)
	if err != nil {
		return nil, err
	}

	result := &LoginResult{Token: env.Token}
	if err := decode(env, &result.User); err != nil {
		return nil, err
	}

	if result.Token != "" {
		if err := c.session.Set(result.Token); err != nil {
			return nil, err
		}
		c.log.Debug().Str("username", result.User.Username).Msg("session token stored")
	}
	return result, nil
}

// LoginByEmail authenticates with an emailed verification code.
func (c *Client) LoginByEmail(ctx context.Context, req ReqLoginByEmail) (*LoginResult, error) {
	env, err := c.gw.Post(ctx, "/login/email", req)
	if err != nil {
		return nil, err
	}

	result := &LoginResult{Token: env.Token}
	if err := decode(env, &result.User); err != nil {
		return nil, err
	}
	if result.Token != "" {
		if err := c.session.Set(result.Token); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Logout discards the stored session token. Purely client-side; the server
// keeps no session state beyond the token's own expiry.
func (c *Client) Logout() error {
	return c.session.Clear()
}

// Register creates a new account. The account must be activated through
// the emailed link before it can log in.
func (c *Client) Register(ctx context.Context, req ReqRegister) (string, error) {
	env, err := c.gw.Post(ctx, "/register", req)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// SendEmailCode requests a login verification code for the address.
func (c *Client) SendEmailCode(ctx context.Context, email string) (string, error) {
	env, err := c.gw.Post(ctx, "/email/code", map[string]string{"email": email})
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// ActivateEmail redeems an activation code from the registration email.
func (c *Client) ActivateEmail(ctx context.Context, code string) (string, error) {
	values := url.Values{}
	values.Set("code", code)
	env, err := c.gw.Get(ctx, "/active", values)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}
