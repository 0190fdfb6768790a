package blogapi

import (
	"context"
	"fmt"
)

// ListUsers fetches one page of users, optionally filtered by username.
func (c *Client) ListUsers(ctx context.Context, pageNum, pageSize int, query string) ([]User, int64, error) {
	values := pageValues(pageNum, pageSize)
	if query != "" {
		values.Set("query", query)
	}

	env, err := c.gw.Get(ctx, "/users", values)
	if err != nil {
		return nil, 0, err
	}

	var users []User
	if err := decode(env, &users); err != nil {
		return nil, 0, err
	}
	return users, total(env), nil
}

// GetUser fetches a single user by id.
func (c *Client) GetUser(ctx context.Context, id uint) (*User, error) {
	env, err := c.gw.Get(ctx, fmt.Sprintf("/users/%d", id), nil)
	if err != nil {
		return nil, err
	}

	user := &User{}
	if err := decode(env, user); err != nil {
		return nil, err
	}
	return user, nil
}

// AddUser creates a new account from the admin side.
func (c *Client) AddUser(ctx context.Context, req ReqAddUser) (*User, error) {
	env, err := c.gw.Post(ctx, "/users/add", req)
	if err != nil {
		return nil, err
	}

	user := &User{}
	if err := decode(env, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser edits an account's username, email, or role.
func (c *Client) UpdateUser(ctx context.Context, id uint, req ReqEditUser) (*User, error) {
	env, err := c.gw.Put(ctx, fmt.Sprintf("/users/%d", id), req)
	if err != nil {
		return nil, err
	}

	user := &User{}
	if err := decode(env, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, id uint) error {
	_, err := c.gw.Delete(ctx, fmt.Sprintf("/users/%d", id))
	return err
}
