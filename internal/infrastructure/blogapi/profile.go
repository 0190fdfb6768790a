package blogapi

import (
	"context"
	"io"
)

// GetProfile fetches the current user's profile.
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	env, err := c.gw.Get(ctx, "/profile", nil)
	if err != nil {
		return nil, err
	}

	profile := &Profile{}
	if err := decode(env, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateProfile replaces the current user's profile fields.
func (c *Client) UpdateProfile(ctx context.Context, req ReqUpdateProfile) (*Profile, error) {
	env, err := c.gw.Put(ctx, "/profile", req)
	if err != nil {
		return nil, err
	}

	profile := &Profile{}
	if err := decode(env, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Upload sends a file as multipart form data and returns its public URL.
// The returned URL string goes verbatim into article/profile image fields.
func (c *Client) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	env, err := c.gw.Upload(ctx, "/upload", filename, content)
	if err != nil {
		return "", err
	}

	result := &UploadResult{}
	if err := decode(env, result); err != nil {
		return "", err
	}
	return result.URL, nil
}
