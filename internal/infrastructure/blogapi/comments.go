package blogapi

import (
	"context"
	"fmt"
)

// ListComments fetches all comments on an article.
func (c *Client) ListComments(ctx context.Context, articleID uint) ([]Comment, error) {
	env, err := c.gw.Get(ctx, fmt.Sprintf("/articles/%d/comments", articleID), nil)
	if err != nil {
		return nil, err
	}

	var comments []Comment
	if err := decode(env, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// AddComment posts a comment on an article.
func (c *Client) AddComment(ctx context.Context, req ReqAddComment) error {
	_, err := c.gw.Post(ctx, "/comments", req)
	return err
}

// DeleteComment removes a comment.
func (c *Client) DeleteComment(ctx context.Context, id uint) error {
	_, err := c.gw.Delete(ctx, fmt.Sprintf("/comments/%d", id))
	return err
}
