package blogapi

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ListArticles fetches one page of articles, optionally filtered by title.
func (c *Client) ListArticles(ctx context.Context, pageNum, pageSize int, title string) ([]Article, int64, error) {
	values := pageValues(pageNum, pageSize)
	if title != "" {
		values.Set("title", title)
	}

	env, err := c.gw.Get(ctx, "/articles", values)
	if err != nil {
		return nil, 0, err
	}

	var articles []Article
	if err := decode(env, &articles); err != nil {
		return nil, 0, err
	}
	return articles, total(env), nil
}

// GetArticle fetches a single article by id.
func (c *Client) GetArticle(ctx context.Context, id uint) (*Article, error) {
	env, err := c.gw.Get(ctx, fmt.Sprintf("/articles/%d", id), nil)
	if err != nil {
		return nil, err
	}

	article := &Article{}
	if err := decode(env, article); err != nil {
		return nil, err
	}
	return article, nil
}

// GetArticleWithComments fetches an article and its comments concurrently.
// The two reads are independent and land in disjoint fields, so completion
// order does not matter.
func (c *Client) GetArticleWithComments(ctx context.Context, id uint) (*Article, error) {
	var (
		article  *Article
		comments []Comment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		article, err = c.GetArticle(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		comments, err = c.ListComments(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	article.Comments = comments
	return article, nil
}

// CreateArticle publishes a new article.
func (c *Client) CreateArticle(ctx context.Context, req ReqArticle) (*Article, error) {
	env, err := c.gw.Post(ctx, "/articles", req)
	if err != nil {
		return nil, err
	}

	article := &Article{}
	if err := decode(env, article); err != nil {
		return nil, err
	}
	return article, nil
}

// UpdateArticle replaces an article's fields.
func (c *Client) UpdateArticle(ctx context.Context, id uint, req ReqArticle) (*Article, error) {
	env, err := c.gw.Put(ctx, fmt.Sprintf("/articles/%d", id), req)
	if err != nil {
		return nil, err
	}

	article := &Article{}
	if err := decode(env, article); err != nil {
		return nil, err
	}
	return article, nil
}

// DeleteArticle removes an article.
func (c *Client) DeleteArticle(ctx context.Context, id uint) error {
	_, err := c.gw.Delete(ctx, fmt.Sprintf("/articles/%d", id))
	return err
}
