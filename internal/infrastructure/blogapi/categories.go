package blogapi

import (
	"context"
	"fmt"
)

// ListCategories fetches one page of categories.
func (c *Client) ListCategories(ctx context.Context, pageNum, pageSize int) ([]Category, int64, error) {
	env, err := c.gw.Get(ctx, "/categories", pageValues(pageNum, pageSize))
	if err != nil {
		return nil, 0, err
	}

	var categories []Category
	if err := decode(env, &categories); err != nil {
		return nil, 0, err
	}
	return categories, total(env), nil
}

// GetCategory fetches a single category by id.
func (c *Client) GetCategory(ctx context.Context, id uint) (*Category, error) {
	env, err := c.gw.Get(ctx, fmt.Sprintf("/categories/%d", id), nil)
	if err != nil {
		return nil, err
	}

	category := &Category{}
	if err := decode(env, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategoryArticles fetches one page of the articles in a category.
func (c *Client) ListCategoryArticles(ctx context.Context, id uint, pageNum, pageSize int) ([]Article, int64, error) {
	env, err := c.gw.Get(ctx, fmt.Sprintf("/categories/%d/articles", id), pageValues(pageNum, pageSize))
	if err != nil {
		return nil, 0, err
	}

	var articles []Article
	if err := decode(env, &articles); err != nil {
		return nil, 0, err
	}
	return articles, total(env), nil
}

// CreateCategory adds a new category.
func (c *Client) CreateCategory(ctx context.Context, req ReqCategory) (*Category, error) {
	env, err := c.gw.Post(ctx, "/categories", req)
	if err != nil {
		return nil, err
	}

	category := &Category{}
	if err := decode(env, category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory renames a category.
func (c *Client) UpdateCategory(ctx context.Context, id uint, req ReqCategory) (*Category, error) {
	env, err := c.gw.Put(ctx, fmt.Sprintf("/categories/%d", id), req)
	if err != nil {
		return nil, err
	}

	category := &Category{}
	if err := decode(env, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, id uint) error {
	_, err := c.gw.Delete(ctx, fmt.Sprintf("/categories/%d", id))
	return err
}
