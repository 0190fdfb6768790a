package blogapi

import (
	"context"
	"fmt"

	"github.com/2azusa/Go-Blog/internal/domain/listing"
)

// listing.Source adapters. One per admin page; each binds a resource's
// CRUD endpoints to the shared paginated-list controller so every page
// variant collapses into the same abstraction.

// ArticleSource backs the article admin page.
type ArticleSource struct {
	api *Client
}

var _ listing.Source[Article, ReqArticle] = (*ArticleSource)(nil)

// Articles returns the listing source for articles. The list filter
// matches on title.
func (c *Client) Articles() *ArticleSource {
	return &ArticleSource{api: c}
}

func (s *ArticleSource) List(ctx context.Context, q listing.Query) (listing.Page[Article], error) {
	items, count, err := s.api.ListArticles(ctx, q.PageNum, q.PageSize, q.Filter)
	if err != nil {
		return listing.Page[Article]{}, err
	}
	return listing.Page[Article]{Items: items, Total: count}, nil
}

func (s *ArticleSource) Create(ctx context.Context, form ReqArticle) (Article, error) {
	article, err := s.api.CreateArticle(ctx, form)
	if err != nil {
		return Article{}, err
	}
	return *article, nil
}

func (s *ArticleSource) Update(ctx context.Context, id uint, form ReqArticle) (Article, error) {
	article, err := s.api.UpdateArticle(ctx, id, form)
	if err != nil {
		return Article{}, err
	}
	return *article, nil
}

func (s *ArticleSource) Delete(ctx context.Context, id uint) error {
	return s.api.DeleteArticle(ctx, id)
}

// CategorySource backs the category admin page. Categories have no search
// filter; a non-empty filter is rejected before any request goes out.
type CategorySource struct {
	api *Client
}

var _ listing.Source[Category, ReqCategory] = (*CategorySource)(nil)

// Categories returns the listing source for categories.
func (c *Client) Categories() *CategorySource {
	return &CategorySource{api: c}
}

func (s *CategorySource) List(ctx context.Context, q listing.Query) (listing.Page[Category], error) {
	if q.Filter != "" {
		return listing.Page[Category]{}, fmt.Errorf("categories do not support filtering")
	}
	items, count, err := s.api.ListCategories(ctx, q.PageNum, q.PageSize)
	if err != nil {
		return listing.Page[Category]{}, err
	}
	return listing.Page[Category]{Items: items, Total: count}, nil
}

func (s *CategorySource) Create(ctx context.Context, form ReqCategory) (Category, error) {
	category, err := s.api.CreateCategory(ctx, form)
	if err != nil {
		return Category{}, err
	}
	return *category, nil
}

func (s *CategorySource) Update(ctx context.Context, id uint, form ReqCategory) (Category, error) {
	category, err := s.api.UpdateCategory(ctx, id, form)
	if err != nil {
		return Category{}, err
	}
	return *category, nil
}

func (s *CategorySource) Delete(ctx context.Context, id uint) error {
	return s.api.DeleteCategory(ctx, id)
}

// UserSource backs the user admin page. The list filter matches on
// username.
type UserSource struct {
	api *Client
}

var _ listing.Source[User, UserForm] = (*UserSource)(nil)

// Users returns the listing source for users. Edits drop the password
// field, matching the server's edit contract.
func (c *Client) Users() *UserSource {
	return &UserSource{api: c}
}

func (s *UserSource) List(ctx context.Context, q listing.Query) (listing.Page[User], error) {
	items, count, err := s.api.ListUsers(ctx, q.PageNum, q.PageSize, q.Filter)
	if err != nil {
		return listing.Page[User]{}, err
	}
	return listing.Page[User]{Items: items, Total: count}, nil
}

func (s *UserSource) Create(ctx context.Context, form UserForm) (User, error) {
	user, err := s.api.AddUser(ctx, ReqAddUser{
		Username: form.Username,
		Password: form.Password,
		Email:    form.Email,
		Role:     form.Role,
	})
	if err != nil {
		return User{}, err
	}
	return *user, nil
}

func (s *UserSource) Update(ctx context.Context, id uint, form UserForm) (User, error) {
	user, err := s.api.UpdateUser(ctx, id, ReqEditUser{
		Username: form.Username,
		Email:    form.Email,
		Role:     form.Role,
	})
	if err != nil {
		return User{}, err
	}
	return *user, nil
}

func (s *UserSource) Delete(ctx context.Context, id uint) error {
	return s.api.DeleteUser(ctx, id)
}
