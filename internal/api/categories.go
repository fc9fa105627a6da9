package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/driftware/taskdeck/internal/model"
)

// ListCategories fetches all categories (never paginated)
func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := c.do(ctx, http.MethodGet, "/categories/", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory creates a category. The server enforces name
// uniqueness per user and answers a validation error on conflict.
func (c *Client) CreateCategory(ctx context.Context, name string) (model.Category, error) {
	var created model.Category
	body := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPost, "/categories/", nil, body, &created); err != nil {
		return model.Category{}, err
	}
	return created, nil
}

// DeleteCategory removes a category. Tasks referencing it keep
// existing; the server clears the reference.
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/categories/%d/", id), nil, nil, nil)
}
