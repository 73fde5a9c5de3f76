package magento

import (
	"context"
	"fmt"
	"iter"
)

// Categories returns an iterator over all categories matching the query.
func (c *Client) Categories(ctx context.Context, q *Query) iter.Seq2[Category, error] {
	return c.Paginate(ctx, "/V1/categories/list", q)
}

// Category returns a category given its id, or nil if it doesn't exist.
func (c *Client) Category(ctx context.Context, categoryID int) (Category, error) {
	var category Category
	ok, err := c.getOptional(ctx, fmt.Sprintf("/V1/categories/%d", categoryID), nil, &category)
	if err != nil || !ok {
		return nil, err
	}

	return category, nil
}

// CategoryByName returns the first category with the given exact name, or
// nil if there is none.
func (c *Client) CategoryByName(ctx context.Context, name string) (Category, error) {
	for category, err := range c.Categories(ctx, FieldValueQuery("name", name).Page(1, 1)) {
		return category, err
	}

	return nil, nil
}

// CreateCategory creates a category.
func (c *Client) CreateCategory(ctx context.Context, category Category) (Category, error) {
	var created Category
	err := c.postJSON(ctx, "/V1/categories", Entity{"category": category}, &created)
	return created, err
}

// UpdateCategory updates a category with (possibly partial) data and
// returns the updated category.
func (c *Client) UpdateCategory(ctx context.Context, categoryID int, category Category) (Category, error) {
	var updated Category
	err := c.putJSON(ctx, fmt.Sprintf("/V1/categories/%d", categoryID), Entity{"category": category}, &updated)
	return updated, err
}
