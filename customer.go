package magento

import (
	"context"
	"fmt"
	"iter"
)

// Customers returns an iterator over all customers matching the query.
func (c *Client) Customers(ctx context.Context, q *Query) iter.Seq2[Entity, error] {
	return c.Paginate(ctx, "/V1/customers/search", q)
}

// Customer returns a single customer.
func (c *Client) Customer(ctx context.Context, customerID int) (Entity, error) {
	var customer Entity
	err := c.getJSON(ctx, fmt.Sprintf("/V1/customers/%d", customerID), nil, &customer)
	return customer, err
}

// CustomerGroups returns an iterator over all customer groups.
func (c *Client) CustomerGroups(ctx context.Context, q *Query) iter.Seq2[Entity, error] {
	return c.Paginate(ctx, "/V1/customerGroups/search", q)
}
