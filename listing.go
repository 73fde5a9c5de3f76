package magento

import (
	"context"
	"iter"
)

// Listing endpoints with no extra behavior beyond pagination.

// Carts returns an iterator over all carts matching the query.
func (c *Client) Carts(ctx context.Context, q *Query) iter.Seq2[Entity, error] {
	return c.Paginate(ctx, "/V1/carts/search", q)
}

// CMSPages returns an iterator over all CMS pages matching the query.
func (c *Client) CMSPages(ctx context.Context, q *Query) iter.Seq2[Entity, error] {
	return c.Paginate(ctx, "/V1/cmsPage/search", q)
}

// CMSBlocks returns an iterator over all CMS blocks matching the query.
func (c *Client) CMSBlocks(ctx context.Context, q *Query) iter.Seq2[Entity, error] {
	return c.Paginate(ctx, "/V1/cmsBlock/search", q)
}

// Coupons returns an iterator over all coupons matching the query.
func (c *Client) Coupons(ctx context.Context, q *Query) iter.Seq2[Entity, error] {
	return c.Paginate(ctx, "/V1/coupons/search", q)
}

// CreditMemos returns an iterator over all credit memos matching the
// query.
func (c *Client) CreditMemos(ctx context.Context, q *Query) iter.Seq2[Entity, error] {
	return c.Paginate(ctx, "/V1/creditmemos", q)
}

// SalesRules returns an iterator over all sales rules matching the query.
func (c *Client) SalesRules(ctx context.Context, q *Query) iter.Seq2[Entity, error] {
	return c.Paginate(ctx, "/V1/salesRules/search", q)
}

// TaxClasses returns an iterator over all tax classes matching the query.
func (c *Client) TaxClasses(ctx context.Context, q *Query) iter.Seq2[Entity, error] {
	return c.Paginate(ctx, "/V1/taxClasses/search", q)
}

// TaxRates returns an iterator over all tax rates matching the query.
func (c *Client) TaxRates(ctx context.Context, q *Query) iter.Seq2[Entity, error] {
	return c.Paginate(ctx, "/V1/taxRates/search", q)
}

// TaxRules returns an iterator over all tax rules matching the query.
func (c *Client) TaxRules(ctx context.Context, q *Query) iter.Seq2[Entity, error] {
	return c.Paginate(ctx, "/V1/taxRules/search", q)
}

// Modules returns an iterator over all enabled modules.
func (c *Client) Modules(ctx context.Context, q *Query) iter.Seq2[Entity, error] {
	return c.Paginate(ctx, "/V1/modules", q)
}
