package magento

import (
	"context"
	"iter"
)

// Shipments returns an iterator over all shipments matching the query.
func (c *Client) Shipments(ctx context.Context, q *Query) iter.Seq2[Entity, error] {
	return c.Paginate(ctx, "/V1/shipments", q)
}

// OrderShipments returns an iterator over the shipments of an order.
func (c *Client) OrderShipments(ctx context.Context, orderID int) iter.Seq2[Entity, error] {
	return c.Shipments(ctx, FieldValueQuery("order_id", orderID))
}
