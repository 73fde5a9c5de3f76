package magento

import (
	"context"
	"fmt"
	"iter"
)

// Invoices returns an iterator over all invoices matching the query.
func (c *Client) Invoices(ctx context.Context, q *Query) iter.Seq2[Entity, error] {
	return c.Paginate(ctx, "/V1/invoices", q)
}

// Invoice returns an invoice given its id.
func (c *Client) Invoice(ctx context.Context, invoiceID int) (Entity, error) {
	var invoice Entity
	err := c.getJSON(ctx, fmt.Sprintf("/V1/invoices/%d", invoiceID), nil, &invoice)
	return invoice, err
}

// InvoiceByIncrementID returns an invoice given its increment id, or nil
// if it doesn't exist.
func (c *Client) InvoiceByIncrementID(ctx context.Context, incrementID string) (Entity, error) {
	for invoice, err := range c.Invoices(ctx, FieldValueQuery("increment_id", incrementID).Page(1, 1)) {
		return invoice, err
	}

	return nil, nil
}

// OrderInvoices returns an iterator over the invoices of an order.
func (c *Client) OrderInvoices(ctx context.Context, orderID int) iter.Seq2[Entity, error] {
	return c.Invoices(ctx, FieldValueQuery("order_id", orderID))
}

// CreateOrderInvoice creates an invoice for an order. The payload may be
// nil; the client is notified unless the payload overrides the notify
// flag.
// https://developer.adobe.com/commerce/webapi/rest/tutorials/orders/order-create-invoice/
func (c *Client) CreateOrderInvoice(ctx context.Context, orderID int, payload Entity) (any, error) {
	if payload == nil {
		payload = Entity{}
	}
	if _, ok := payload["notify"]; !ok {
		payload["notify"] = true
	}

	var out any
	err := c.postJSON(ctx, fmt.Sprintf("/V1/order/%d/invoice", orderID), payload, &out)
	return out, err
}
