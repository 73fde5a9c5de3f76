package magento

import (
	"context"
	"fmt"
	"iter"
)

// Orders returns an iterator over all orders matching the query.
func (c *Client) Orders(ctx context.Context, q *Query) iter.Seq2[Order, error] {
	return c.Paginate(ctx, "/V1/orders", q)
}

// OrdersWithStatus is a shortcut for [Client.Orders] filtered on a
// status, e.g. "awaiting_shipping".
func (c *Client) OrdersWithStatus(ctx context.Context, status string) iter.Seq2[Order, error] {
	return c.Orders(ctx, FieldValueQuery("status", status))
}

// Order returns an order given its entity id (not its increment id).
func (c *Client) Order(ctx context.Context, orderID int) (Order, error) {
	var order Order
	err := c.getJSON(ctx, fmt.Sprintf("/V1/orders/%d", orderID), nil, &order)
	return order, err
}

// OrderByIncrementID returns an order given its increment id, or nil if
// it doesn't exist.
func (c *Client) OrderByIncrementID(ctx context.Context, incrementID string) (Order, error) {
	for order, err := range c.Orders(ctx, FieldValueQuery("increment_id", incrementID).Page(1, 1)) {
		return order, err
	}

	return nil, nil
}

// LastOrders returns the n most recent orders.
func (c *Client) LastOrders(ctx context.Context, n int) ([]Order, error) {
	q := NewQuery().SortBy("increment_id", "DESC").Page(1, n)

	orders := make([]Order, 0, n)
	for order, err := range c.Orders(ctx, q) {
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
		if len(orders) >= n {
			break
		}
	}

	return orders, nil
}

// OrderItems returns an iterator over order items matching the query.
func (c *Client) OrderItems(ctx context.Context, q *Query) iter.Seq2[Entity, error] {
	return c.Paginate(ctx, "/V1/orders/items", q)
}

// OrderItemsForSKU is a shortcut for [Client.OrderItems] filtered on a
// SKU.
func (c *Client) OrderItemsForSKU(ctx context.Context, sku SKU) iter.Seq2[Entity, error] {
	return c.OrderItems(ctx, FieldValueQuery("sku", sku))
}

// SaveOrder saves an order. The payload may be partial but must carry the
// entity id.
func (c *Client) SaveOrder(ctx context.Context, order Order) error {
	return c.postJSON(ctx, "/V1/orders", Entity{"entity": order}, nil)
}

// SetOrderStatus changes the status of an order and optionally sets its
// ext_order_id (left alone when empty).
func (c *Client) SetOrderStatus(ctx context.Context, order Order, status, externalOrderID string) error {
	payload := Entity{
		"entity_id": order["entity_id"],
		"status":    status,
		// increment_id must be repeated, otherwise it is regenerated
		"increment_id": order["increment_id"],
	}
	if externalOrderID != "" {
		payload["ext_order_id"] = externalOrderID
	}

	return c.SaveOrder(ctx, payload)
}

// HoldOrder puts an order on hold. The opposite of [Client.UnholdOrder].
func (c *Client) HoldOrder(ctx context.Context, orderID int) error {
	return c.postJSON(ctx, fmt.Sprintf("/V1/orders/%d/hold", orderID), nil, nil)
}

// UnholdOrder takes an order off hold.
func (c *Client) UnholdOrder(ctx context.Context, orderID int) error {
	return c.postJSON(ctx, fmt.Sprintf("/V1/orders/%d/unhold", orderID), nil, nil)
}

// ShipOrder ships an order and returns the new shipment id.
func (c *Client) ShipOrder(ctx context.Context, orderID int, payload Entity) (any, error) {
	var out any
	err := c.postJSON(ctx, fmt.Sprintf("/V1/order/%d/ship", orderID), payload, &out)
	return out, err
}

// IsOrderOnHold reports whether an order is on hold. Orders keep a
// hold_before_state while held, even after later state changes.
func IsOrderOnHold(order Order) bool {
	if order["status"] == "holded" {
		return true
	}

	state, ok := order["hold_before_state"].(string)
	return ok && state != ""
}

// IsOrderCashOnDelivery reports whether an order is paid cash-on-delivery.
func IsOrderCashOnDelivery(order Order) bool {
	payment, _ := order["payment"].(Entity)
	return payment["method"] == "cashondelivery"
}

// OrderShippingAddress returns the shipping address of the order's first
// shipping assignment, or nil if there is none. The returned map aliases
// the order payload.
func OrderShippingAddress(order Order) Entity {
	ext, _ := order["extension_attributes"].(Entity)

	var assignment Entity
	switch assignments := ext["shipping_assignments"].(type) {
	case []any:
		if len(assignments) == 0 {
			return nil
		}
		assignment, _ = assignments[0].(Entity)
	case []Entity:
		if len(assignments) == 0 {
			return nil
		}
		assignment = assignments[0]
	default:
		return nil
	}

	shipping, _ := assignment["shipping"].(Entity)
	address, _ := shipping["address"].(Entity)

	return address
}
