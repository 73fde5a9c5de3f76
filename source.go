package magento

import (
	"context"
	"iter"
	"strings"
)

// Sources returns an iterator over all inventory sources.
// https://adobe-commerce.redoc.ly/2.4.6-admin/tag/inventorysources
func (c *Client) Sources(ctx context.Context, q *Query) iter.Seq2[Entity, error] {
	return c.Paginate(ctx, "/V1/inventory/sources", q)
}

// Source returns a single inventory source, or nil if it doesn't exist.
func (c *Client) Source(ctx context.Context, sourceCode string) (Entity, error) {
	var source Entity
	ok, err := c.getOptional(ctx, "/V1/inventory/sources/"+escapePath(sourceCode), nil, &source)
	if err != nil || !ok {
		return nil, err
	}

	return source, nil
}

// SaveSource creates or updates an inventory source.
func (c *Client) SaveSource(ctx context.Context, source Entity) error {
	return c.postJSON(ctx, "/V1/inventory/sources", Entity{"source": source}, nil)
}

// SourceItems returns an iterator over all source items matching the
// query.
func (c *Client) SourceItems(ctx context.Context, q *Query) iter.Seq2[SourceItem, error] {
	return c.Paginate(ctx, "/V1/inventory/source-items", q)
}

// SourceItemsForSource is a shortcut for [Client.SourceItems] filtered on
// a source code.
func (c *Client) SourceItemsForSource(ctx context.Context, sourceCode string) iter.Seq2[SourceItem, error] {
	return c.SourceItems(ctx, FieldValueQuery("source_code", sourceCode))
}

// SourceItemsForSKUs is a shortcut for [Client.SourceItems] filtered on a
// set of SKUs.
func (c *Client) SourceItemsForSKUs(ctx context.Context, skus []SKU) iter.Seq2[SourceItem, error] {
	q := NewQuery().Filter(Filter{
		Field:         "sku",
		Value:         strings.Join(skus, ","),
		ConditionType: ConditionIn,
	})

	return c.SourceItems(ctx, q)
}

// SaveSourceItems saves source items. An empty slice is a no-op, since
// Magento rejects empty payloads.
func (c *Client) SaveSourceItems(ctx context.Context, items []SourceItem) error {
	if len(items) == 0 {
		return nil
	}

	return c.postJSON(ctx, "/V1/inventory/source-items", Entity{"sourceItems": items}, nil)
}

// DeleteSourceItems deletes source items. Only the sku and source_code of
// each item are used.
func (c *Client) DeleteSourceItems(ctx context.Context, items []SourceItem) error {
	if len(items) == 0 {
		return nil
	}

	trimmed := make([]Entity, 0, len(items))
	for _, item := range items {
		trimmed = append(trimmed, Entity{"sku": item["sku"], "source_code": item["source_code"]})
	}

	return c.postJSON(ctx, "/V1/inventory/source-items-delete", Entity{"sourceItems": trimmed}, nil)
}

// DeleteDefaultSourceItems deletes every source item attached to the
// default source, which Magento sets on new products.
func (c *Client) DeleteDefaultSourceItems(ctx context.Context) error {
	var items []SourceItem
	for item, err := range c.SourceItemsForSource(ctx, "default") {
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	return c.DeleteSourceItems(ctx, items)
}

// StockSourceLinks returns an iterator over stock/source links.
func (c *Client) StockSourceLinks(ctx context.Context, q *Query) iter.Seq2[Entity, error] {
	return c.Paginate(ctx, "/V1/inventory/stock-source-links", q)
}
