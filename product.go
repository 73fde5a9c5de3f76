package magento

import (
	"context"
	"fmt"
	"iter"
)

// Products returns an iterator over all products matching the query.
func (c *Client) Products(ctx context.Context, q *Query) iter.Seq2[Product, error] {
	return c.Paginate(ctx, "/V1/products", q)
}

// ProductTypes returns the available product types.
func (c *Client) ProductTypes(ctx context.Context) ([]Entity, error) {
	var types []Entity
	err := c.getJSON(ctx, "/V1/product/types", nil, &types)
	return types, err
}

// Product returns a single product given its SKU, or nil if it doesn't
// exist.
func (c *Client) Product(ctx context.Context, sku SKU) (Product, error) {
	var product Product
	ok, err := c.getOptional(ctx, "/V1/products/"+escapePath(sku), nil, &product)
	if err != nil || !ok {
		return nil, err
	}

	return product, nil
}

// ProductByID returns a product given its entity id, or nil if it
// doesn't exist.
func (c *Client) ProductByID(ctx context.Context, productID int) (Product, error) {
	for product, err := range c.Products(ctx, FieldValueQuery("entity_id", productID).Page(1, 1)) {
		return product, err
	}

	return nil, nil
}

// ProductByQuery returns the product matching a custom query: nil when
// nothing matches, [ErrNotSingleResult] when several products do.
func (c *Client) ProductByQuery(ctx context.Context, q *Query) (Product, error) {
	var products []Product
	for product, err := range c.Products(ctx, q.Page(1, 2)) {
		if err != nil {
			return nil, err
		}
		products = append(products, product)
		if len(products) == 2 {
			break
		}
	}

	switch len(products) {
	case 0:
		return nil, nil
	case 1:
		return products[0], nil
	default:
		return nil, fmt.Errorf("product query: %w", ErrNotSingleResult)
	}
}

// SaveProduct creates or updates a product. The product may be partial.
func (c *Client) SaveProduct(ctx context.Context, product Product) (Product, error) {
	var saved Product
	err := c.postJSON(ctx, "/V1/products", Entity{"product": product}, &saved)
	return saved, err
}

// UpdateProduct updates a product given its SKU. To change a SKU, pass
// the product id along the new SKU and use [Client.SaveProductOptions].
func (c *Client) UpdateProduct(ctx context.Context, sku SKU, product Product) (Product, error) {
	var updated Product
	err := c.putJSON(ctx, "/V1/products/"+escapePath(sku), Entity{"product": product}, &updated)
	return updated, err
}

// SaveProductOptions is [Client.UpdateProduct] with the saveOptions
// attribute set, which Magento requires for SKU changes.
func (c *Client) SaveProductOptions(ctx context.Context, sku SKU, product Product) (Product, error) {
	var updated Product
	payload := Entity{"product": product, "saveOptions": true}
	err := c.putJSON(ctx, "/V1/products/"+escapePath(sku), payload, &updated)
	return updated, err
}

// DeleteProduct deletes a product given its SKU and reports success.
// With skipMissing set, deleting an absent product returns false instead
// of an error.
func (c *Client) DeleteProduct(ctx context.Context, sku SKU, skipMissing bool) (bool, error) {
	var deleted bool
	err := c.deleteJSON(ctx, "/V1/products/"+escapePath(sku), &deleted)
	if skipMissing && IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return deleted, nil
}

// AsyncUpdateProducts updates multiple products through the async bulk
// API. Every update must contain an "sku" key.
// https://developer.adobe.com/commerce/webapi/rest/use-rest/bulk-endpoints/
func (c *Client) AsyncUpdateProducts(ctx context.Context, updates []Product) (*BulkResponse, error) {
	payload := make([]Entity, 0, len(updates))
	for _, update := range updates {
		payload = append(payload, Entity{"product": update})
	}

	var resp BulkResponse
	err := c.putJSON(ctx, asyncBulkPath("/V1/products/bySku"), payload, &resp)
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

// ProductMedias returns the gallery entries of a product.
func (c *Client) ProductMedias(ctx context.Context, sku SKU) ([]MediaEntry, error) {
	var medias []MediaEntry
	err := c.getJSON(ctx, fmt.Sprintf("/V1/products/%s/media", escapePath(sku)), nil, &medias)
	return medias, err
}

// ProductMedia returns a single gallery entry of a product.
func (c *Client) ProductMedia(ctx context.Context, sku SKU, mediaID int) (MediaEntry, error) {
	var media MediaEntry
	err := c.getJSON(ctx, fmt.Sprintf("/V1/products/%s/media/%d", escapePath(sku), mediaID), nil, &media)
	return media, err
}

// SaveProductMedia saves a gallery entry on a product.
func (c *Client) SaveProductMedia(ctx context.Context, sku SKU, entry MediaEntry) (any, error) {
	var out any
	err := c.postJSON(ctx, fmt.Sprintf("/V1/products/%s/media", escapePath(sku)), Entity{"entry": entry}, &out)
	return out, err
}

// DeleteProductMedia deletes a gallery entry of a product.
func (c *Client) DeleteProductMedia(ctx context.Context, sku SKU, mediaID int) error {
	return c.deleteJSON(ctx, fmt.Sprintf("/V1/products/%s/media/%d", escapePath(sku), mediaID), nil)
}

// SetProductStockItem sets the stock quantity of a product.
func (c *Client) SetProductStockItem(ctx context.Context, sku SKU, quantity int, inStock bool) error {
	payload := Entity{"stockItem": Entity{"qty": quantity, "is_in_stock": inStock}}
	return c.putJSON(ctx, fmt.Sprintf("/V1/products/%s/stockItems/1", escapePath(sku)), payload, nil)
}

// ProductStockStatus returns the stock status of a SKU.
func (c *Client) ProductStockStatus(ctx context.Context, sku SKU) (Entity, error) {
	var status Entity
	err := c.getJSON(ctx, "/V1/stockStatuses/"+escapePath(sku), nil, &status)
	return status, err
}

// ProductStockItem returns the stock item of a SKU.
func (c *Client) ProductStockItem(ctx context.Context, sku SKU) (Entity, error) {
	var item Entity
	err := c.getJSON(ctx, "/V1/stockItems/"+escapePath(sku), nil, &item)
	return item, err
}

// LinkChildProduct links a child product to a configurable parent.
func (c *Client) LinkChildProduct(ctx context.Context, parentSKU, childSKU SKU) error {
	path := fmt.Sprintf("/V1/configurable-products/%s/child", escapePath(parentSKU))
	return c.postJSON(ctx, path, Entity{"childSku": childSKU}, nil)
}

// UnlinkChildProduct is the opposite of [Client.LinkChildProduct].
func (c *Client) UnlinkChildProduct(ctx context.Context, parentSKU, childSKU SKU) error {
	path := fmt.Sprintf("/V1/configurable-products/%s/children/%s", escapePath(parentSKU), escapePath(childSKU))
	return c.deleteJSON(ctx, path, nil)
}

// SaveConfigurableProductOption saves an option of a configurable
// product.
func (c *Client) SaveConfigurableProductOption(ctx context.Context, sku SKU, option Entity) error {
	path := fmt.Sprintf("/V1/configurable-products/%s/options", escapePath(sku))
	return c.postJSON(ctx, path, Entity{"option": option}, nil)
}
