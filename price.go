package magento

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"
)

// BasePrice is a product base price entry.
type BasePrice struct {
	Price   decimal.Decimal `json:"price"`
	StoreID int             `json:"store_id"`
	SKU     SKU             `json:"sku"`
}

// SpecialPrice is a temporary promotional price entry.
type SpecialPrice struct {
	Price   decimal.Decimal `json:"price"`
	StoreID int             `json:"store_id"`
	SKU     SKU             `json:"sku"`
	// PriceFrom and PriceTo bound the promotion period.
	PriceFrom Time `json:"price_from,omitzero"`
	PriceTo   Time `json:"price_to,omitzero"`
}

// BasePrices returns the base prices of the given SKUs. This POST
// endpoint only reads data, so it works on read-only clients.
func (c *Client) BasePrices(ctx context.Context, skus []SKU) ([]Entity, error) {
	var prices []Entity
	err := c.callBypass(ctx, http.MethodPost, "/V1/products/base-prices-information", nil, Entity{"skus": skus}, &prices)
	return prices, err
}

// SaveBasePrices saves base prices.
func (c *Client) SaveBasePrices(ctx context.Context, prices []BasePrice) error {
	return c.postJSON(ctx, "/V1/products/base-prices", Entity{"prices": prices}, nil)
}

// SpecialPrices returns the special prices of the given SKUs. This POST
// endpoint only reads data, so it works on read-only clients.
func (c *Client) SpecialPrices(ctx context.Context, skus []SKU) ([]Entity, error) {
	var prices []Entity
	err := c.callBypass(ctx, http.MethodPost, "/V1/products/special-price-information", nil, Entity{"skus": skus}, &prices)
	return prices, err
}

// SaveSpecialPrices saves special prices.
func (c *Client) SaveSpecialPrices(ctx context.Context, prices []SpecialPrice) error {
	return c.postJSON(ctx, "/V1/products/special-price", Entity{"prices": prices}, nil)
}

// DeleteSpecialPrices deletes special price entries, typically ones
// returned by [Client.SpecialPrices].
func (c *Client) DeleteSpecialPrices(ctx context.Context, prices []Entity) error {
	return c.postJSON(ctx, "/V1/products/special-price-delete", Entity{"prices": prices}, nil)
}

// DeleteSpecialPricesBySKU looks up the special prices of the given SKUs
// and deletes them.
func (c *Client) DeleteSpecialPricesBySKU(ctx context.Context, skus []SKU) error {
	prices, err := c.SpecialPrices(ctx, skus)
	if err != nil {
		return err
	}

	return c.DeleteSpecialPrices(ctx, prices)
}
