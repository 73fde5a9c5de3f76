package magento

import (
	"net/url"
	"strconv"
)

// Entity is an arbitrary JSON object returned by the Magento API. The API
// is schemaless from the client's point of view; payloads pass through
// unchanged.
type Entity = map[string]any

// Aliases used by the per-resource helpers.
type (
	Product    = Entity
	Order      = Entity
	Category   = Entity
	MediaEntry = Entity
	SourceItem = Entity
)

// SKU identifies a product.
type SKU = string

// escapePath escapes a value for use as a single path segment, so SKUs
// containing "/" or "%" survive the round trip.
func escapePath(s string) string {
	return url.PathEscape(s)
}

// intValue converts a decoded JSON value to an int. Magento returns ids
// as numbers or numeric strings depending on the endpoint.
func intValue(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		i, _ := strconv.Atoi(n)
		return i
	default:
		return 0
	}
}
