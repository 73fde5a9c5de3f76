package magento

import (
	"context"
	"fmt"
	"iter"
	"strings"
)

// defaultAttribute is the skeleton merged under new product attributes by
// [Client.SaveAttribute]. The global scope is required for configurable
// products:
// https://docs.magento.com/user-guide/catalog/product-attributes-add.html
var defaultAttribute = Entity{
	"apply_to":                       []any{},
	"backend_type":                   "int",
	"custom_attributes":              []any{},
	"entity_type_id":                 "4",
	"extension_attributes":           Entity{},
	"frontend_input":                 "select",
	"is_comparable":                  false,
	"is_filterable":                  false,
	"is_filterable_in_grid":          false,
	"is_filterable_in_search":        false,
	"is_html_allowed_on_front":       false,
	"is_required":                    false,
	"is_searchable":                  false,
	"is_unique":                      false,
	"is_used_for_promo_rules":        false,
	"is_used_in_grid":                false,
	"is_user_defined":                true,
	"is_visible":                     true,
	"is_visible_in_advanced_search":  false,
	"is_visible_in_grid":             false,
	"is_visible_on_front":            true,
	"is_wysiwyg_enabled":             false,
	"note":                           "",
	"position":                       0,
	"scope":                          "global",
	"used_for_sort_by":               false,
	"used_in_product_listing":        false,
	"validation_rules":               []any{},
}

// SaveAttribute creates or updates a product attribute. With withDefaults
// set, fields missing from attribute are filled from a sensible skeleton.
func (c *Client) SaveAttribute(ctx context.Context, attribute Entity, withDefaults bool) (Entity, error) {
	if withDefaults {
		merged := make(Entity, len(defaultAttribute)+len(attribute))
		for k, v := range defaultAttribute {
			merged[k] = v
		}
		for k, v := range attribute {
			merged[k] = v
		}
		attribute = merged
	}

	var saved Entity
	err := c.postJSON(ctx, "/V1/products/attributes", Entity{"attribute": attribute}, &saved)
	return saved, err
}

// DeleteAttribute deletes a product attribute given its code.
func (c *Client) DeleteAttribute(ctx context.Context, attributeCode string) error {
	return c.deleteJSON(ctx, "/V1/products/attributes/"+escapePath(attributeCode), nil)
}

// AttributeSets returns an iterator over all attribute sets.
func (c *Client) AttributeSets(ctx context.Context, q *Query) iter.Seq2[Entity, error] {
	return c.Paginate(ctx, "/V1/eav/attribute-sets/list", q)
}

// AttributeSetAttributes returns all attributes of an attribute set.
func (c *Client) AttributeSetAttributes(ctx context.Context, attributeSetID int) ([]Entity, error) {
	var attrs []Entity
	err := c.getJSON(ctx, fmt.Sprintf("/V1/products/attribute-sets/%d/attributes", attributeSetID), nil, &attrs)
	return attrs, err
}

type assignAttributeRequest struct {
	AttributeCode    string `json:"attributeCode"`
	AttributeGroupID int    `json:"attributeGroupId"`
	AttributeSetID   int    `json:"attributeSetId"`
	SortOrder        int    `json:"sortOrder"`
}

// AssignAttributeSetAttribute assigns an attribute to an attribute set,
// inside the given attribute group (which must belong to the set).
func (c *Client) AssignAttributeSetAttribute(ctx context.Context, attributeSetID, attributeGroupID int, attributeCode string, sortOrder int) error {
	payload := assignAttributeRequest{
		AttributeCode:    attributeCode,
		AttributeGroupID: attributeGroupID,
		AttributeSetID:   attributeSetID,
		SortOrder:        sortOrder,
	}

	return c.postJSON(ctx, "/V1/products/attribute-sets/attributes", payload, nil)
}

// RemoveAttributeSetAttribute removes an attribute from an attribute set.
func (c *Client) RemoveAttributeSetAttribute(ctx context.Context, attributeSetID int, attributeCode string) error {
	path := fmt.Sprintf("/V1/products/attribute-sets/%d/attributes/%s", attributeSetID, escapePath(attributeCode))
	return c.deleteJSON(ctx, path, nil)
}

// ProductAttributeOptions returns all options of a product attribute.
func (c *Client) ProductAttributeOptions(ctx context.Context, attributeCode string) ([]Entity, error) {
	var options []Entity
	err := c.getJSON(ctx, fmt.Sprintf("/V1/products/attributes/%s/options", escapePath(attributeCode)), nil, &options)
	return options, err
}

// AddProductAttributeOption adds an option (label/value) to a product
// attribute and returns the new option id.
func (c *Client) AddProductAttributeOption(ctx context.Context, attributeCode string, option Entity) (string, error) {
	var id string
	path := fmt.Sprintf("/V1/products/attributes/%s/options", escapePath(attributeCode))
	if err := c.postJSON(ctx, path, Entity{"option": option}, &id); err != nil {
		return "", err
	}

	// Magento prefixes freshly created option ids with "id_".
	return strings.TrimPrefix(id, "id_"), nil
}

// DeleteProductAttributeOption removes an option from a product
// attribute.
func (c *Client) DeleteProductAttributeOption(ctx context.Context, attributeCode, optionID string) (bool, error) {
	var ok bool
	path := fmt.Sprintf("/V1/products/attributes/%s/options/%s", escapePath(attributeCode), escapePath(optionID))
	err := c.deleteJSON(ctx, path, &ok)
	return ok, err
}

// Manufacturers is a shortcut for the options of the "manufacturer"
// attribute.
func (c *Client) Manufacturers(ctx context.Context) ([]Entity, error) {
	return c.ProductAttributeOptions(ctx, "manufacturer")
}
