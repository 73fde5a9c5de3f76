package magento

import (
	"context"
	"fmt"

	"github.com/google/go-querystring/query"
)

type storeConfigParams struct {
	StoreCodes []string `url:"storeCodes,omitempty"`
}

// StoreConfigs returns the store configurations, optionally narrowed to
// the given store codes.
func (c *Client) StoreConfigs(ctx context.Context, storeCodes ...string) ([]Entity, error) {
	params, err := query.Values(storeConfigParams{StoreCodes: storeCodes})
	if err != nil {
		return nil, err
	}

	var configs []Entity
	err = c.getJSON(ctx, "/V1/store/storeConfigs", params, &configs)
	return configs, err
}

// StoreGroups returns all store groups.
func (c *Client) StoreGroups(ctx context.Context) ([]Entity, error) {
	var groups []Entity
	err := c.getJSON(ctx, "/V1/store/storeGroups", nil, &groups)
	return groups, err
}

// StoreViews returns all store views.
func (c *Client) StoreViews(ctx context.Context) ([]Entity, error) {
	var views []Entity
	err := c.getJSON(ctx, "/V1/store/storeViews", nil, &views)
	return views, err
}

// Websites returns all websites.
func (c *Client) Websites(ctx context.Context) ([]Entity, error) {
	var websites []Entity
	err := c.getJSON(ctx, "/V1/store/websites", nil, &websites)
	return websites, err
}

// CurrentStoreGroupID resolves the store group of the client's scope,
// which may name a store group, a website, or a store view. This is a
// client-side resolution, not a Magento API endpoint.
func (c *Client) CurrentStoreGroupID(ctx context.Context) (int, error) {
	groups, err := c.StoreGroups(ctx)
	if err != nil {
		return 0, err
	}

	for _, group := range groups {
		if group["code"] == c.scope {
			return intValue(group["id"]), nil
		}
	}

	return c.storeGroupIDFromWebsitesOrViews(ctx)
}

// RootCategoryID returns the root category id of the client's scope.
func (c *Client) RootCategoryID(ctx context.Context) (int, error) {
	groups, err := c.StoreGroups(ctx)
	if err != nil {
		return 0, err
	}

	rootByGroup := make(map[int]int, len(groups))
	for _, group := range groups {
		if group["code"] == c.scope {
			return intValue(group["root_category_id"]), nil
		}
		rootByGroup[intValue(group["id"])] = intValue(group["root_category_id"])
	}

	// The scope is a website or a store view.
	groupID, err := c.storeGroupIDFromWebsitesOrViews(ctx)
	if err != nil {
		return 0, err
	}

	return rootByGroup[groupID], nil
}

func (c *Client) storeGroupIDFromWebsitesOrViews(ctx context.Context) (int, error) {
	websites, err := c.Websites(ctx)
	if err != nil {
		return 0, err
	}
	for _, website := range websites {
		if website["code"] == c.scope {
			return intValue(website["default_group_id"]), nil
		}
	}

	views, err := c.StoreViews(ctx)
	if err != nil {
		return 0, err
	}
	for _, view := range views {
		if view["code"] == c.scope {
			return intValue(view["store_group_id"]), nil
		}
	}

	return 0, fmt.Errorf("cannot determine the store group id of scope %q", c.scope)
}
