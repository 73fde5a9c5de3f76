package magento

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// BulkResponse is returned by async bulk endpoints.
type BulkResponse struct {
	BulkUUID     uuid.UUID `json:"bulk_uuid"`
	RequestItems []Entity  `json:"request_items"`
	Errors       bool      `json:"errors"`
}

// BulkStatus returns the status of an async bulk operation.
func (c *Client) BulkStatus(ctx context.Context, bulkUUID uuid.UUID) (Entity, error) {
	var status Entity
	err := c.getJSON(ctx, fmt.Sprintf("/V1/bulk/%s/status", bulkUUID), nil, &status)
	return status, err
}

// asyncBulkPath prefixes an API path for the async bulk endpoints.
// https://developer.adobe.com/commerce/webapi/rest/use-rest/bulk-endpoints/
func asyncBulkPath(path string) string {
	return "/async/bulk" + path
}
