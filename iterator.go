package magento

import (
	"context"
	"iter"

	"github.com/google/go-querystring/query"
)

// listPage is the envelope returned by Magento listing endpoints.
type listPage struct {
	Items      []Entity `json:"items"`
	TotalCount int      `json:"total_count"`
}

// pageParams are the pagination query parameters of listing endpoints.
type pageParams struct {
	CurrentPage int `url:"searchCriteria[currentPage],omitempty"`
	PageSize    int `url:"searchCriteria[pageSize],omitempty"`
}

// Paginate returns an iterator over all items of a listing endpoint.
//
// Pages are fetched sequentially, starting at page 1 and strictly
// increasing. Iteration ends once total_count items have been yielded; an
// empty page also ends it, which bounds listings whose total_count
// overstates the data. Each call starts a fresh cursor. A failing page
// fetch yields the error and stops; items already yielded stand. Breaking
// out of the loop stops fetching.
func (c *Client) Paginate(ctx context.Context, path string, q *Query) iter.Seq2[Entity, error] {
	return func(yield func(Entity, error) bool) {
		pageSize := c.pageSize
		if q != nil && q.pageSize > 0 {
			pageSize = q.pageSize
		}

		params := pageParams{CurrentPage: 1, PageSize: pageSize}
		count := 0

		for {
			values := q.Values()
			pv, err := query.Values(params)
			if err != nil {
				yield(nil, err)
				return
			}
			for k := range pv {
				values.Set(k, pv.Get(k))
			}

			var page listPage
			if err := c.getJSON(ctx, path, values, &page); err != nil {
				yield(nil, err)
				return
			}

			if len(page.Items) == 0 {
				return
			}

			for _, item := range page.Items {
				if !yield(item, nil) {
					return
				}

				count++
				if count%1000 == 0 {
					c.logger.DebugContext(ctx, "loaded items", "path", path, "count", count)
				}
				if count >= page.TotalCount {
					return
				}
			}

			params.CurrentPage++
		}
	}
}
