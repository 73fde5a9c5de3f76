package magento

import (
	"context"
	"iter"
	"strings"
)

// DefaultBatchSize is the number of keys per request used by the batch
// helpers. It keeps "in" filter values well below URL length limits.
const DefaultBatchSize = 50

// BatchGet streams the entities of a listing endpoint matching a large
// key set, chunking the keys into "in"-condition queries of batchSize
// keys each (DefaultBatchSize when zero). Results arrive in batch order.
func (c *Client) BatchGet(ctx context.Context, path, field string, keys []string, batchSize int) iter.Seq2[Entity, error] {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return func(yield func(Entity, error) bool) {
		for start := 0; start < len(keys); start += batchSize {
			batch := keys[start:min(start+batchSize, len(keys))]
			q := NewQuery().Filter(Filter{
				Field:         field,
				Value:         strings.Join(batch, ","),
				ConditionType: ConditionIn,
			}).Page(1, batchSize)

			for item, err := range c.Paginate(ctx, path, q) {
				if !yield(item, err) {
					return
				}
				if err != nil {
					return
				}
			}
		}
	}
}

// ProductsBySKU streams the products matching the given SKUs in batches.
func (c *Client) ProductsBySKU(ctx context.Context, skus []SKU) iter.Seq2[Product, error] {
	return c.BatchGet(ctx, "/V1/products", "sku", skus, DefaultBatchSize)
}

// SourceItemsBySKUBatches streams the source items matching the given
// SKUs in batches.
func (c *Client) SourceItemsBySKUBatches(ctx context.Context, skus []SKU) iter.Seq2[SourceItem, error] {
	return c.BatchGet(ctx, "/V1/inventory/source-items", "sku", skus, DefaultBatchSize)
}

// ProductBatchSaver buffers product updates and flushes them through the
// async bulk API in fixed-size batches. It is not safe for concurrent
// use.
type ProductBatchSaver struct {
	client    *Client
	batchSize int
	buf       []Product

	// SentItems and SentBatches count what was flushed so far.
	SentItems   int
	SentBatches int
}

// NewProductBatchSaver returns a saver flushing every batchSize products
// (DefaultBatchSize when zero). Call [ProductBatchSaver.Flush] when done.
func (c *Client) NewProductBatchSaver(batchSize int) *ProductBatchSaver {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &ProductBatchSaver{client: c, batchSize: batchSize}
}

// Save queues a product update, flushing if the buffer is full. The
// update must contain an "sku" key.
func (s *ProductBatchSaver) Save(ctx context.Context, product Product) error {
	s.buf = append(s.buf, product)
	if len(s.buf) >= s.batchSize {
		return s.Flush(ctx)
	}

	return nil
}

// Flush sends any buffered updates.
func (s *ProductBatchSaver) Flush(ctx context.Context) error {
	if len(s.buf) == 0 {
		return nil
	}

	if _, err := s.client.AsyncUpdateProducts(ctx, s.buf); err != nil {
		return err
	}

	s.SentItems += len(s.buf)
	s.SentBatches++
	s.buf = s.buf[:0]

	return nil
}
