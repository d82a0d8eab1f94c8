package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// FetchProducts returns the raw product records. Records are kept as
// raw JSON so the catalog mapper can drop malformed entries one by one
// instead of failing the whole load.
func (c *Client) FetchProducts(ctx context.Context) ([]json.RawMessage, error) {
	var records []json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/products", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) FetchProduct(ctx context.Context, id int64) (json.RawMessage, error) {
	var record json.RawMessage
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &record); err != nil {
		return nil, err
	}
	return record, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, payload interface{}) (json.RawMessage, error) {
	var record json.RawMessage
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), payload, &record); err != nil {
		return nil, err
	}
	return record, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil)
}

// UploadProduct creates a product from a multipart form carrying an
// optional image file.
func (c *Client) UploadProduct(ctx context.Context, contentType string, body io.Reader) (json.RawMessage, error) {
	var record json.RawMessage
	if err := c.doMultipart(ctx, http.MethodPost, "/products/upload", contentType, body, &record); err != nil {
		return nil, err
	}
	return record, nil
}

func (c *Client) UpdateProductUpload(ctx context.Context, id int64, contentType string, body io.Reader) (json.RawMessage, error) {
	var record json.RawMessage
	path := fmt.Sprintf("/products/%d/upload", id)
	if err := c.doMultipart(ctx, http.MethodPut, path, contentType, body, &record); err != nil {
		return nil, err
	}
	return record, nil
}

// ApplySale asks the backend to put the product on sale at the given
// percentage. The backend computes and stores the discounted price.
func (c *Client) ApplySale(ctx context.Context, id int64, percent float64) (json.RawMessage, error) {
	var record json.RawMessage
	path := fmt.Sprintf("/products/%d/sale/%g", id, percent)
	if err := c.do(ctx, http.MethodPut, path, nil, &record); err != nil {
		return nil, err
	}
	return record, nil
}

func (c *Client) RemoveSale(ctx context.Context, id int64) (json.RawMessage, error) {
	var record json.RawMessage
	path := fmt.Sprintf("/products/%d/sale/remove", id)
	if err := c.do(ctx, http.MethodPut, path, nil, &record); err != nil {
		return nil, err
	}
	return record, nil
}
