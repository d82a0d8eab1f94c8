package backend

import (
	"context"
	"net/http"

	"storefront/internal/models"
)

func (c *Client) CreateClient(ctx context.Context, client models.Client) (models.Client, error) {
	var created models.Client
	if err := c.do(ctx, http.MethodPost, "/clients", client, &created); err != nil {
		return models.Client{}, err
	}
	return created, nil
}
