package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/domain"
)

// List returns a collection as-is for the list views.
func (c *Client) List(ctx context.Context, resource string, query map[string]string) (json.RawMessage, error) {
	if _, ok := domain.Resources[resource]; !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownResource, resource)
	}
	q := url.Values{}
	for k, v := range query {
		q.Set(k, v)
	}
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/"+resource+"/", q, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// Get returns one item of a collection.
func (c *Client) Get(ctx context.Context, resource string, id int64) (json.RawMessage, error) {
	if _, ok := domain.Resources[resource]; !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownResource, resource)
	}
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/%s/%d/", resource, id), nil, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// Approve posts the approve verb on a service or certificate.
func (c *Client) Approve(ctx context.Context, resource string, id int64) (json.RawMessage, error) {
	if _, ok := domain.ApprovableResources[resource]; !ok {
		return nil, fmt.Errorf("%w: %q cannot be approved", domain.ErrUnknownResource, resource)
	}
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/%s/%d/approve/", resource, id), nil, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
