package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/domain"
)

// serviceResponse accepts the service either bare or wrapped in "data".
type serviceResponse struct {
	domain.Service
	Data *domain.Service `json:"data"`
}

func (r *serviceResponse) result() *domain.Service {
	if r.Data != nil {
		return r.Data
	}
	return &r.Service
}

func (c *Client) CreateService(ctx context.Context, p domain.ServicePayload) (*domain.Service, error) {
	return c.createService(ctx, "/services/", p)
}

func (c *Client) CreateRecurringService(ctx context.Context, p domain.RecurringServicePayload) (*domain.Service, error) {
	return c.createService(ctx, "/recurring-services/", p)
}

func (c *Client) createService(ctx context.Context, path string, body any) (*domain.Service, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, path, nil, body, &raw); err != nil {
		return nil, err
	}
	var resp serviceResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, c.malformed(path, err.Error())
	}
	svc := resp.result()
	if err := c.validate.Struct(svc); err != nil {
		return nil, c.malformed(path, err.Error())
	}
	return svc, nil
}

// RecurringAction posts one of the schedule verbs (pause, resume,
// generate_next_service); the state machine itself lives in the API.
func (c *Client) RecurringAction(ctx context.Context, id int64, action domain.RecurringAction) (json.RawMessage, error) {
	var raw json.RawMessage
	path := fmt.Sprintf("/recurring-services/%d/%s/", id, url.PathEscape(string(action)))
	if err := c.do(ctx, http.MethodPost, path, nil, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
