package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/domain"
)

func (c *Client) ListClients(ctx context.Context) ([]domain.Client, error) {
	return listOf[domain.Client](ctx, c, "/clients/")
}

func (c *Client) ListLocations(ctx context.Context) ([]domain.Location, error) {
	return listOf[domain.Location](ctx, c, "/locations/")
}

func (c *Client) ListWastes(ctx context.Context) ([]domain.Waste, error) {
	return listOf[domain.Waste](ctx, c, "/wastes/")
}

func (c *Client) ListWasteSubcategories(ctx context.Context) ([]domain.WasteSubcategory, error) {
	return listOf[domain.WasteSubcategory](ctx, c, "/waste-subcategories/")
}

func (c *Client) ListTypeServices(ctx context.Context) ([]domain.TypeService, error) {
	return listOf[domain.TypeService](ctx, c, "/type-services/")
}

// listOf fetches a collection and validates every item.
func listOf[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &raw); err != nil {
		return nil, err
	}

	items, err := decodeList[T](raw)
	if err != nil {
		return nil, c.malformed(path, err.Error())
	}
	for i := range items {
		if err := c.validate.Struct(&items[i]); err != nil {
			return nil, c.malformed(path, fmt.Sprintf("item %d: %v", i, err))
		}
	}
	return items, nil
}

// decodeList accepts a bare array or an envelope with "data" or "results".
func decodeList[T any](raw json.RawMessage) ([]T, error) {
	var items []T
	if err := json.Unmarshal(raw, &items); err == nil {
		return items, nil
	}

	var env struct {
		Data    json.RawMessage `json:"data"`
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("expected a list: %w", err)
	}
	inner := env.Data
	if len(inner) == 0 {
		inner = env.Results
	}
	if len(inner) == 0 {
		return nil, fmt.Errorf("expected a list, got an object without data or results")
	}
	if err := json.Unmarshal(inner, &items); err != nil {
		return nil, fmt.Errorf("expected a list: %w", err)
	}
	return items, nil
}
