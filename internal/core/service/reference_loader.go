package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/domain"
	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/form"
	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/ports"
)

// ReferenceLoader fetches the reference sets a service form needs.
type ReferenceLoader struct {
	api ports.ReferenceAPI
	log zerolog.Logger
}

func NewReferenceLoader(api ports.ReferenceAPI, log zerolog.Logger) *ReferenceLoader {
	return &ReferenceLoader{api: api, log: log}
}

// Load runs the five list calls concurrently. The result is only returned
// once every call has completed; the first failure cancels the rest.
// A cancelled ctx (the caller went away) is returned as-is without logging
// at error level.
func (l *ReferenceLoader) Load(ctx context.Context) (form.References, error) {
	var (
		clients       []domain.Client
		locations     []domain.Location
		wastes        []domain.Waste
		subcategories []domain.WasteSubcategory
		typeServices  []domain.TypeService
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		clients, err = l.api.ListClients(gctx)
		return wrapList("clients", err)
	})
	g.Go(func() (err error) {
		locations, err = l.api.ListLocations(gctx)
		return wrapList("locations", err)
	})
	g.Go(func() (err error) {
		wastes, err = l.api.ListWastes(gctx)
		return wrapList("wastes", err)
	})
	g.Go(func() (err error) {
		subcategories, err = l.api.ListWasteSubcategories(gctx)
		return wrapList("waste subcategories", err)
	})
	g.Go(func() (err error) {
		typeServices, err = l.api.ListTypeServices(gctx)
		return wrapList("type services", err)
	})

	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			l.log.Debug().Err(ctx.Err()).Msg("reference load abandoned")
			return form.References{}, ctx.Err()
		}
		l.log.Warn().Err(err).Msg("reference load failed")
		return form.References{}, err
	}

	return form.References{
		Clients:       clients,
		Locations:     locations,
		Wastes:        wastes,
		Subcategories: subcategories,
		TypeServices:  typeServices,
		Loaded:        true,
	}, nil
}

func wrapList(what string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("list %s: %w", what, err)
}
