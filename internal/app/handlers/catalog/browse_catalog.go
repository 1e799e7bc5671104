package catalog

import (
	"context"

	"rukorent/internal/app/dto"
	"rukorent/internal/app/policies"
	"rukorent/internal/app/queries"
	"rukorent/internal/domain/ruko"
)

const (
	browseCatalogKey = "catalog.browse"
	getRukoKey       = "catalog.get"
)

// BrowseCatalogQuery filters and pages the full remote listing locally.
type BrowseCatalogQuery struct {
	Params ruko.CatalogParams
}

func (q BrowseCatalogQuery) Key() string { return browseCatalogKey }

type BrowseCatalogHandler struct {
	Catalog  policies.RukoCatalog
	PageSize int
}

func (h *BrowseCatalogHandler) Handle(ctx context.Context, q BrowseCatalogQuery) (dto.CatalogPage, error) {
	all, err := h.Catalog.ListRuko(ctx)
	if err != nil {
		return dto.CatalogPage{}, err
	}
	params := q.Params
	if params.PageSize <= 0 {
		params.PageSize = h.PageSize
	}
	return dto.MapCatalogPage(ruko.Browse(all, params)), nil
}

type GetRukoQuery struct {
	ID ruko.RukoID
}

func (q GetRukoQuery) Key() string { return getRukoKey }

type GetRukoHandler struct {
	Catalog policies.RukoCatalog
}

func (h *GetRukoHandler) Handle(ctx context.Context, q GetRukoQuery) (dto.RukoSummary, error) {
	r, err := h.Catalog.GetRuko(ctx, q.ID)
	if err != nil {
		return dto.RukoSummary{}, err
	}
	return dto.MapRuko(r), nil
}

var (
	_ queries.Handler[BrowseCatalogQuery, dto.CatalogPage] = (*BrowseCatalogHandler)(nil)
	_ queries.Handler[GetRukoQuery, dto.RukoSummary]       = (*GetRukoHandler)(nil)
)
