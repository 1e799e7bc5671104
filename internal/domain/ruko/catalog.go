package ruko

import "strings"

// PriceBucket is one of the fixed price bands offered by the catalog filter.
type PriceBucket string

const (
	PriceAny     PriceBucket = "all"
	PriceUnder5  PriceBucket = "under5"
	Price5To8    PriceBucket = "5-8"
	PriceAbove8  PriceBucket = "above8"
	sizeAny                  = "all"
	priceFiveMio             = 5_000_000
	priceEightMio            = 8_000_000

	DefaultPageSize = 9
)

// CatalogParams describe catalog filters and paging options.
type CatalogParams struct {
	Search   string
	Size     string
	Price    PriceBucket
	Page     int
	PageSize int
}

// Normalized returns a sanitized copy of params.
func (p CatalogParams) Normalized() CatalogParams {
	n := p
	n.Search = strings.TrimSpace(strings.ToLower(n.Search))
	n.Size = strings.TrimSpace(n.Size)
	if n.Size == "" {
		n.Size = sizeAny
	}
	switch n.Price {
	case PriceUnder5, Price5To8, PriceAbove8:
	default:
		n.Price = PriceAny
	}
	if n.Page < 1 {
		n.Page = 1
	}
	if n.PageSize <= 0 {
		n.PageSize = DefaultPageSize
	}
	return n
}

func (p CatalogParams) matches(r Ruko) bool {
	if p.Search != "" && !strings.Contains(strings.ToLower(r.Name), p.Search) {
		return false
	}
	if p.Size != sizeAny && r.Size != p.Size {
		return false
	}
	price := r.Price.Amount
	switch p.Price {
	case PriceUnder5:
		return price < priceFiveMio
	case Price5To8:
		return price >= priceFiveMio && price <= priceEightMio
	case PriceAbove8:
		return price > priceEightMio
	}
	return true
}

// PageLink is one entry of the pager. Ellipsis entries stand for a collapsed run of pages.
type PageLink struct {
	Page     int  `json:"page"`
	Current  bool `json:"current,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

// CatalogPage wraps the visible slice of the filtered catalog with pager meta.
type CatalogPage struct {
	Items      []Ruko
	Total      int
	Page       int
	PageSize   int
	TotalPages int
	From       int
	To         int
	Links      []PageLink
}

// Browse filters all in order and cuts out the requested page.
func Browse(all []Ruko, params CatalogParams) CatalogPage {
	p := params.Normalized()
	filtered := make([]Ruko, 0, len(all))
	for _, r := range all {
		if p.matches(r) {
			filtered = append(filtered, r)
		}
	}
	total := len(filtered)
	totalPages := (total + p.PageSize - 1) / p.PageSize
	start := (p.Page - 1) * p.PageSize
	page := CatalogPage{
		Items:      []Ruko{},
		Total:      total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: totalPages,
		Links:      pageLinks(p.Page, totalPages),
	}
	if start >= total {
		return page
	}
	end := min(start+p.PageSize, total)
	page.Items = filtered[start:end]
	page.From = start + 1
	page.To = end
	return page
}

// pageLinks keeps the first, last, current and its neighbours; pages two away
// from current collapse into an ellipsis.
func pageLinks(current, totalPages int) []PageLink {
	if totalPages <= 1 {
		return nil
	}
	links := make([]PageLink, 0, 7)
	for page := 1; page <= totalPages; page++ {
		switch {
		case page == 1 || page == totalPages || (page >= current-1 && page <= current+1):
			links = append(links, PageLink{Page: page, Current: page == current})
		case page == current-2 || page == current+2:
			links = append(links, PageLink{Page: page, Ellipsis: true})
		}
	}
	return links
}
