package dto

import (
	"rukorent/internal/domain/ruko"
)

type RukoSummary struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       MoneyDTO `json:"price"`
	RentalType  string   `json:"rental_type"`
	PriceLabel  string   `json:"price_label"`
	Size        string   `json:"size,omitempty"`
	Location    string   `json:"location,omitempty"`
	Description string   `json:"description,omitempty"`
	Image       string   `json:"image,omitempty"`
}

type CatalogPage struct {
	Items      []RukoSummary   `json:"items"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
	From       int             `json:"from"`
	To         int             `json:"to"`
	Links      []ruko.PageLink `json:"links,omitempty"`
}

func MapRuko(r ruko.Ruko) RukoSummary {
	return RukoSummary{
		ID:          string(r.ID),
		Name:        r.Name,
		Price:       MapMoney(r.Price),
		RentalType:  string(r.RentalType),
		PriceLabel:  r.RentalType.Label(),
		Size:        r.Size,
		Location:    r.Location,
		Description: r.Description,
		Image:       r.Image,
	}
}

func MapCatalogPage(p ruko.CatalogPage) CatalogPage {
	items := make([]RukoSummary, 0, len(p.Items))
	for _, r := range p.Items {
		items = append(items, MapRuko(r))
	}
	return CatalogPage{
		Items:      items,
		Total:      p.Total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages,
		From:       p.From,
		To:         p.To,
		Links:      p.Links,
	}
}
