package ginserver

import (
	"log/slog"
	"net/http"
	"strconv"

	gin "github.com/gin-gonic/gin"

	"rukorent/internal/app/dto"
	CatalogApp "rukorent/internal/app/handlers/catalog"
	"rukorent/internal/app/queries"
	"rukorent/internal/domain/ruko"
)

type CatalogHandler struct {
	Queries queries.Bus
	Logger  *slog.Logger
}

func (h CatalogHandler) Browse(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	params := ruko.CatalogParams{
		Search: c.Query("search"),
		Size:   c.Query("size"),
		Price:  ruko.PriceBucket(c.Query("price")),
		Page:   page,
	}
	result, err := queries.Ask[CatalogApp.BrowseCatalogQuery, dto.CatalogPage](c.Request.Context(), h.Queries, CatalogApp.BrowseCatalogQuery{Params: params})
	if err != nil {
		renderError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h CatalogHandler) Detail(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	result, err := queries.Ask[CatalogApp.GetRukoQuery, dto.RukoSummary](c.Request.Context(), h.Queries, CatalogApp.GetRukoQuery{ID: ruko.RukoID(c.Param("id"))})
	if err != nil {
		renderError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ CatalogHTTP = CatalogHandler{}
