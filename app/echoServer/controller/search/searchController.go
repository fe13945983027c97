package search

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	catalogsvc "github.com/nurkholifah99/campus-library-hub/service/catalog"
	searchsvc "github.com/nurkholifah99/campus-library-hub/service/search"
)

type Controller struct {
	Svc catalogsvc.Service
	Log *slog.Logger
}

// GET /v1/search?q=&category=&year=&availability=
func (h *Controller) Search(c echo.Context) error {
	q := searchsvc.Query{
		Text:         c.QueryParam("q"),
		Category:     c.QueryParam("category"),
		Availability: searchsvc.Availability(c.QueryParam("availability")),
	}
	if y := c.QueryParam("year"); y != "" && y != searchsvc.Wildcard {
		year, err := strconv.Atoi(y)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid year"})
		}
		q.Year = year
	}

	books, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("search list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": searchsvc.Search(books, q)})
}

// GET /v1/search/suggest?q=
func (h *Controller) Suggest(c echo.Context) error {
	books, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("suggest list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": searchsvc.Autocomplete(books, c.QueryParam("q"))})
}

// GET /v1/search/facets
func (h *Controller) Facets(c echo.Context) error {
	books, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("facets list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"categories": searchsvc.Categories(books),
		"years":      searchsvc.Years(books),
	})
}
