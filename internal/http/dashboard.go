package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/jmehdipour/invoice-dashboard/internal/dashboard"
	"github.com/jmehdipour/invoice-dashboard/internal/model"
	echo "github.com/labstack/echo/v4"
)

// DashboardReader is implemented by *dashboard.Service.
type DashboardReader interface {
	FetchRevenue(ctx context.Context) ([]model.Revenue, error)
	FetchLatestInvoices(ctx context.Context) ([]model.LatestInvoice, error)
	FetchCardData(ctx context.Context) (model.CardData, error)
	FetchFilteredInvoices(ctx context.Context, text string, page int) ([]model.InvoicesTableRow, error)
	FetchInvoicesPages(ctx context.Context, text string) (int64, error)
	FetchInvoiceByID(ctx context.Context, id string) (*model.InvoiceForm, error)
	FetchCustomers(ctx context.Context) ([]model.CustomerField, error)
	FetchFilteredCustomers(ctx context.Context, text string) ([]model.CustomersTableRow, error)
}

var _ DashboardReader = (*dashboard.Service)(nil)

func registerDashboardRoutes(g *echo.Group, r DashboardReader) {
	g.GET("/revenue", revenueHandler(r))
	g.GET("/cards", cardsHandler(r))
	g.GET("/invoices", filteredInvoicesHandler(r))
	g.GET("/invoices/latest", latestInvoicesHandler(r))
	g.GET("/invoices/pages", invoicesPagesHandler(r))
	g.GET("/invoices/:id", invoiceHandler(r))
	g.GET("/customers", customersHandler(r))
	g.GET("/customers/filtered", filteredCustomersHandler(r))
}

// readError maps a dashboard error to a response without backend detail.
func readError(c echo.Context, err error) error {
	if errors.Is(err, dashboard.ErrDataAccess) {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	c.Logger().Errorf("unexpected dashboard error: %v", err)
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

// searchText is passed through verbatim; surrounding spaces are part of the
// substring being matched.
func searchText(c echo.Context) string {
	return c.QueryParam("query")
}

func revenueHandler(r DashboardReader) echo.HandlerFunc {
	return func(c echo.Context) error {
		rev, err := r.FetchRevenue(c.Request().Context())
		if err != nil {
			return readError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]any{"results": rev})
	}
}

func latestInvoicesHandler(r DashboardReader) echo.HandlerFunc {
	return func(c echo.Context) error {
		rows, err := r.FetchLatestInvoices(c.Request().Context())
		if err != nil {
			return readError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]any{"results": rows})
	}
}

func cardsHandler(r DashboardReader) echo.HandlerFunc {
	return func(c echo.Context) error {
		cards, err := r.FetchCardData(c.Request().Context())
		if err != nil {
			return readError(c, err)
		}
		return c.JSON(http.StatusOK, cards)
	}
}

func filteredInvoicesHandler(r DashboardReader) echo.HandlerFunc {
	return func(c echo.Context) error {
		page := 1
		if v := c.QueryParam("page"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				page = n
			}
		}

		rows, err := r.FetchFilteredInvoices(c.Request().Context(), searchText(c), page)
		if err != nil {
			return readError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]any{
			"page":    page,
			"count":   len(rows),
			"results": rows,
		})
	}
}

func invoicesPagesHandler(r DashboardReader) echo.HandlerFunc {
	return func(c echo.Context) error {
		pages, err := r.FetchInvoicesPages(c.Request().Context(), searchText(c))
		if err != nil {
			return readError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]any{"total_pages": pages})
	}
}

func invoiceHandler(r DashboardReader) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := strings.TrimSpace(c.Param("id"))
		if id == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}

		inv, err := r.FetchInvoiceByID(c.Request().Context(), id)
		if err != nil {
			return readError(c, err)
		}
		if inv == nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "invoice not found"})
		}
		return c.JSON(http.StatusOK, inv)
	}
}

func customersHandler(r DashboardReader) echo.HandlerFunc {
	return func(c echo.Context) error {
		rows, err := r.FetchCustomers(c.Request().Context())
		if err != nil {
			return readError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]any{"results": rows})
	}
}

func filteredCustomersHandler(r DashboardReader) echo.HandlerFunc {
	return func(c echo.Context) error {
		rows, err := r.FetchFilteredCustomers(c.Request().Context(), searchText(c))
		if err != nil {
			return readError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]any{"results": rows})
	}
}
