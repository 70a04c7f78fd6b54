package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jmehdipour/invoice-dashboard/internal/config"
	"github.com/jmehdipour/invoice-dashboard/internal/dashboard"
	"github.com/jmehdipour/invoice-dashboard/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReader struct {
	err      error
	invoice  *model.InvoiceForm
	gotText  string
	gotPage  int
	gotID    string
	pages    int64
	customer []model.CustomersTableRow
}

func (s *stubReader) FetchRevenue(ctx context.Context) ([]model.Revenue, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []model.Revenue{{Month: "Jan", Revenue: 2000}}, nil
}

func (s *stubReader) FetchLatestInvoices(ctx context.Context) ([]model.LatestInvoice, error) {
	return []model.LatestInvoice{}, s.err
}

func (s *stubReader) FetchCardData(ctx context.Context) (model.CardData, error) {
	return model.CardData{NumberOfCustomers: 2, TotalPaidInvoices: "$1.00"}, s.err
}

func (s *stubReader) FetchFilteredInvoices(ctx context.Context, text string, page int) ([]model.InvoicesTableRow, error) {
	s.gotText, s.gotPage = text, page
	return []model.InvoicesTableRow{}, s.err
}

func (s *stubReader) FetchInvoicesPages(ctx context.Context, text string) (int64, error) {
	s.gotText = text
	return s.pages, s.err
}

func (s *stubReader) FetchInvoiceByID(ctx context.Context, id string) (*model.InvoiceForm, error) {
	s.gotID = id
	return s.invoice, s.err
}

func (s *stubReader) FetchCustomers(ctx context.Context) ([]model.CustomerField, error) {
	return []model.CustomerField{{ID: "c1", Name: "Amy"}}, s.err
}

func (s *stubReader) FetchFilteredCustomers(ctx context.Context, text string) ([]model.CustomersTableRow, error) {
	s.gotText = text
	return s.customer, s.err
}

func do(t *testing.T, r DashboardReader, cfg config.Config, target string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	srv := NewServer(cfg, r, nil, nil)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestRevenueHandler(t *testing.T) {
	rec := do(t, &stubReader{}, config.Config{}, "/v1/revenue", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Results []model.Revenue `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []model.Revenue{{Month: "Jan", Revenue: 2000}}, body.Results)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestFilteredInvoicesHandler_KeepsQueryVerbatim(t *testing.T) {
	r := &stubReader{}

	rec := do(t, r, config.Config{}, "/v1/invoices?query=%20lee%20&page=3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, " lee ", r.gotText)
	assert.Equal(t, 3, r.gotPage)

	rec = do(t, r, config.Config{}, "/v1/invoices?page=abc", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, r.gotPage)
}

func TestInvoicesPagesHandler(t *testing.T) {
	r := &stubReader{pages: 4}
	rec := do(t, r, config.Config{}, "/v1/invoices/pages?query=a", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total_pages":4}`, rec.Body.String())
}

func TestInvoiceHandler(t *testing.T) {
	r := &stubReader{invoice: &model.InvoiceForm{ID: "i1", CustomerID: "c1", Amount: decimal.NewFromInt(100), Status: model.InvoicePaid}}
	rec := do(t, r, config.Config{}, "/v1/invoices/i1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "i1", r.gotID)
	assert.Contains(t, rec.Body.String(), `"status":"paid"`)

	rec = do(t, &stubReader{}, config.Config{}, "/v1/invoices/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLatestAndCardsRoutes(t *testing.T) {
	rec := do(t, &stubReader{}, config.Config{}, "/v1/invoices/latest", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, &stubReader{}, config.Config{}, "/v1/cards", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"number_of_customers":2`)
	assert.NotContains(t, rec.Body.String(), "PaidMinor")
}

func TestCustomersRoutes(t *testing.T) {
	r := &stubReader{customer: []model.CustomersTableRow{{ID: "c1", TotalInvoices: 3}}}

	rec := do(t, r, config.Config{}, "/v1/customers/filtered?query=amy", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "amy", r.gotText)
	assert.Contains(t, rec.Body.String(), `"total_invoices":3`)

	rec = do(t, r, config.Config{}, "/v1/customers", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDataAccessErrorIsGeneric(t *testing.T) {
	r := &stubReader{err: &dashboard.DataAccessError{Op: "revenue", Message: "failed to fetch revenue data"}}

	rec := do(t, r, config.Config{}, "/v1/revenue", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"failed to fetch revenue data"}`, rec.Body.String())
}

func TestUnexpectedErrorIsHidden(t *testing.T) {
	r := &stubReader{err: errors.New("dial tcp 10.0.0.3:3306: connection refused")}

	rec := do(t, r, config.Config{}, "/v1/customers", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.3")
}

func TestAuthAppliesToV1Only(t *testing.T) {
	cfg := config.Config{Auth: config.AuthConfig{APIKeys: []string{"k1"}}}

	rec := do(t, &stubReader{}, cfg, "/v1/revenue", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, &stubReader{}, cfg, "/v1/revenue", map[string]string{"X-API-Key": "k1"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, &stubReader{}, cfg, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
