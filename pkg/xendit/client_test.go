package xendit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInvoiceSendsAuthAndPayload(t *testing.T) {
	var gotAuth string
	var gotBody CreateInvoiceRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/invoices", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Empty(t, pass)
		gotAuth = user

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Invoice{
			ID:         "inv-123",
			ExternalID: gotBody.ExternalID,
			Status:     "PENDING",
			Amount:     gotBody.Amount,
			InvoiceURL: "https://checkout.xendit.co/web/inv-123",
		})
	}))
	defer server.Close()

	client := NewClient(Config{SecretKey: "xnd_test_key", APIURL: server.URL})
	require.True(t, client.Configured())

	invoice, err := client.CreateInvoice(context.Background(), CreateInvoiceRequest{
		ExternalID:  "booking-abc-1756713600",
		Amount:      360000,
		Description: "Bus tickets Jakarta to Bandung",
		Currency:    "IDR",
		Customer:    &Customer{GivenNames: "Budi Santoso", Email: "budi@example.com"},
		Items: []InvoiceItem{
			{Name: "Seat A1", Quantity: 1, Price: 180000, Category: "Bus Ticket"},
			{Name: "Seat A2", Quantity: 1, Price: 180000, Category: "Bus Ticket"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "xnd_test_key", gotAuth)
	assert.Equal(t, "booking-abc-1756713600", gotBody.ExternalID)
	assert.Equal(t, int64(360000), gotBody.Amount)
	assert.Equal(t, "IDR", gotBody.Currency)
	assert.Len(t, gotBody.Items, 2)

	assert.Equal(t, "inv-123", invoice.ID)
	assert.Equal(t, "https://checkout.xendit.co/web/inv-123", invoice.InvoiceURL)
}

func TestCreateInvoiceSurfacesGatewayErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error_code":"INVALID_API_KEY"}`))
	}))
	defer server.Close()

	client := NewClient(Config{SecretKey: "bad", APIURL: server.URL})

	_, err := client.CreateInvoice(context.Background(), CreateInvoiceRequest{ExternalID: "x", Amount: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_API_KEY")
}

func TestConfigured(t *testing.T) {
	assert.False(t, NewClient(Config{}).Configured())
	assert.True(t, NewClient(Config{SecretKey: "xnd_dev"}).Configured())
}
