package xendit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultAPIURL = "https://api.xendit.co"

// Config holds the gateway credentials and endpoint.
type Config struct {
	SecretKey string
	APIURL    string
}

// Client talks to the Xendit invoice API. The secret key is sent as the
// basic auth username with an empty password, per the gateway's scheme.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a new Xendit API client
func NewClient(config Config) *Client {
	if config.APIURL == "" {
		config.APIURL = defaultAPIURL
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Configured reports whether a secret key is present. Without one the
// payment endpoints refuse to operate rather than call the gateway.
func (c *Client) Configured() bool {
	return c.config.SecretKey != ""
}

// Customer identifies the payer on an invoice.
type Customer struct {
	GivenNames   string `json:"given_names"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobile_number,omitempty"`
}

// InvoiceItem is a line item shown on the hosted invoice page.
type InvoiceItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
	Category string `json:"category,omitempty"`
}

// CreateInvoiceRequest is the payload for POST /v2/invoices.
type CreateInvoiceRequest struct {
	ExternalID         string                 `json:"external_id"`
	Amount             int64                  `json:"amount"`
	Description        string                 `json:"description"`
	Customer           *Customer              `json:"customer,omitempty"`
	SuccessRedirectURL string                 `json:"success_redirect_url,omitempty"`
	FailureRedirectURL string                 `json:"failure_redirect_url,omitempty"`
	Currency           string                 `json:"currency,omitempty"`
	Items              []InvoiceItem          `json:"items,omitempty"`
	Metadata           map[string]interface{} `json:"metadata,omitempty"`
	PaymentMethods     []string               `json:"payment_methods,omitempty"`
}

// Invoice is the gateway's representation of a created invoice.
type Invoice struct {
	ID         string `json:"id"`
	ExternalID string `json:"external_id"`
	Status     string `json:"status"`
	Amount     int64  `json:"amount"`
	InvoiceURL string `json:"invoice_url"`
	ExpiryDate string `json:"expiry_date"`
}

// CreateInvoice creates a hosted invoice and returns its id and payment URL.
func (c *Client) CreateInvoice(ctx context.Context, request CreateInvoiceRequest) (*Invoice, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal invoice request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.APIURL+"/v2/invoices", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.config.SecretKey, "")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, string(body))
	}

	var invoice Invoice
	if err := json.NewDecoder(resp.Body).Decode(&invoice); err != nil {
		return nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}
	return &invoice, nil
}
