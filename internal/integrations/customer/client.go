// Package customer integrates with the platform's customer service,
// which answers whether a registered customer exists for a CPF.
package customer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Customer is the customer-service record for a CPF.
type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"nome"`
	CPF   string `json:"cpf"`
	Email string `json:"email"`
}

// Validator confirms that a customer record exists for a CPF.
// A nil Customer with a nil error means no such customer is registered.
type Validator interface {
	GetCustomer(ctx context.Context, token, cpf string) (*Customer, error)
}

// Client is the HTTP implementation of Validator.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetCustomer calls GET {base}/cliente/findByCpf/{cpf} with the caller's
// bearer token. A 404 means the customer is not registered; any other
// failure is an infrastructure error and propagates to the caller.
func (c *Client) GetCustomer(ctx context.Context, token, cpf string) (*Customer, error) {
	url := fmt.Sprintf("%s/cliente/findByCpf/%s", c.baseURL, cpf)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("customer service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("customer service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read customer response: %w", err)
	}
	if len(body) == 0 {
		return nil, nil
	}

	var customer Customer
	if err := json.Unmarshal(body, &customer); err != nil {
		return nil, fmt.Errorf("failed to decode customer response: %w", err)
	}
	return &customer, nil
}
