package providers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"salao_backend/pkg/utils"
)

// Subscription prices per plan, in BRL.
const (
	PlanBasicoPrice  = 99.0
	PlanPremiumPrice = 199.0
)

// BillingProvider integrates subscription billing for tenant clinics.
type BillingProvider interface {
	CreateCustomer(name, document, email string) (string, error)
	CreateSubscription(customerID, plan string, nextDueDate time.Time) (*Subscription, error)
}

// Subscription is the created billing subscription.
type Subscription struct {
	ID         string  `json:"id"`
	Value      float64 `json:"value"`
	PaymentURL string  `json:"payment_url"`
}

// AsaasConfig holds Asaas API access settings. Empty APIKey switches the
// client to a local stub that fabricates IDs, so development does not need
// billing credentials.
type AsaasConfig struct {
	APIKey  string
	BaseURL string
}

// AsaasConfigFromEnv reads Asaas settings from the environment.
func AsaasConfigFromEnv() AsaasConfig {
	return AsaasConfig{
		APIKey:  utils.Getenv("ASAAS_API_KEY", ""),
		BaseURL: utils.Getenv("ASAAS_BASE_URL", "https://api.asaas.com/v3"),
	}
}

type asaasClient struct {
	config AsaasConfig
	client *http.Client
}

// NewAsaasClient creates an Asaas billing client.
func NewAsaasClient(config AsaasConfig) BillingProvider {
	return &asaasClient{
		config: config,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// PlanPrice returns the monthly price for a plan name.
func PlanPrice(plan string) float64 {
	if plan == "premium" {
		return PlanPremiumPrice
	}
	return PlanBasicoPrice
}

func (c *asaasClient) post(path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding asaas payload: %w", err)
	}
	req, err := http.NewRequest(http.MethodPost, c.config.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building asaas request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("access_token", c.config.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling asaas %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("asaas %s returned status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding asaas response: %w", err)
	}
	return nil
}

func (c *asaasClient) CreateCustomer(name, document, email string) (string, error) {
	if c.config.APIKey == "" {
		utils.LogInfo("asaas disabled, using stub customer")
		return "cus_stub_" + document, nil
	}

	payload := map[string]string{
		"name":    name,
		"cpfCnpj": document,
		"email":   email,
	}
	var result struct {
		ID string `json:"id"`
	}
	if err := c.post("/customers", payload, &result); err != nil {
		return "", err
	}
	return result.ID, nil
}

func (c *asaasClient) CreateSubscription(customerID, plan string, nextDueDate time.Time) (*Subscription, error) {
	value := PlanPrice(plan)
	if c.config.APIKey == "" {
		utils.LogInfo("asaas disabled, using stub subscription")
		return &Subscription{ID: "sub_stub_" + customerID, Value: value}, nil
	}

	payload := map[string]interface{}{
		"customer":    customerID,
		"billingType": "UNDEFINED",
		"value":       value,
		"nextDueDate": nextDueDate.Format("2006-01-02"),
		"cycle":       "MONTHLY",
		"description": fmt.Sprintf("Assinatura plano %s", plan),
	}
	var result struct {
		ID         string  `json:"id"`
		Value      float64 `json:"value"`
		InvoiceURL string  `json:"invoiceUrl"`
	}
	if err := c.post("/subscriptions", payload, &result); err != nil {
		return nil, err
	}
	return &Subscription{ID: result.ID, Value: result.Value, PaymentURL: result.InvoiceURL}, nil
}
