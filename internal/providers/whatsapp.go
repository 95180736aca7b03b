package providers

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"salao_backend/pkg/utils"
)

// MessageSender delivers a text message to a phone number.
type MessageSender interface {
	SendMessage(phone, body string) error
}

// WhatsAppConfig holds the gateway credentials. Empty AccountSID disables
// delivery; messages are logged and dropped.
type WhatsAppConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	BaseURL    string
}

// WhatsAppConfigFromEnv reads the gateway settings from the environment.
func WhatsAppConfigFromEnv() WhatsAppConfig {
	return WhatsAppConfig{
		AccountSID: utils.Getenv("TWILIO_ACCOUNT_SID", ""),
		AuthToken:  utils.Getenv("TWILIO_AUTH_TOKEN", ""),
		FromNumber: utils.Getenv("TWILIO_WHATSAPP_FROM", ""),
		BaseURL:    utils.Getenv("TWILIO_BASE_URL", "https://api.twilio.com"),
	}
}

type whatsAppSender struct {
	config WhatsAppConfig
	client *http.Client
}

// NewWhatsAppSender creates a WhatsApp gateway client.
func NewWhatsAppSender(config WhatsAppConfig) MessageSender {
	return &whatsAppSender{
		config: config,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// FormatBrazilianPhone normalizes a local phone number to E.164 with the
// Brazilian country code.
func FormatBrazilianPhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	normalized := digits.String()
	if strings.HasPrefix(normalized, "55") && len(normalized) >= 12 {
		return "+" + normalized
	}
	return "+55" + normalized
}

func (s *whatsAppSender) SendMessage(phone, body string) error {
	if s.config.AccountSID == "" {
		utils.LogInfo(fmt.Sprintf("whatsapp disabled, dropping message to %s", phone))
		return nil
	}

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", s.config.BaseURL, s.config.AccountSID)
	form := url.Values{}
	form.Set("From", "whatsapp:"+s.config.FromNumber)
	form.Set("To", "whatsapp:"+FormatBrazilianPhone(phone))
	form.Set("Body", body)

	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("building whatsapp request: %w", err)
	}
	req.SetBasicAuth(s.config.AccountSID, s.config.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending whatsapp message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("whatsapp gateway returned status %d", resp.StatusCode)
	}
	return nil
}
