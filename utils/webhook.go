package utils

import (
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

// PostOrderWebhook pushes an order event to the webhook URL configured via
// ORDER_WEBHOOK_URL. Delivery is best-effort; callers treat failures as
// non-fatal. A missing configuration disables the webhook silently.
func PostOrderWebhook(event string, payload any) error {
	webhookURL := os.Getenv("ORDER_WEBHOOK_URL")
	if webhookURL == "" {
		return nil
	}

	resp, err := resty.New().SetTimeout(10 * time.Second).
		R().
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(map[string]any{"event": event, "data": payload}).
		Post(webhookURL)
	if err != nil {
		return err
	}

	if resp.StatusCode() >= 300 {
		return fmt.Errorf("order webhook responded with status %d", resp.StatusCode())
	}

	return nil
}
