package utils

import (
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

// SendWhatsAppMessage posts a text message through the WhatsApp Cloud API.
// Best-effort: callers log failures and move on.
func SendWhatsAppMessage(phone, message string) error {
	token := os.Getenv("WHATSAPP_ACCESS_TOKEN")
	phoneID := os.Getenv("WHATSAPP_PHONE_NUMBER_ID")
	if token == "" || phoneID == "" {
		return fmt.Errorf("whatsapp credentials are not set")
	}

	body := map[string]any{
		"messaging_product": "whatsapp",
		"to":                phone,
		"type":              "text",
		"text":              map[string]string{"body": message},
	}

	resp, err := resty.New().SetTimeout(15 * time.Second).
		R().
		SetHeader("Authorization", "Bearer "+token).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post("https://graph.facebook.com/v19.0/" + phoneID + "/messages")

	if err != nil {
		return err
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("whatsapp send failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return nil
}
