package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
)

// SMSClient talks to the SMS gateway that delivers OTP codes. DryRun
// skips the HTTP call entirely, which is how dev environments and tests
// run.
type SMSClient struct {
	APIURL string
	APIKey string
	Sender string
	DryRun bool

	httpClient *http.Client
}

type SendSMSResponse struct {
	Code int `json:"code"`
	Data struct {
		MessageID string `json:"messageId"`
	} `json:"data"`
}

func NewSMSClient(apiURL, apiKey, sender string, dryRun bool) *SMSClient {
	return &SMSClient{
		APIURL:     apiURL,
		APIKey:     apiKey,
		Sender:     sender,
		DryRun:     dryRun,
		httpClient: &http.Client{},
	}
}

// SendSMS delivers one message to one recipient.
func (c *SMSClient) SendSMS(to, text string) (*SendSMSResponse, error) {
	if c.DryRun || c.APIKey == "" {
		log.Printf("[sms][dry-run] to=%s sender=%q text=%q", to, c.Sender, text)
		return &SendSMSResponse{Code: 0}, nil
	}

	payload := map[string]string{
		"to":      to,
		"message": text,
		"api_key": c.APIKey,
	}
	if c.Sender != "" {
		payload["from"] = c.Sender
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequest(http.MethodPost, c.APIURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build SMS request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send SMS request: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	var result SendSMSResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("parse SMS response: %w", err)
	}
	if result.Code != 0 {
		return nil, fmt.Errorf("sms gateway returned error code: %d", result.Code)
	}
	return &result, nil
}
