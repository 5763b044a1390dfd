package smsgateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Gateway represents an SMS gateway interface
type Gateway interface {
	SendSMS(mobileNumber, message string) (string, error)
}

// HTTPGateway sends SMS through a JSON-over-HTTP provider
type HTTPGateway struct {
	BaseURL    string
	APIKey     string
	SenderName string
	httpClient *http.Client
}

// MockGateway simulates deliveries for local development and tests
type MockGateway struct{}

// NewHTTPGateway creates a new HTTPGateway
func NewHTTPGateway(baseURL, apiKey, senderName string) Gateway {
	return &HTTPGateway{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		SenderName: senderName,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewMockGateway creates a new MockGateway
func NewMockGateway() Gateway {
	return &MockGateway{}
}

// SendSMS sends an SMS through the provider and returns its message id
func (g *HTTPGateway) SendSMS(mobileNumber, message string) (string, error) {
	requestBody := map[string]string{
		"to":      mobileNumber,
		"from":    g.SenderName,
		"message": message,
	}
	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, g.BaseURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.APIKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send SMS: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("SMS provider returned %d: %s", resp.StatusCode, string(body))
	}

	var response struct {
		MessageID string `json:"messageId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode provider response: %w", err)
	}
	return response.MessageID, nil
}

// SendSMS simulates a successful delivery
func (g *MockGateway) SendSMS(mobileNumber, message string) (string, error) {
	return fmt.Sprintf("MOCK-MSG-%d", time.Now().UnixNano()), nil
}
