package sms

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// BulkSMSProvider sends single messages through the BulkSMS JSON API using
// basic auth.
type BulkSMSProvider struct {
	client *resty.Client
	apiURI string
}

type bulkSMSMessage struct {
	To                  []string `json:"to"`
	Body                string   `json:"body"`
	Encoding            string   `json:"encoding"`
	LongMessageMaxParts string   `json:"longMessageMaxParts"`
}

type bulkSMSResult struct {
	ID     string `json:"id"`
	Status struct {
		Type string `json:"type"`
	} `json:"status"`
}

func NewBulkSMSProvider(username, password, apiURI string) (*BulkSMSProvider, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("missing BulkSMS credentials")
	}

	client := resty.New().
		SetBasicAuth(username, password).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)

	return &BulkSMSProvider{
		client: client,
		apiURI: apiURI,
	}, nil
}

func (p *BulkSMSProvider) Name() string { return "bulksms" }

func (p *BulkSMSProvider) Send(ctx context.Context, phone, message string) error {
	// BulkSMS wants E.164; numbers without a country code are treated as
	// South African.
	if !strings.HasPrefix(phone, "+") {
		phone = "+27" + strings.TrimLeft(phone, "0")
	}

	var results []bulkSMSResult
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(&bulkSMSMessage{
			To:                  []string{phone},
			Body:                message,
			Encoding:            "UNICODE",
			LongMessageMaxParts: "30",
		}).
		SetResult(&results).
		Post(p.apiURI)

	if err != nil {
		return fmt.Errorf("bulksms request error sending to %s: %w", phone, err)
	}
	if resp.IsError() {
		return fmt.Errorf("bulksms API error sending to %s: %s - %s", phone, resp.Status(), resp.String())
	}
	if len(results) == 0 || results[0].Status.Type != "ACCEPTED" {
		return fmt.Errorf("bulksms unexpected API response for %s: %s", phone, resp.String())
	}
	return nil
}
