package reporter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"presence/internal/metrics"
	"presence/internal/scanner"
)

const timeLayout = "2006-01-02 15:04:05"

// Client posts sightings to the ingestion service, one synchronous call
// per sighting. Delivery is best effort: the outcome is logged and the
// sighting is dropped on failure.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New creates a client for the given base URL.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type payload struct {
	StudentMACAddress string `json:"student_mac_address"`
	ClassroomID       int    `json:"classroom_id"`
	Timestamp         string `json:"timestamp"`
}

func payloadFor(s scanner.Sighting) payload {
	return payload{
		StudentMACAddress: s.DeviceAddr,
		ClassroomID:       s.ClassroomID,
		Timestamp:         s.ObservedAt.Format(timeLayout),
	}
}

// Send transmits one sighting. The error return is informational; the
// scan loop ignores it.
func (c *Client) Send(ctx context.Context, s scanner.Sighting) error {
	body, err := json.Marshal(payloadFor(s))
	if err != nil {
		return err
	}
	return c.post(ctx, body)
}

func (c *Client) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/attendance", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		metrics.ReportsFailed.Inc()
		log.Printf("attendance report failed: %v", err)
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		metrics.ReportsFailed.Inc()
		log.Printf("attendance report rejected: status %d", resp.StatusCode)
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	metrics.ReportsDelivered.Inc()
	log.Printf("attendance recorded: %s", body)
	return nil
}
