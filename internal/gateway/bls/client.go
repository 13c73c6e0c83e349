package bls

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"macrostat/internal/config"
	"macrostat/internal/series"
)

// Client issues range requests against the timeseries endpoint.
type Client struct {
	http            *resty.Client
	url             string
	registrationKey string
}

// NewClient constructs a BLS client from configuration.
func NewClient(cfg config.BLSConfig) (*Client, error) {
	url := strings.TrimSpace(cfg.APIURL)
	if url == "" {
		return nil, fmt.Errorf("bls.api_url cannot be empty")
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	http := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	return &Client{
		http:            http,
		url:             url,
		registrationKey: strings.TrimSpace(cfg.RegistrationKey),
	}, nil
}

// Fetch requests the given series for the inclusive [startYear, endYear]
// window and decodes the payload. Transport failures, non-2xx statuses
// and malformed JSON all come back as an error with a zero Response;
// the caller decides whether "no usable data" is fatal.
func (c *Client) Fetch(ctx context.Context, seriesIDs []string, startYear, endYear int) (Response, error) {
	body := request{
		SeriesID:        seriesIDs,
		StartYear:       strconv.Itoa(startYear),
		EndYear:         strconv.Itoa(endYear),
		RegistrationKey: c.registrationKey,
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post(c.url)
	if err != nil {
		return Response{}, fmt.Errorf("bls request %d-%d failed: %w", startYear, endYear, err)
	}
	if resp.IsError() {
		return Response{}, fmt.Errorf("bls request %d-%d returned HTTP %d", startYear, endYear, resp.StatusCode())
	}
	return ParseResponse(resp.Body())
}

// ParseResponse decodes a raw payload. Status and message are pulled
// leniently (message is sometimes a string, sometimes an array); the
// series blocks decode strictly. A payload missing Results yields an
// empty Response with no error.
func ParseResponse(body []byte) (Response, error) {
	if !gjson.ValidBytes(body) {
		return Response{}, fmt.Errorf("bls response is not valid JSON")
	}
	root := gjson.ParseBytes(body)

	out := Response{Status: root.Get("status").String()}
	msg := root.Get("message")
	switch {
	case msg.IsArray():
		for _, m := range msg.Array() {
			if s := strings.TrimSpace(m.String()); s != "" {
				out.Messages = append(out.Messages, s)
			}
		}
	case msg.Exists():
		if s := strings.TrimSpace(msg.String()); s != "" {
			out.Messages = append(out.Messages, s)
		}
	}

	blocks := root.Get("Results.series")
	if !blocks.Exists() {
		return out, nil
	}
	var decoded []series.Block
	if err := json.Unmarshal([]byte(blocks.Raw), &decoded); err != nil {
		return Response{}, fmt.Errorf("decoding bls series failed: %w", err)
	}
	out.Series = decoded
	return out, nil
}
