// Package police consulta a API pública de crimes de rua do data.police.uk.
package police

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/JeanGrijp/crime-map/internal/adapters/upstream"
	"github.com/JeanGrijp/crime-map/internal/core/domain"
	"github.com/JeanGrijp/crime-map/internal/core/ports"
)

const (
	serviceName    = "police"
	maxBodyBytes   = 32 << 20
	defaultBaseURL = "https://data.police.uk/api"
	msgNoData      = "No data found for the specified location and date"
)

type Config struct {
	BaseURL   string
	UserAgent string
}

type Client struct {
	http      *http.Client
	crimesURL string
	userAgent string
}

var _ ports.CrimeSource = (*Client)(nil)

func New(httpClient *http.Client, cfg Config) (*Client, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("http client is required")
	}
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("invalid police api base url: %w", err)
	}

	return &Client{http: httpClient, crimesURL: base + "/crimes-street/all-crime", userAgent: cfg.UserAgent}, nil
}

func (c *Client) StreetCrimes(ctx context.Context, query domain.CrimeQuery) ([]domain.Crime, error) {
	params := url.Values{}
	params.Set("date", query.Month)
	params.Set("lat", domain.FormatCoordinate(query.Latitude))
	params.Set("lng", domain.FormatCoordinate(query.Longitude))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.crimesURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &domain.UpstreamError{Service: serviceName, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, upstream.TransportError(serviceName, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &domain.NotFoundError{Message: msgNoData}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &domain.UpstreamError{Service: serviceName, StatusCode: resp.StatusCode}
	}

	crimes := []domain.Crime{}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&crimes); err != nil {
		return nil, &domain.UpstreamError{Service: serviceName, Err: fmt.Errorf("decode response: %w", err)}
	}
	return crimes, nil
}
