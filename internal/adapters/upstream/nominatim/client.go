// Package nominatim implementa a busca de geocodificação na API do OpenStreetMap.
package nominatim

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
	serviceName    = "nominatim"
	countryScope   = "gb"
	maxBodyBytes   = 1 << 20
	defaultBaseURL = "https://nominatim.openstreetmap.org"
)

type Config struct {
	BaseURL   string
	UserAgent string
}

type Client struct {
	http      *http.Client
	searchURL string
	userAgent string
}

var _ ports.Geocoder = (*Client)(nil)

func New(httpClient *http.Client, cfg Config) (*Client, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("http client is required")
	}
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("invalid nominatim base url: %w", err)
	}
	if strings.TrimSpace(cfg.UserAgent) == "" {
		return nil, fmt.Errorf("nominatim requires a descriptive user agent")
	}

	return &Client{http: httpClient, searchURL: base + "/search", userAgent: cfg.UserAgent}, nil
}

// Search pede um único candidato restrito à Grã-Bretanha.
func (c *Client) Search(ctx context.Context, query string) ([]domain.Place, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("countrycodes", countryScope)
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &domain.UpstreamError{Service: serviceName, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, upstream.TransportError(serviceName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &domain.UpstreamError{Service: serviceName, StatusCode: resp.StatusCode}
	}

	var places []domain.Place
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&places); err != nil {
		return nil, &domain.UpstreamError{Service: serviceName, Err: fmt.Errorf("decode response: %w", err)}
	}
	return places, nil
}
