// Package auction talks to the upstream domain-auction feed.
package auction

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Feed maps the nested structure of the auction API's listings payload.
type Feed struct {
	Data struct {
		Listings []Listing `json:"listings"`
	} `json:"data"`
}

// Listing is the raw payload for one auction lot. Status moves through
// "active" -> "sold"/"closed", or "removed" when the venue pulls it.
type Listing struct {
	ID          string  `json:"id"`
	Domain      string  `json:"domain"`
	Status      string  `json:"status"`
	Venue       string  `json:"venue"`
	CurrentBid  float64 `json:"current_bid"`
	BuyNowPrice float64 `json:"buy_now_price"`
	SalePrice   float64 `json:"sale_price"` // set once status is "sold"
	NumBids     int     `json:"num_bids"`
	NumWatchers int     `json:"num_watchers"`
	EndTimeUtc  float64 `json:"end_time_utc"`
	URL         string  `json:"url"`
	SellerNotes string  `json:"seller_notes"`
}

// Client handles talking to the auction feed API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient returns an initialized feed client.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// FetchNewestListings pulls the most recent listings from the feed, newest
// first. Upstream caps a page at 100.
func (c *Client) FetchNewestListings(ctx context.Context) ([]Listing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/listings/newest?limit=100", nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", "domainhawk/1.0")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("feed token invalid: upstream returned %d", resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("auction feed returned %d: %s", resp.StatusCode, string(body))
	}

	var feed Feed
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("failed to decode feed json: %w", err)
	}

	var listings []Listing
	for _, l := range feed.Data.Listings {
		// Upstream occasionally emits placeholder rows with no domain.
		if l.Domain != "" {
			listings = append(listings, l)
		}
	}

	return listings, nil
}
